package services

import "math"

// GradeQuiz scores a set of answers against the correct indices and returns
// the score as a whole percentage. An unanswered question (index -1 or
// missing) counts as wrong. An empty key yields a score of zero.
func GradeQuiz(answers, correct []int) (score int, total int) {
	total = len(correct)
	if total == 0 {
		return 0, 0
	}
	matches := 0
	for i, want := range correct {
		if i < len(answers) && answers[i] == want {
			matches++
		}
	}
	score = int(math.Round(float64(matches) / float64(total) * 100))
	return score, total
}

// QuizPassed reports whether a percentage score clears the passing threshold.
func QuizPassed(score, threshold int) bool {
	return score >= threshold
}

// QuizPointsEarned is the point grant for a passing attempt: a fixed base
// plus the rounded-down score. Failing attempts earn nothing.
func QuizPointsEarned(basePoints, score int, passed bool) int {
	if !passed {
		return 0
	}
	return basePoints + score
}

// UserLevel derives a coarse level from the number of completed learning
// modules: every two completions advance one level, starting at level 1.
func UserLevel(completedModules int) int {
	return completedModules/2 + 1
}
