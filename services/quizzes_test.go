package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harvestra/krishikhel/models"
)

type quizFixture struct {
	quizzes      *Quizzes
	ledger       *Ledger
	streaks      *Streaks
	progress     *fakeProgressStore
	achievements *fakeAchievementStore
}

func newQuizFixture(catalog ...*models.Quiz) *quizFixture {
	points := newFakePointsStore()
	ledger := NewLedger(points)
	streaks := NewStreaks(newFakeStreakStore())
	progress := newFakeProgressStore()
	store := newFakeQuizStore(catalog...)
	achievements := newFakeAchievementStore(store)
	return &quizFixture{
		quizzes:      NewQuizzes(store, progress, achievements, ledger, streaks, 50, 70),
		ledger:       ledger,
		streaks:      streaks,
		progress:     progress,
		achievements: achievements,
	}
}

func soilQuiz() *models.Quiz {
	return &models.Quiz{ID: "quiz-soil", ModuleID: "1", Title: "Soil Health", PassingThreshold: 70, AnswerKey: "[1,1,2,0]"}
}

func TestQuizSubmitPassingAttempt(t *testing.T) {
	f := newQuizFixture(soilQuiz())

	result, err := f.quizzes.Submit(context.Background(), "farmer-1", QuizSubmission{
		QuizID:  "quiz-soil",
		Answers: []int{1, 0, 2, 0},
	})
	require.NoError(t, err)
	assert.Equal(t, 75, result.Attempt.Score)
	assert.Equal(t, 4, result.Attempt.TotalQuestions)
	assert.True(t, result.Passed)
	assert.Equal(t, 125, result.PointsEarned) // 50 base + 75 score

	balance, err := f.ledger.Balance(context.Background(), "farmer-1")
	require.NoError(t, err)
	assert.Equal(t, 125, balance)

	require.NotNil(t, result.Progress)
	assert.Equal(t, 100, result.Progress.ProgressPercentage)
	assert.True(t, result.Progress.Completed)

	// Passing also counts as today's streak activity.
	rec, err := f.streaks.Get(context.Background(), "farmer-1")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.CurrentStreak)
	assert.Equal(t, time.Now().Format(models.DateLayout), rec.LastActivityDate)
}

func TestQuizSubmitFailingAttempt(t *testing.T) {
	f := newQuizFixture(soilQuiz())

	result, err := f.quizzes.Submit(context.Background(), "farmer-1", QuizSubmission{
		QuizID:  "quiz-soil",
		Answers: []int{0, 0, 0, 0},
	})
	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.Zero(t, result.PointsEarned)
	assert.Nil(t, result.Progress)

	balance, err := f.ledger.Balance(context.Background(), "farmer-1")
	require.NoError(t, err)
	assert.Zero(t, balance)

	// Failed attempts are still recorded.
	attempts, total, err := f.quizzes.Attempts(context.Background(), "farmer-1", "", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.False(t, attempts[0].Passed)
}

func TestQuizSubmitIgnoresReportedScoreWhenKeyExists(t *testing.T) {
	f := newQuizFixture(soilQuiz())

	result, err := f.quizzes.Submit(context.Background(), "farmer-1", QuizSubmission{
		QuizID:        "quiz-soil",
		Answers:       []int{3, 3, 3, 3},
		ReportedScore: 100,
		ReportedTotal: 4,
	})
	require.NoError(t, err)
	assert.Zero(t, result.Attempt.Score)
	assert.False(t, result.Passed)
}

func TestQuizSubmitUnknownQuizTrustsReportedScore(t *testing.T) {
	f := newQuizFixture()

	result, err := f.quizzes.Submit(context.Background(), "farmer-1", QuizSubmission{
		QuizID:        "legacy-quiz",
		ModuleID:      "9",
		ReportedScore: 80,
		ReportedTotal: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 80, result.Attempt.Score)
	assert.True(t, result.Passed)
	assert.Equal(t, 130, result.PointsEarned)
}

func TestQuizSubmitRejectsOutOfRangeReportedScore(t *testing.T) {
	f := newQuizFixture()

	_, err := f.quizzes.Submit(context.Background(), "farmer-1", QuizSubmission{
		QuizID:        "legacy-quiz",
		ReportedScore: 140,
	})
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestQuizPerfectScoreUnlocksAchievementOnce(t *testing.T) {
	f := newQuizFixture(soilQuiz())

	ctx := context.Background()
	result, err := f.quizzes.Submit(ctx, "farmer-1", QuizSubmission{
		QuizID:  "quiz-soil",
		Answers: []int{1, 1, 2, 0},
	})
	require.NoError(t, err)
	require.Len(t, result.NewAchievements, 1)
	assert.Equal(t, AchievementPerfectScore, result.NewAchievements[0].AchievementID)

	// 50 base + 100 score + 25 achievement bonus
	balance, err := f.ledger.Balance(ctx, "farmer-1")
	require.NoError(t, err)
	assert.Equal(t, 175, balance)

	// A second perfect attempt does not re-grant.
	result, err = f.quizzes.Submit(ctx, "farmer-1", QuizSubmission{
		QuizID:  "quiz-soil",
		Answers: []int{1, 1, 2, 0},
	})
	require.NoError(t, err)
	assert.Empty(t, result.NewAchievements)
}

func TestQuizMasterAchievementAfterFivePasses(t *testing.T) {
	f := newQuizFixture(soilQuiz())

	ctx := context.Background()
	var last *QuizResult
	for i := 0; i < 5; i++ {
		var err error
		last, err = f.quizzes.Submit(ctx, "farmer-1", QuizSubmission{
			QuizID:  "quiz-soil",
			Answers: []int{1, 0, 2, 0}, // 75%, passing but not perfect
		})
		require.NoError(t, err)
	}

	require.Len(t, last.NewAchievements, 1)
	assert.Equal(t, AchievementQuizMaster, last.NewAchievements[0].AchievementID)
}

func TestModuleProgressIsMonotonic(t *testing.T) {
	f := newQuizFixture()

	ctx := context.Background()
	_, err := f.progress.UpsertProgress(ctx, "farmer-1", "1", 100, true)
	require.NoError(t, err)
	row, err := f.progress.UpsertProgress(ctx, "farmer-1", "1", 40, false)
	require.NoError(t, err)
	assert.Equal(t, 100, row.ProgressPercentage)
	assert.True(t, row.Completed)
}
