package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/harvestra/krishikhel/models"
)

// In-memory store fakes used across the service tests.

type fakePointsStore struct {
	mu     sync.Mutex
	events []models.PointEvent
	nextID uint
}

func newFakePointsStore() *fakePointsStore {
	return &fakePointsStore{nextID: 1}
}

func (f *fakePointsStore) CreateEvent(_ context.Context, ev *models.PointEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ev.ID = f.nextID
	f.nextID++
	ev.CreatedAt = time.Now()
	f.events = append(f.events, *ev)
	return nil
}

func (f *fakePointsStore) SumPoints(_ context.Context, userID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, ev := range f.events {
		if ev.UserID == userID {
			total += ev.Amount
		}
	}
	return total, nil
}

func (f *fakePointsStore) ListEvents(_ context.Context, userID string, limit, offset int) ([]models.PointEvent, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var mine []models.PointEvent
	for _, ev := range f.events {
		if ev.UserID == userID {
			mine = append(mine, ev)
		}
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].ID > mine[j].ID })
	total := int64(len(mine))
	if offset >= len(mine) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(mine) {
		end = len(mine)
	}
	return mine[offset:end], total, nil
}

func (f *fakePointsStore) TopEarners(_ context.Context, limit int) ([]models.LeaderboardEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	totals := map[string]int{}
	for _, ev := range f.events {
		totals[ev.UserID] += ev.Amount
	}
	var entries []models.LeaderboardEntry
	for id, t := range totals {
		entries = append(entries, models.LeaderboardEntry{UserID: id, Total: t})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Total > entries[j].Total })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

type fakeStreakStore struct {
	mu      sync.Mutex
	records map[string]*models.StreakRecord
}

func newFakeStreakStore() *fakeStreakStore {
	return &fakeStreakStore{records: make(map[string]*models.StreakRecord)}
}

func (f *fakeStreakStore) GetStreak(_ context.Context, userID string) (*models.StreakRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeStreakStore) SaveStreak(_ context.Context, rec *models.StreakRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *rec
	f.records[rec.UserID] = &cp
	return nil
}

type progressKey struct{ userID, moduleID string }

type fakeProgressStore struct {
	mu   sync.Mutex
	rows map[progressKey]*models.ModuleProgress
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{rows: make(map[progressKey]*models.ModuleProgress)}
}

func (f *fakeProgressStore) UpsertProgress(_ context.Context, userID, moduleID string, percentage int, completed bool) (*models.ModuleProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := progressKey{userID, moduleID}
	row, ok := f.rows[key]
	if !ok {
		row = &models.ModuleProgress{UserID: userID, ModuleID: moduleID, StartedAt: time.Now()}
		f.rows[key] = row
	}
	if percentage > row.ProgressPercentage {
		row.ProgressPercentage = percentage
	}
	if completed && !row.Completed {
		row.Completed = true
		now := time.Now()
		row.CompletedAt = &now
	}
	cp := *row
	return &cp, nil
}

func (f *fakeProgressStore) ListProgress(_ context.Context, userID string) ([]models.ModuleProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ModuleProgress
	for key, row := range f.rows {
		if key.userID == userID {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModuleID < out[j].ModuleID })
	return out, nil
}

func (f *fakeProgressStore) CountCompleted(_ context.Context, userID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for key, row := range f.rows {
		if key.userID == userID && row.Completed {
			n++
		}
	}
	return n, nil
}

type fakeQuizStore struct {
	mu       sync.Mutex
	quizzes  map[string]*models.Quiz
	attempts []models.QuizAttempt
	nextID   uint
}

func newFakeQuizStore(quizzes ...*models.Quiz) *fakeQuizStore {
	f := &fakeQuizStore{quizzes: make(map[string]*models.Quiz), nextID: 1}
	for _, q := range quizzes {
		f.quizzes[q.ID] = q
	}
	return f
}

func (f *fakeQuizStore) GetQuiz(_ context.Context, quizID string) (*models.Quiz, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.quizzes[quizID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *q
	return &cp, nil
}

func (f *fakeQuizStore) CreateAttempt(_ context.Context, at *models.QuizAttempt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	at.ID = f.nextID
	f.nextID++
	at.CreatedAt = time.Now()
	f.attempts = append(f.attempts, *at)
	return nil
}

func (f *fakeQuizStore) ListAttempts(_ context.Context, userID, moduleID string, limit, offset int) ([]models.QuizAttempt, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var mine []models.QuizAttempt
	for _, at := range f.attempts {
		if at.UserID == userID && (moduleID == "" || at.ModuleID == moduleID) {
			mine = append(mine, at)
		}
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].ID > mine[j].ID })
	total := int64(len(mine))
	if offset >= len(mine) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(mine) {
		end = len(mine)
	}
	return mine[offset:end], total, nil
}

type fakeAchievementStore struct {
	mu       sync.Mutex
	unlocked map[string]map[string]models.Achievement
	quizzes  *fakeQuizStore
}

func newFakeAchievementStore(quizzes *fakeQuizStore) *fakeAchievementStore {
	return &fakeAchievementStore{unlocked: make(map[string]map[string]models.Achievement), quizzes: quizzes}
}

func (f *fakeAchievementStore) Unlock(_ context.Context, ua *models.Achievement) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	byUser, ok := f.unlocked[ua.UserID]
	if !ok {
		byUser = make(map[string]models.Achievement)
		f.unlocked[ua.UserID] = byUser
	}
	if _, exists := byUser[ua.AchievementID]; exists {
		return false, nil
	}
	ua.UnlockedAt = time.Now()
	byUser[ua.AchievementID] = *ua
	return true, nil
}

func (f *fakeAchievementStore) ListAchievements(_ context.Context, userID string) ([]models.Achievement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Achievement
	for _, ua := range f.unlocked[userID] {
		out = append(out, ua)
	}
	return out, nil
}

func (f *fakeAchievementStore) CountPassedQuizzes(_ context.Context, userID string) (int, error) {
	if f.quizzes == nil {
		return 0, nil
	}
	f.quizzes.mu.Lock()
	defer f.quizzes.mu.Unlock()
	n := 0
	for _, at := range f.quizzes.attempts {
		if at.UserID == userID && at.Passed {
			n++
		}
	}
	return n, nil
}

func (f *fakeAchievementStore) AverageQuizScore(_ context.Context, userID string) (float64, error) {
	if f.quizzes == nil {
		return 0, nil
	}
	f.quizzes.mu.Lock()
	defer f.quizzes.mu.Unlock()
	sum, n := 0, 0
	for _, at := range f.quizzes.attempts {
		if at.UserID == userID {
			sum += at.Score
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

type fakeRewardStore struct {
	mu          sync.Mutex
	rewards     map[string]*models.Reward
	redemptions []models.RewardRedemption
	points      *fakePointsStore
	nextID      uint
}

func newFakeRewardStore(points *fakePointsStore, rewards ...*models.Reward) *fakeRewardStore {
	f := &fakeRewardStore{rewards: make(map[string]*models.Reward), points: points, nextID: 1}
	for _, r := range rewards {
		f.rewards[r.ID] = r
	}
	return f
}

func (f *fakeRewardStore) GetReward(_ context.Context, rewardID string) (*models.Reward, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rewards[rewardID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRewardStore) ListRewards(_ context.Context) ([]models.Reward, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reward
	for _, r := range f.rewards {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PointsCost < out[j].PointsCost })
	return out, nil
}

func (f *fakeRewardStore) CreateRedemption(ctx context.Context, red *models.RewardRedemption, ev *models.PointEvent) error {
	f.mu.Lock()
	r, ok := f.rewards[red.RewardID]
	if !ok {
		f.mu.Unlock()
		return gorm.ErrRecordNotFound
	}
	if r.StockQuantity != models.UnlimitedStock {
		if r.StockQuantity <= 0 {
			f.mu.Unlock()
			return ErrOutOfStock
		}
		r.StockQuantity--
	}
	red.ID = f.nextID
	f.nextID++
	red.RedeemedAt = time.Now()
	f.redemptions = append(f.redemptions, *red)
	f.mu.Unlock()
	return f.points.CreateEvent(ctx, ev)
}

func (f *fakeRewardStore) ListRedemptions(_ context.Context, userID string, limit, offset int) ([]models.RewardRedemption, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var mine []models.RewardRedemption
	for _, red := range f.redemptions {
		if red.UserID == userID {
			mine = append(mine, red)
		}
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].ID > mine[j].ID })
	total := int64(len(mine))
	if offset >= len(mine) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(mine) {
		end = len(mine)
	}
	return mine[offset:end], total, nil
}

func (f *fakeRewardStore) UpdateRedemptionStatus(_ context.Context, redemptionID uint, status string) (*models.RewardRedemption, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.redemptions {
		if f.redemptions[i].ID == redemptionID {
			f.redemptions[i].Status = status
			cp := f.redemptions[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeMissionStore struct {
	mu          sync.Mutex
	missions    map[string]*models.Mission
	submissions []models.MissionSubmission
	nextID      uint
	points      *fakePointsStore
}

func newFakeMissionStore(points *fakePointsStore, missions ...*models.Mission) *fakeMissionStore {
	f := &fakeMissionStore{missions: make(map[string]*models.Mission), nextID: 1, points: points}
	for _, m := range missions {
		f.missions[m.ID] = m
	}
	return f
}

func (f *fakeMissionStore) GetMission(_ context.Context, missionID string) (*models.Mission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.missions[missionID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMissionStore) ListMissions(_ context.Context) ([]models.Mission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Mission
	for _, m := range f.missions {
		if m.Active {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeMissionStore) HasOpenSubmission(_ context.Context, userID, missionID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sub := range f.submissions {
		if sub.UserID != userID || sub.MissionID != missionID {
			continue
		}
		if sub.Status == models.SubmissionPending || sub.Status == models.SubmissionVerified {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMissionStore) CreateSubmission(_ context.Context, sub *models.MissionSubmission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub.ID = f.nextID
	f.nextID++
	sub.SubmittedAt = time.Now()
	f.submissions = append(f.submissions, *sub)
	return nil
}

func (f *fakeMissionStore) GetSubmission(_ context.Context, submissionID uint) (*models.MissionSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sub := range f.submissions {
		if sub.ID == submissionID {
			cp := sub
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMissionStore) ListSubmissions(_ context.Context, userID string, limit, offset int) ([]models.MissionSubmission, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var mine []models.MissionSubmission
	for _, sub := range f.submissions {
		if sub.UserID == userID {
			mine = append(mine, sub)
		}
	}
	sort.Slice(mine, func(i, j int) bool { return mine[i].ID > mine[j].ID })
	total := int64(len(mine))
	if offset >= len(mine) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(mine) {
		end = len(mine)
	}
	return mine[offset:end], total, nil
}

func (f *fakeMissionStore) SettleSubmission(ctx context.Context, submissionID uint, status string, points int, verifiedAt time.Time, ev *models.PointEvent) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.submissions {
		if f.submissions[i].ID == submissionID {
			if f.submissions[i].Status != models.SubmissionPending {
				return false, nil
			}
			f.submissions[i].Status = status
			f.submissions[i].PointsAwarded = points
			at := verifiedAt
			f.submissions[i].VerifiedAt = &at
			if ev != nil && f.points != nil {
				return true, f.points.CreateEvent(ctx, ev)
			}
			return true, nil
		}
	}
	return false, nil
}

type fakeCommunityStore struct {
	mu     sync.Mutex
	posts  map[uint]*models.CommunityPost
	nextID uint
}

func newFakeCommunityStore() *fakeCommunityStore {
	return &fakeCommunityStore{posts: make(map[uint]*models.CommunityPost), nextID: 1}
}

func (f *fakeCommunityStore) CreatePost(_ context.Context, post *models.CommunityPost) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post.ID = f.nextID
	f.nextID++
	post.CreatedAt = time.Now()
	cp := *post
	f.posts[post.ID] = &cp
	return nil
}

func (f *fakeCommunityStore) GetPost(_ context.Context, postID uint) (*models.CommunityPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[postID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *post
	return &cp, nil
}

func (f *fakeCommunityStore) ListPosts(_ context.Context, topic, search string, limit, offset int) ([]models.CommunityPost, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.CommunityPost
	for _, post := range f.posts {
		if topic != "" && post.Topic != topic {
			continue
		}
		if search != "" && !strings.Contains(post.Content, search) {
			continue
		}
		out = append(out, *post)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func (f *fakeCommunityStore) UpdatePost(_ context.Context, post *models.CommunityPost) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.posts[post.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	existing.Content = post.Content
	existing.Topic = post.Topic
	return nil
}

func (f *fakeCommunityStore) DeletePost(_ context.Context, postID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.posts, postID)
	return nil
}

func (f *fakeCommunityStore) AdjustCounter(_ context.Context, postID uint, column string, delta int) (*models.CommunityPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[postID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		return v
	}
	switch column {
	case "likes_count":
		post.LikesCount = clamp(post.LikesCount + delta)
	case "comments_count":
		post.CommentsCount = clamp(post.CommentsCount + delta)
	}
	cp := *post
	return &cp, nil
}

func (f *fakeCommunityStore) CountPosts(_ context.Context, userID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, post := range f.posts {
		if post.UserID == userID {
			n++
		}
	}
	return n, nil
}
