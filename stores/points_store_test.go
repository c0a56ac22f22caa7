package stores

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/harvestra/krishikhel/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return gdb, mock
}

func TestSumPointsCoalescesToZero(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPointsStore(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(amount), 0) FROM `point_events` WHERE user_id = ?")).
		WithArgs("farmer-1").
		WillReturnRows(sqlmock.NewRows([]string{"COALESCE(SUM(amount), 0)"}).AddRow(0))

	total, err := store.SumPoints(context.Background(), "farmer-1")
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSumPointsSignedSum(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPointsStore(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(amount), 0) FROM `point_events` WHERE user_id = ?")).
		WithArgs("farmer-1").
		WillReturnRows(sqlmock.NewRows([]string{"COALESCE(SUM(amount), 0)"}).AddRow(75))

	total, err := store.SumPoints(context.Background(), "farmer-1")
	require.NoError(t, err)
	assert.Equal(t, 75, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEvent(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPointsStore(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `point_events`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	ev := &models.PointEvent{UserID: "farmer-1", Amount: 125, Source: models.SourceQuizCompletion, Description: "quiz"}
	require.NoError(t, store.CreateEvent(context.Background(), ev))
	assert.EqualValues(t, 1, ev.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEvents(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPointsStore(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `point_events` WHERE user_id = ?")).
		WithArgs("farmer-1").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `point_events` WHERE user_id = ? ORDER BY id DESC LIMIT ?")).
		WithArgs("farmer-1", 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "amount", "source", "description"}).
			AddRow(2, "farmer-1", 50, models.SourceDailyCheckin, "checkin").
			AddRow(1, "farmer-1", 125, models.SourceQuizCompletion, "quiz"))

	events, total, err := store.ListEvents(context.Background(), "farmer-1", 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, events, 2)
	assert.EqualValues(t, 2, events[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTopEarners(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewPointsStore(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, SUM(amount) AS total FROM `point_events` GROUP BY `user_id` ORDER BY total DESC")).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "total"}).
			AddRow("farmer-2", 300).
			AddRow("farmer-1", 100))

	entries, err := store.TopEarners(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "farmer-2", entries[0].UserID)
	assert.Equal(t, 300, entries[0].Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
