package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-mood-journal/internal/models"
)

func open(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestEnsureUser_Idempotent(t *testing.T) {
	db := open(t)
	ctx := context.Background()

	require.NoError(t, db.EnsureUser(ctx, 42))
	require.NoError(t, db.EnsureUser(ctx, 42))

	var c int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&c))
	assert.Equal(t, 1, c)
}

func TestModeRoundtrip(t *testing.T) {
	db := open(t)
	ctx := context.Background()
	require.NoError(t, db.EnsureUser(ctx, 1))

	// Unknown user reads as idle.
	m, err := db.GetMode(ctx, 999)
	require.NoError(t, err)
	assert.True(t, m.IsIdle())

	require.NoError(t, db.SetMode(ctx, 1, models.Mode{Kind: models.ModeTodoTitle}))
	m, err = db.GetMode(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.ModeTodoTitle, m.Kind)
	assert.Nil(t, m.Score)

	require.NoError(t, db.SetMode(ctx, 1, models.ScoredDiary(4)))
	m, err = db.GetMode(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.ModeDiaryTextScored, m.Kind)
	require.NotNil(t, m.Score)
	assert.Equal(t, 4, *m.Score)

	require.NoError(t, db.SetMode(ctx, 1, models.Idle))
	m, err = db.GetMode(ctx, 1)
	require.NoError(t, err)
	assert.True(t, m.IsIdle())
	assert.Nil(t, m.Score)
}

func TestDiary(t *testing.T) {
	db := open(t)
	ctx := context.Background()
	require.NoError(t, db.EnsureUser(ctx, 1))

	score := 5
	require.NoError(t, db.AddDiary(ctx, 1, "2026-03-10", "good day", &score))
	require.NoError(t, db.AddDiary(ctx, 1, "2026-03-10", "second entry", nil))
	require.NoError(t, db.AddDiary(ctx, 1, "2026-03-09", "yesterday", nil))
	require.NoError(t, db.AddDiary(ctx, 2, "2026-03-10", "other user", nil))

	c, err := db.DiaryCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, c)

	days, err := db.DiaryDays(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-03-10", "2026-03-09"}, days)
}

func TestTodoLifecycle(t *testing.T) {
	db := open(t)
	ctx := context.Background()
	require.NoError(t, db.EnsureUser(ctx, 1))

	for i := 0; i < 25; i++ {
		require.NoError(t, db.AddTodo(ctx, 1, "task"))
	}

	todos, err := db.ListTodos(ctx, 1)
	require.NoError(t, err)
	require.Len(t, todos, 20) // display cap
	assert.Greater(t, todos[0].ID, todos[1].ID, "newest first")
	assert.Equal(t, models.TodoPending, todos[0].Status)

	require.NoError(t, db.MarkTodoDone(ctx, 1, todos[0].ID))
	todos, err = db.ListTodos(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.TodoDone, todos[0].Status)

	require.NoError(t, db.ClearDoneTodos(ctx, 1))
	todos, err = db.ListTodos(ctx, 1)
	require.NoError(t, err)
	require.Len(t, todos, 20) // 24 pending remain, capped at 20
	for _, td := range todos {
		assert.Equal(t, models.TodoPending, td.Status)
	}
}

func TestSleepSettings(t *testing.T) {
	db := open(t)
	ctx := context.Background()

	// Missing row reads as all-off.
	s, err := db.GetSleep(ctx, 7)
	require.NoError(t, err)
	assert.False(t, s.Enabled)
	assert.Empty(t, s.Bedtime)

	require.NoError(t, db.SetSleep(ctx, models.SleepSetting{
		ChatID: 7, Bedtime: "23:00", Enabled: true,
	}))
	s, err = db.GetSleep(ctx, 7)
	require.NoError(t, err)
	assert.True(t, s.Enabled)
	assert.Equal(t, "23:00", s.Bedtime)
	assert.Empty(t, s.Waketime)

	// Upsert replaces the single row.
	require.NoError(t, db.SetSleep(ctx, models.SleepSetting{
		ChatID: 7, Bedtime: "23:00", Waketime: "07:00", Enabled: false,
	}))
	s, err = db.GetSleep(ctx, 7)
	require.NoError(t, err)
	assert.False(t, s.Enabled)
	assert.Equal(t, "07:00", s.Waketime)

	enabled, err := db.ListEnabledSleep(ctx)
	require.NoError(t, err)
	assert.Empty(t, enabled)

	require.NoError(t, db.SetSleep(ctx, models.SleepSetting{
		ChatID: 7, Bedtime: "23:00", Enabled: true,
	}))
	require.NoError(t, db.SetSleep(ctx, models.SleepSetting{
		ChatID: 8, Waketime: "06:30", Enabled: true,
	}))
	enabled, err = db.ListEnabledSleep(ctx)
	require.NoError(t, err)
	assert.Len(t, enabled, 2)
}

func TestJournalCursor(t *testing.T) {
	db := open(t)
	ctx := context.Background()

	idx, err := db.GetJournalIdx(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	require.NoError(t, db.SetJournalIdx(ctx, 3, 5))
	idx, err = db.GetJournalIdx(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, idx)
}
