package handlers

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"telegram-mood-journal/internal/content"
	"telegram-mood-journal/internal/models"
	"telegram-mood-journal/internal/storage"
	"telegram-mood-journal/internal/support"
)

type fakeBot struct {
	sent []tgbotapi.Chattable
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeBot) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeBot) texts() []string {
	var out []string
	for _, c := range f.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m.Text)
		}
	}
	return out
}

func (f *fakeBot) lastText() string {
	ts := f.texts()
	if len(ts) == 0 {
		return ""
	}
	return ts[len(ts)-1]
}

type fakeResyncer struct{ calls []int64 }

func (f *fakeResyncer) Reconcile(_ context.Context, chatID int64) error {
	f.calls = append(f.calls, chatID)
	return nil
}

func newTestHandler(t *testing.T) (*Handler, *fakeBot, *fakeResyncer, *storage.DB) {
	t.Helper()
	db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	bot := &fakeBot{}
	rs := &fakeResyncer{}
	h := New(bot, db, rs, support.Static{}, zap.NewNop(), time.UTC)
	require.NoError(t, db.EnsureUser(context.Background(), 1))
	return h, bot, rs, db
}

func mode(t *testing.T, db *storage.DB, chatID int64) models.Mode {
	t.Helper()
	m, err := db.GetMode(context.Background(), chatID)
	require.NoError(t, err)
	return m
}

func TestInvalidBedtimeKeepsMode(t *testing.T) {
	h, bot, rs, db := newTestHandler(t)
	ctx := context.Background()

	h.HandlePostback(ctx, 1, "sleep=set_bed")
	require.Equal(t, models.ModeBedtimeInput, mode(t, db, 1).Kind)

	h.HandleText(ctx, 1, "25:00")

	assert.Equal(t, models.ModeBedtimeInput, mode(t, db, 1).Kind, "bad input must not reset the mode")
	assert.Equal(t, badTimeText, bot.lastText())
	assert.Empty(t, rs.calls, "no resync on rejected input")

	s, err := db.GetSleep(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, s.Bedtime)
}

func TestValidBedtimeWritesSettingAndResyncs(t *testing.T) {
	h, bot, rs, db := newTestHandler(t)
	ctx := context.Background()

	h.HandlePostback(ctx, 1, "sleep=set_bed")
	h.HandleText(ctx, 1, "23:00")

	assert.True(t, mode(t, db, 1).IsIdle())
	assert.Equal(t, []int64{1}, rs.calls)

	s, err := db.GetSleep(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "23:00", s.Bedtime)
	assert.True(t, s.Enabled, "a time write forces enabled on")
	assert.Contains(t, strings.Join(bot.texts(), "\n"), "23:00")
}

func TestWaketimeFlow(t *testing.T) {
	h, _, rs, db := newTestHandler(t)
	ctx := context.Background()

	h.HandlePostback(ctx, 1, "sleep=set_wake")
	require.Equal(t, models.ModeWaketimeInput, mode(t, db, 1).Kind)

	h.HandleText(ctx, 1, "07:00")

	s, err := db.GetSleep(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "07:00", s.Waketime)
	assert.True(t, s.Enabled)
	assert.Len(t, rs.calls, 1)
}

func TestSleepToggleResyncs(t *testing.T) {
	h, _, rs, db := newTestHandler(t)
	ctx := context.Background()

	require.NoError(t, db.SetSleep(ctx, models.SleepSetting{
		ChatID: 1, Bedtime: "23:00", Enabled: true,
	}))

	h.HandlePostback(ctx, 1, "sleep=toggle")

	s, err := db.GetSleep(ctx, 1)
	require.NoError(t, err)
	assert.False(t, s.Enabled)
	assert.Equal(t, "23:00", s.Bedtime, "times survive the toggle")
	assert.Equal(t, []int64{1}, rs.calls)
}

func TestDiaryEndToEnd(t *testing.T) {
	h, bot, _, db := newTestHandler(t)
	ctx := context.Background()

	h.HandlePostback(ctx, 1, "action=diary")
	require.Equal(t, models.ModeDiaryText, mode(t, db, 1).Kind)

	h.HandleText(ctx, 1, "first entry, pretty good day")

	assert.True(t, mode(t, db, 1).IsIdle())

	st, err := h.diaryStats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Total)
	assert.Equal(t, 1, st.Streak)
	assert.True(t, st.DidToday)
	assert.Equal(t, 2, st.Level.Level) // level 1 costs a single entry

	assert.Contains(t, bot.lastText(), "streak: 1")
}

func TestDiaryScoreAttached(t *testing.T) {
	h, _, _, db := newTestHandler(t)
	ctx := context.Background()

	h.HandlePostback(ctx, 1, "score=5")
	m := mode(t, db, 1)
	require.Equal(t, models.ModeDiaryTextScored, m.Kind)
	require.NotNil(t, m.Score)
	assert.Equal(t, 5, *m.Score)

	h.HandleText(ctx, 1, "great day")

	var score *int
	require.NoError(t, db.QueryRow(`SELECT score FROM diary WHERE chat_id=1`).Scan(&score))
	require.NotNil(t, score)
	assert.Equal(t, 5, *score)
}

func TestDiarySkipScoreStoresNull(t *testing.T) {
	h, bot, _, db := newTestHandler(t)
	ctx := context.Background()

	h.HandlePostback(ctx, 1, "score=0")
	assert.Equal(t, diarySkipScoreText, bot.lastText())

	h.HandleText(ctx, 1, "skipped the score")

	var score *int
	require.NoError(t, db.QueryRow(`SELECT score FROM diary WHERE chat_id=1`).Scan(&score))
	assert.Nil(t, score, "skip sentinel maps to absent, not zero")
}

func TestTodoTitleFlow(t *testing.T) {
	h, bot, _, db := newTestHandler(t)
	ctx := context.Background()

	h.HandlePostback(ctx, 1, "todo=add")
	require.Equal(t, models.ModeTodoTitle, mode(t, db, 1).Kind)

	h.HandleText(ctx, 1, "read 30 minutes")

	assert.True(t, mode(t, db, 1).IsIdle())
	todos, err := db.ListTodos(ctx, 1)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "read 30 minutes", todos[0].Title)
	assert.Contains(t, strings.Join(bot.texts(), "\n"), todoAddedText)
}

func TestTodoDonePostback(t *testing.T) {
	h, _, _, db := newTestHandler(t)
	ctx := context.Background()

	require.NoError(t, db.AddTodo(ctx, 1, "task"))
	todos, err := db.ListTodos(ctx, 1)
	require.NoError(t, err)

	h.HandlePostback(ctx, 1, "todo_done="+strconv.FormatInt(todos[0].ID, 10))

	todos, err = db.ListTodos(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.TodoDone, todos[0].Status)
}

func TestSupportModeIsSticky(t *testing.T) {
	h, bot, _, db := newTestHandler(t)
	ctx := context.Background()

	h.HandlePostback(ctx, 1, "action=heal")
	require.Equal(t, models.ModeSupport, mode(t, db, 1).Kind)

	h.HandleText(ctx, 1, "I feel overwhelmed")
	h.HandleText(ctx, 1, "still here")

	assert.Equal(t, models.ModeSupport, mode(t, db, 1).Kind, "support mode persists across turns")
	assert.Contains(t, bot.lastText(), "1323")
}

func TestUnknownPostbackIgnored(t *testing.T) {
	h, bot, rs, db := newTestHandler(t)
	ctx := context.Background()

	h.HandlePostback(ctx, 1, "action=launch_rockets")
	h.HandlePostback(ctx, 1, "totally=unknown")
	h.HandlePostback(ctx, 1, "%zz=broken")

	assert.Empty(t, bot.sent, "unknown actions are dropped silently")
	assert.Empty(t, rs.calls)
	assert.True(t, mode(t, db, 1).IsIdle())
}

func TestIdleTextFallback(t *testing.T) {
	h, bot, _, _ := newTestHandler(t)

	h.HandleText(context.Background(), 1, "hello?")
	assert.Equal(t, fallbackText, bot.lastText())
}

func TestJournalCursorAdvancesAndWraps(t *testing.T) {
	h, _, _, db := newTestHandler(t)
	ctx := context.Background()

	h.HandlePostback(ctx, 1, "action=journal")
	idx, err := db.GetJournalIdx(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	h.HandlePostback(ctx, 1, "journal=next")
	idx, err = db.GetJournalIdx(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	// Walking past the last entry wraps to the start.
	for i := 0; i < len(content.Journals)-1; i++ {
		h.HandlePostback(ctx, 1, "journal=next")
	}
	idx, err = db.GetJournalIdx(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}
