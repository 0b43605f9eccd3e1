package handlers

import (
	"context"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"telegram-mood-journal/internal/content"
	"telegram-mood-journal/internal/models"
)

// HandlePostback dispatches one structured button tap. The data string is a
// URL-encoded action, e.g. "action=diary", "score=5", "todo_done=17".
// Unrecognized actions are ignored without a reply; unknown payloads from a
// newer client must not crash or spam the user.
func (h *Handler) HandlePostback(ctx context.Context, chatID int64, data string) {
	vals, err := url.ParseQuery(data)
	if err != nil {
		h.Log.Debug("unparseable postback", zap.String("data", data))
		return
	}

	switch {
	case vals.Has("action"):
		h.handleAction(ctx, chatID, vals)
	case vals.Has("score"):
		h.handleScore(ctx, chatID, vals.Get("score"))
	case vals.Has("todo"):
		h.handleTodoAction(ctx, chatID, vals.Get("todo"))
	case vals.Has("todo_done"):
		h.handleTodoDone(ctx, chatID, vals.Get("todo_done"))
	case vals.Has("sleep"):
		h.handleSleepAction(ctx, chatID, vals.Get("sleep"))
	case vals.Has("journal"):
		h.handleJournalAction(ctx, chatID, vals.Get("journal"))
	}
}

func (h *Handler) handleAction(ctx context.Context, chatID int64, vals url.Values) {
	switch vals.Get("action") {
	case "menu":
		h.setMode(ctx, chatID, models.Idle)
		h.sendMsg(mainMenuMsg(chatID))

	case "diary":
		stats, err := h.diaryStats(ctx, chatID)
		if err != nil {
			h.Log.Error("diary stats failed", zap.Int64("chat_id", chatID), zap.Error(err))
			return
		}
		h.setMode(ctx, chatID, models.Mode{Kind: models.ModeDiaryText})
		h.sendMsg(diaryPromptMsg(chatID, stats))

	case "todo":
		h.setMode(ctx, chatID, models.Idle)
		h.sendMsg(todoMenuMsg(chatID))

	case "heal":
		h.setMode(ctx, chatID, models.Mode{Kind: models.ModeSupport})
		h.send(chatID, healIntroText)

	case "sleep":
		s, err := h.DB.GetSleep(ctx, chatID)
		if err != nil {
			h.Log.Error("get sleep failed", zap.Int64("chat_id", chatID), zap.Error(err))
			return
		}
		h.setMode(ctx, chatID, models.Idle)
		h.sendMsg(sleepMenuMsg(chatID, s))

	case "journal":
		h.setMode(ctx, chatID, models.Idle)
		idx, err := h.DB.GetJournalIdx(ctx, chatID)
		if err != nil {
			h.Log.Error("get journal idx failed", zap.Int64("chat_id", chatID), zap.Error(err))
			return
		}
		h.showJournal(chatID, idx)

	case "media":
		h.setMode(ctx, chatID, models.Idle)
		h.sendMsg(mediaMenuMsg(chatID))

	case "media_cat":
		h.setMode(ctx, chatID, models.Idle)
		cat, ok := content.FindCategory(vals.Get("cat"))
		if !ok {
			h.sendMsg(mediaMenuMsg(chatID))
			return
		}
		h.sendMsg(mediaCategoryMsg(chatID, cat))
	}
}

// handleScore records the picked mood score in the waiting mode; the diary
// text itself arrives in the next message. Score 0 is the "skip" sentinel
// and turns into an absent score, not a zero.
func (h *Handler) handleScore(ctx context.Context, chatID int64, raw string) {
	score, err := strconv.Atoi(raw)
	if err != nil || score < 0 || score > 5 {
		return
	}
	h.setMode(ctx, chatID, models.ScoredDiary(score))
	if score == 0 {
		h.send(chatID, diarySkipScoreText)
	} else {
		h.send(chatID, diaryScoredText(score))
	}
}

func (h *Handler) handleTodoAction(ctx context.Context, chatID int64, action string) {
	switch action {
	case "add":
		h.setMode(ctx, chatID, models.Mode{Kind: models.ModeTodoTitle})
		h.send(chatID, todoAddPromptText)
	case "list":
		h.setMode(ctx, chatID, models.Idle)
		h.showTodoList(ctx, chatID)
	case "clear_done":
		if err := h.DB.ClearDoneTodos(ctx, chatID); err != nil {
			h.Log.Error("clear done todos failed", zap.Int64("chat_id", chatID), zap.Error(err))
			return
		}
		h.setMode(ctx, chatID, models.Idle)
		h.send(chatID, todoClearedText)
	}
}

func (h *Handler) handleTodoDone(ctx context.Context, chatID int64, raw string) {
	todoID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return
	}
	if err := h.DB.MarkTodoDone(ctx, chatID, todoID); err != nil {
		h.Log.Error("mark todo done failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}
	h.send(chatID, todoDoneText)
	h.showTodoList(ctx, chatID)
}

func (h *Handler) handleSleepAction(ctx context.Context, chatID int64, action string) {
	switch action {
	case "set_bed":
		h.setMode(ctx, chatID, models.Mode{Kind: models.ModeBedtimeInput})
		h.send(chatID, bedPromptText)
	case "set_wake":
		h.setMode(ctx, chatID, models.Mode{Kind: models.ModeWaketimeInput})
		h.send(chatID, wakePromptText)
	case "toggle":
		s, err := h.DB.GetSleep(ctx, chatID)
		if err != nil {
			h.Log.Error("get sleep failed", zap.Int64("chat_id", chatID), zap.Error(err))
			return
		}
		s.Enabled = !s.Enabled
		if err := h.DB.SetSleep(ctx, s); err != nil {
			h.Log.Error("set sleep failed", zap.Int64("chat_id", chatID), zap.Error(err))
			return
		}
		if err := h.Sched.Reconcile(ctx, chatID); err != nil {
			h.Log.Error("reconcile failed", zap.Int64("chat_id", chatID), zap.Error(err))
		}
		h.sendMsg(sleepMenuMsg(chatID, s))
	}
}

func (h *Handler) handleJournalAction(ctx context.Context, chatID int64, action string) {
	h.setMode(ctx, chatID, models.Idle)

	idx, err := h.DB.GetJournalIdx(ctx, chatID)
	if err != nil {
		h.Log.Error("get journal idx failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}

	switch action {
	case "next":
		idx = content.NextJournalIdx(idx)
	case "random":
		idx = content.RandomJournalIdx()
	default:
		return
	}
	if err := h.DB.SetJournalIdx(ctx, chatID, idx); err != nil {
		h.Log.Error("set journal idx failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}
	h.showJournal(chatID, idx)
}

func (h *Handler) showJournal(chatID int64, idx int) {
	j, idx := content.JournalAt(idx)
	h.sendMsg(journalMsg(chatID, j, idx))
}

func (h *Handler) showTodoList(ctx context.Context, chatID int64) {
	todos, err := h.DB.ListTodos(ctx, chatID)
	if err != nil {
		h.Log.Error("list todos failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}
	h.sendMsg(todoListMsg(chatID, todos))
}

func (h *Handler) setMode(ctx context.Context, chatID int64, m models.Mode) {
	if err := h.DB.SetMode(ctx, chatID, m); err != nil {
		h.Log.Error("set mode failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
