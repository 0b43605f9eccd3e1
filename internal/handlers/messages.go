package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"telegram-mood-journal/internal/diary"
	"telegram-mood-journal/internal/models"
	"telegram-mood-journal/internal/timefmt"
)

// HandleText interprets one free-text message strictly by the user's current
// mode. Any text while idle gets the generic fallback and no state change.
func (h *Handler) HandleText(ctx context.Context, chatID int64, text string) {
	mode, err := h.DB.GetMode(ctx, chatID)
	if err != nil {
		h.Log.Error("get mode failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}

	switch mode.Kind {
	case models.ModeDiaryText, models.ModeDiaryTextScored:
		h.submitDiary(ctx, chatID, text, mode)

	case models.ModeTodoTitle:
		if err := h.DB.AddTodo(ctx, chatID, text); err != nil {
			h.Log.Error("add todo failed", zap.Int64("chat_id", chatID), zap.Error(err))
			return
		}
		h.setMode(ctx, chatID, models.Idle)
		h.send(chatID, todoAddedText)
		h.showTodoList(ctx, chatID)

	case models.ModeSupport:
		// Support mode is sticky: it outlives the turn until the user
		// navigates elsewhere.
		reply, err := h.Support.Reply(ctx, text)
		if err != nil {
			h.Log.Error("support reply failed", zap.Int64("chat_id", chatID), zap.Error(err))
			h.send(chatID, healFallbackText)
			return
		}
		h.send(chatID, reply)

	case models.ModeBedtimeInput:
		h.submitSleepTime(ctx, chatID, text, true)

	case models.ModeWaketimeInput:
		h.submitSleepTime(ctx, chatID, text, false)

	default:
		h.send(chatID, fallbackText)
	}
}

// submitDiary turns the text into a new entry, attaching the score carried
// by the mode. The skip sentinel (score 0) stores an absent score.
func (h *Handler) submitDiary(ctx context.Context, chatID int64, text string, mode models.Mode) {
	var score *int
	if mode.Kind == models.ModeDiaryTextScored && mode.Score != nil && *mode.Score != 0 {
		score = mode.Score
	}

	day := diary.Day(time.Now().In(h.loc))
	if err := h.DB.AddDiary(ctx, chatID, day, text, score); err != nil {
		h.Log.Error("add diary failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}
	h.setMode(ctx, chatID, models.Idle)

	stats, err := h.diaryStats(ctx, chatID)
	if err != nil {
		h.Log.Error("diary stats failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}
	h.sendMsg(progressMsg(chatID, stats))
}

// submitSleepTime validates the typed HH:MM. On a bad format the user stays
// in the same awaiting-input mode and just gets the corrective prompt; on
// success the setting is written with enabled forced on, the scheduler is
// resynced and the mode resets.
func (h *Handler) submitSleepTime(ctx context.Context, chatID int64, text string, bed bool) {
	hhmm, err := timefmt.ParseHHMM(text)
	if err != nil {
		h.send(chatID, badTimeText)
		return
	}

	s, err := h.DB.GetSleep(ctx, chatID)
	if err != nil {
		h.Log.Error("get sleep failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}
	if bed {
		s.Bedtime = hhmm
	} else {
		s.Waketime = hhmm
	}
	s.Enabled = true

	if err := h.DB.SetSleep(ctx, s); err != nil {
		h.Log.Error("set sleep failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}
	if err := h.Sched.Reconcile(ctx, chatID); err != nil {
		h.Log.Error("reconcile failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	h.setMode(ctx, chatID, models.Idle)

	if bed {
		h.send(chatID, timeSavedText("bedtime", hhmm))
	} else {
		h.send(chatID, timeSavedText("wake-up", hhmm))
	}
	h.sendMsg(sleepMenuMsg(chatID, s))
}

// diaryStats reads the aggregates and derives the level state.
func (h *Handler) diaryStats(ctx context.Context, chatID int64) (diary.Stats, error) {
	total, err := h.DB.DiaryCount(ctx, chatID)
	if err != nil {
		return diary.Stats{}, err
	}
	days, err := h.DB.DiaryDays(ctx, chatID)
	if err != nil {
		return diary.Stats{}, err
	}
	return diary.BuildStats(total, days, time.Now().In(h.loc)), nil
}
