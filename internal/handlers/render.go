package handlers

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-mood-journal/internal/content"
	"telegram-mood-journal/internal/diary"
	"telegram-mood-journal/internal/models"
)

const (
	fallbackText = "Tap /menu to pick what you'd like to do 😊"

	healIntroText = "This is the healing corner 🤍\n" +
		"Type whatever is on your mind, I'm listening.\n" +
		"If you ever feel unsafe, call 1323 right away."
	healFallbackText = "I'm here and I'm listening 🤍 Tell me more whenever you're ready."

	todoAddPromptText = "Type the task you want to add (one line = one task)\n" +
		"Example: read 30 minutes"
	todoAddedText   = "Task added ✅"
	todoDoneText    = "Checked off ✅ Nice work"
	todoClearedText = "Cleared all finished tasks 🧹"

	diarySkipScoreText = "Okay, skipping the score ✨\nNow tell me about your day"
	bedPromptText      = "Type your bedtime as HH:MM, e.g. 23:00"
	wakePromptText     = "Type your wake-up time as HH:MM, e.g. 07:00"
	badTimeText        = "That time doesn't look right. It must be HH:MM, e.g. 23:00"
)

func diaryScoredText(score int) string {
	return fmt.Sprintf("Got it, %d/5 ✨\nNow tell me about your day", score)
}

func timeSavedText(what, hhmm string) string {
	return fmt.Sprintf("Saved %s as %s ✅ (reminders switched on)", what, hhmm)
}

var mainMenuKB = tgbotapi.NewInlineKeyboardMarkup(
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📔 Diary", "action=diary"),
		tgbotapi.NewInlineKeyboardButtonData("✅ To-do", "action=todo"),
	),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🌙 Sleep", "action=sleep"),
		tgbotapi.NewInlineKeyboardButtonData("📰 Journal", "action=journal"),
	),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🎧 Media", "action=media"),
		tgbotapi.NewInlineKeyboardButtonData("🤍 Healing", "action=heal"),
	),
)

func mainMenuMsg(chatID int64) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, "What would you like to do?")
	msg.ReplyMarkup = mainMenuKB
	return msg
}

// --- diary ------------------------------------------------------------

func diaryPromptMsg(chatID int64, st diary.Stats) tgbotapi.MessageConfig {
	txt := fmt.Sprintf("How was today? Pick a score first 🌱 (you're level %d)", st.Level.Level)
	msg := tgbotapi.NewMessage(chatID, txt)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("1", "score=1"),
			tgbotapi.NewInlineKeyboardButtonData("2", "score=2"),
			tgbotapi.NewInlineKeyboardButtonData("3", "score=3"),
			tgbotapi.NewInlineKeyboardButtonData("4", "score=4"),
			tgbotapi.NewInlineKeyboardButtonData("5", "score=5"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Skip the score", "score=0"),
		),
	)
	return msg
}

// progressMsg renders the growth tree after a diary submission.
func progressMsg(chatID int64, st diary.Stats) tgbotapi.MessageConfig {
	var b strings.Builder
	fmt.Fprintf(&b, "🌳 Level %d · stage %d/10\n", st.Level.Level, st.Level.Stage)
	if st.Level.Max {
		b.WriteString("MAX level reached, the tree is fully grown! 🎉\n")
	} else {
		fmt.Fprintf(&b, "%d/%d in this level, %d more to level up\n",
			st.Level.InLevel, st.Level.NeedForNext, st.Level.ToNext)
	}
	fmt.Fprintf(&b, "Entries: %d · streak: %d day(s)", st.Total, st.Streak)
	if st.DidToday {
		b.WriteString(" · today ✅")
	}
	return tgbotapi.NewMessage(chatID, b.String())
}

// --- todo -------------------------------------------------------------

func todoMenuMsg(chatID int64) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, "Your to-do corner ✅")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Add", "todo=add"),
			tgbotapi.NewInlineKeyboardButtonData("📋 List", "todo=list"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧹 Clear finished", "todo=clear_done"),
		),
	)
	return msg
}

func todoListMsg(chatID int64, todos []models.TodoItem) tgbotapi.MessageConfig {
	if len(todos) == 0 {
		return tgbotapi.NewMessage(chatID, "No tasks yet. Add one! ➕")
	}

	var b strings.Builder
	b.WriteString("Your tasks (newest first):\n")
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, t := range todos {
		if t.Status == models.TodoDone {
			fmt.Fprintf(&b, "✅ %s\n", t.Title)
			continue
		}
		fmt.Fprintf(&b, "⬜ %s\n", t.Title)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				"Done: "+truncate(t.Title, 24),
				fmt.Sprintf("todo_done=%d", t.ID),
			),
		))
	}

	msg := tgbotapi.NewMessage(chatID, b.String())
	if len(rows) > 0 {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	}
	return msg
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// --- sleep ------------------------------------------------------------

func sleepMenuMsg(chatID int64, s models.SleepSetting) tgbotapi.MessageConfig {
	bed, wake := s.Bedtime, s.Waketime
	if bed == "" {
		bed = "not set"
	}
	if wake == "" {
		wake = "not set"
	}
	state := "off"
	toggleLabel := "🔔 Turn on"
	if s.Enabled {
		state = "on"
		toggleLabel = "🔕 Turn off"
	}

	txt := fmt.Sprintf("🌙 Sleep reminders: %s\nBedtime: %s\nWake-up: %s", state, bed, wake)
	msg := tgbotapi.NewMessage(chatID, txt)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Set bedtime", "sleep=set_bed"),
			tgbotapi.NewInlineKeyboardButtonData("Set wake-up", "sleep=set_wake"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(toggleLabel, "sleep=toggle"),
		),
	)
	return msg
}

// --- journal / media --------------------------------------------------

func journalMsg(chatID int64, j content.Journal, idx int) tgbotapi.MessageConfig {
	var b strings.Builder
	fmt.Fprintf(&b, "📰 %s (%d/%d)\n", j.Title, idx+1, len(content.Journals))
	for _, bullet := range j.Bullets {
		fmt.Fprintf(&b, "• %s\n", bullet)
	}

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Next ➡️", "journal=next"),
			tgbotapi.NewInlineKeyboardButtonData("🎲 Random", "journal=random"),
		),
	)
	return msg
}

func mediaMenuMsg(chatID int64) tgbotapi.MessageConfig {
	var row []tgbotapi.InlineKeyboardButton
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, c := range content.MediaCategories {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			c.Label, "action=media_cat&cat="+c.ID))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	msg := tgbotapi.NewMessage(chatID, "Pick something to listen to or watch 🎧")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	return msg
}

func mediaCategoryMsg(chatID int64, cat content.MediaCategory) tgbotapi.MessageConfig {
	pick := content.RandomPlaylist(cat)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\nMy pick for you: %s\n%s\n\nAll of them:\n", cat.Label, pick.Title, pick.URL)
	for _, p := range cat.Items {
		fmt.Fprintf(&b, "• %s: %s\n", p.Title, p.URL)
	}

	msg := tgbotapi.NewMessage(chatID, b.String())
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Categories", "action=media"),
			tgbotapi.NewInlineKeyboardButtonData("🏠 Menu", "action=menu"),
		),
	)
	return msg
}
