// Package handlers is the conversation state machine: it interprets inbound
// postbacks and free text according to the user's persisted mode and
// dispatches to the diary, todo, sleep, journal and media flows.
package handlers

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"telegram-mood-journal/internal/models"
	"telegram-mood-journal/internal/storage"
	"telegram-mood-journal/internal/support"
	"telegram-mood-journal/internal/syncutil"
)

// Sender is the slice of the bot API the handler uses. *tgbotapi.BotAPI
// satisfies it; tests plug a recorder.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Resyncer re-derives a user's reminder triggers after a settings write.
type Resyncer interface {
	Reconcile(ctx context.Context, chatID int64) error
}

type Handler struct {
	Bot     Sender
	DB      *storage.DB
	Sched   Resyncer
	Support support.Responder
	Log     *zap.Logger

	loc   *time.Location // reference timezone for calendar days
	locks *syncutil.KeyedMutex
}

func New(bot Sender, db *storage.DB, sched Resyncer, sup support.Responder, log *zap.Logger, loc *time.Location) *Handler {
	return &Handler{
		Bot:     bot,
		DB:      db,
		Sched:   sched,
		Support: sup,
		Log:     log,
		loc:     loc,
		locks:   syncutil.NewKeyedMutex(),
	}
}

// HandleUpdate routes one inbound event. Work for a single chat is
// serialized so a stale mode is never acted upon; unrelated chats proceed
// concurrently.
func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	switch {
	case upd.Message != nil && upd.Message.Text != "":
		msg := upd.Message
		chatID := msg.Chat.ID

		unlock := h.locks.Lock(chatID)
		defer unlock()

		if err := h.DB.EnsureUser(ctx, chatID); err != nil {
			h.Log.Error("ensure user failed", zap.Int64("chat_id", chatID), zap.Error(err))
			return
		}

		text := strings.TrimSpace(msg.Text)
		if msg.IsCommand() {
			h.handleCommand(ctx, chatID, msg.Command())
			return
		}
		h.HandleText(ctx, chatID, text)

	case upd.CallbackQuery != nil:
		cq := upd.CallbackQuery
		if cq.Message == nil {
			return
		}
		chatID := cq.Message.Chat.ID

		// always answer callback
		_, _ = h.Bot.Request(tgbotapi.NewCallback(cq.ID, ""))

		unlock := h.locks.Lock(chatID)
		defer unlock()

		if err := h.DB.EnsureUser(ctx, chatID); err != nil {
			h.Log.Error("ensure user failed", zap.Int64("chat_id", chatID), zap.Error(err))
			return
		}
		h.HandlePostback(ctx, chatID, cq.Data)

	default:
		// Non-text message types (stickers, photos, joins) are dropped.
	}
}

func (h *Handler) handleCommand(ctx context.Context, chatID int64, cmd string) {
	switch cmd {
	case "start", "menu":
		if err := h.DB.SetMode(ctx, chatID, models.Idle); err != nil {
			h.Log.Error("set mode failed", zap.Int64("chat_id", chatID), zap.Error(err))
		}
		h.sendMsg(mainMenuMsg(chatID))
	default:
		h.send(chatID, fallbackText)
	}
}

func (h *Handler) send(chatID int64, text string) {
	h.sendMsg(tgbotapi.NewMessage(chatID, text))
}

func (h *Handler) sendMsg(c tgbotapi.Chattable) {
	if _, err := h.Bot.Send(c); err != nil {
		h.Log.Error("send failed", zap.Error(err))
	}
}
