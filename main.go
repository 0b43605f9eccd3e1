package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"telegram-mood-journal/internal/config"
	"telegram-mood-journal/internal/handlers"
	"telegram-mood-journal/internal/logger"
	"telegram-mood-journal/internal/scheduler"
	"telegram-mood-journal/internal/storage"
	"telegram-mood-journal/internal/support"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger init error: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("fatal", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return err
	}

	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	log.Info("sqlite ready", zap.String("path", cfg.DBPath))

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return err
	}
	log.Info("bot authorized", zap.String("username", bot.Self.UserName))

	sup, err := support.FromConfig(cfg.OpenAIKey, cfg.SupportModel)
	if err != nil {
		return err
	}

	notify := scheduler.NotifierFunc(func(chatID int64, text string) error {
		_, err := bot.Send(tgbotapi.NewMessage(chatID, text))
		return err
	})
	sched, err := scheduler.New(db, notify, log, loc)
	if err != nil {
		return err
	}
	sched.Start()
	defer func() { _ = sched.Shutdown() }()

	if err := sched.ReconcileAll(ctx); err != nil {
		// Triggers for healthy users are already in place; keep serving.
		log.Error("startup reconciliation incomplete", zap.Error(err))
	}

	h := handlers.New(bot, db, sched, sup, log, loc)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", zap.Error(err))
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := bot.GetUpdatesChan(u)

	log.Info("listening for updates", zap.String("tz", cfg.Timezone))
	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal received")
			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := srv.Shutdown(shCtx)
			cancel()
			if err != nil {
				log.Warn("http server shutdown error", zap.Error(err))
			}
			return nil

		case upd := <-updates:
			h.HandleUpdate(ctx, upd)
		}
	}
}
