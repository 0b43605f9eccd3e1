// Package scheduler keeps the recurring sleep-reminder triggers in sync with
// the persisted per-user settings. At most two triggers exist per user (bed
// and wake); reconciliation removes and conditionally recreates both, so the
// live trigger set always matches the last-written settings exactly.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"telegram-mood-journal/internal/models"
	"telegram-mood-journal/internal/syncutil"
	"telegram-mood-journal/internal/timefmt"
)

// Kind distinguishes the two trigger slots a user can hold.
type Kind string

const (
	KindBed  Kind = "bed"
	KindWake Kind = "wake"
)

const (
	bedtimeText = "🌙 Time to wind down for bed 🤍\n" +
		"Put the phone away for 5 minutes, take 3 slow breaths, then lights out.\n" +
		"If things feel heavy tonight, 1323 is there."
	wakeText = "☀️ Time to wake up 🤍\n" +
		"One glass of water and a 30-second stretch.\n" +
		"May today sit a little lighter on you."

	// A trigger whose wall-clock time passed within this window while the
	// process was down still fires once at startup instead of skipping the day.
	misfireGrace = 5 * time.Minute
)

// Notifier pushes a message to a user outside any inbound event.
type Notifier interface {
	Push(chatID int64, text string) error
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(chatID int64, text string) error

func (f NotifierFunc) Push(chatID int64, text string) error { return f(chatID, text) }

// Store is the slice of the persistent store the scheduler reads.
type Store interface {
	GetSleep(ctx context.Context, chatID int64) (models.SleepSetting, error)
	ListEnabledSleep(ctx context.Context) ([]models.SleepSetting, error)
}

type jobKey struct {
	Kind   Kind
	ChatID int64
}

// Scheduler owns the trigger table. Reconcile and ReconcileAll are the only
// mutation entry points; per-user locking keeps a reconcile's remove/recreate
// halves from interleaving with a concurrent reconcile for the same user.
type Scheduler struct {
	store    Store
	notifier Notifier
	log      *zap.Logger
	loc      *time.Location
	clock    clockwork.Clock
	cron     gocron.Scheduler

	userMu *syncutil.KeyedMutex
	mu     sync.Mutex // guards jobs
	jobs   map[jobKey]uuid.UUID
}

// Option tweaks scheduler construction (tests inject a fake clock).
type Option func(*Scheduler)

func WithClock(clk clockwork.Clock) Option {
	return func(s *Scheduler) { s.clock = clk }
}

func New(store Store, notifier Notifier, log *zap.Logger, loc *time.Location, opts ...Option) (*Scheduler, error) {
	s := &Scheduler{
		store:    store,
		notifier: notifier,
		log:      log,
		loc:      loc,
		clock:    clockwork.NewRealClock(),
		userMu:   syncutil.NewKeyedMutex(),
		jobs:     make(map[jobKey]uuid.UUID),
	}
	for _, o := range opts {
		o(s)
	}

	cron, err := gocron.NewScheduler(
		gocron.WithLocation(loc),
		gocron.WithClock(s.clock),
	)
	if err != nil {
		return nil, fmt.Errorf("new scheduler: %w", err)
	}
	s.cron = cron
	return s, nil
}

// Start begins firing triggers. Jobs may be added before or after.
func (s *Scheduler) Start() { s.cron.Start() }

// Shutdown stops the trigger runner and waits for in-flight jobs.
func (s *Scheduler) Shutdown() error { return s.cron.Shutdown() }

// Reconcile re-derives the user's triggers from their current settings:
// both slots are removed unconditionally, then recreated only if the setting
// is enabled and the corresponding time is set. Removing an absent trigger
// is a no-op. Calling this twice with unchanged settings yields the same
// single trigger per slot.
func (s *Scheduler) Reconcile(ctx context.Context, chatID int64) error {
	return s.reconcile(ctx, chatID, 0)
}

// ReconcileAll rebuilds triggers for every enabled user at process start.
// A failure for one user is logged and does not stop the others. Triggers
// missed within the grace window fire immediately once.
func (s *Scheduler) ReconcileAll(ctx context.Context) error {
	settings, err := s.store.ListEnabledSleep(ctx)
	if err != nil {
		return fmt.Errorf("list enabled sleep settings: %w", err)
	}
	for _, set := range settings {
		if err := s.reconcile(ctx, set.ChatID, misfireGrace); err != nil {
			s.log.Error("reconcile user failed",
				zap.Int64("chat_id", set.ChatID), zap.Error(err))
		}
	}
	s.log.Info("sleep reminders reconciled", zap.Int("users", len(settings)))
	return nil
}

func (s *Scheduler) reconcile(ctx context.Context, chatID int64, grace time.Duration) error {
	unlock := s.userMu.Lock(chatID)
	defer unlock()

	s.removeTrigger(jobKey{KindBed, chatID})
	s.removeTrigger(jobKey{KindWake, chatID})

	set, err := s.store.GetSleep(ctx, chatID)
	if err != nil {
		return fmt.Errorf("get sleep setting: %w", err)
	}
	if !set.Enabled {
		return nil
	}

	if set.Bedtime != "" {
		if err := s.addTrigger(KindBed, chatID, set.Bedtime, grace); err != nil {
			return err
		}
	}
	if set.Waketime != "" {
		if err := s.addTrigger(KindWake, chatID, set.Waketime, grace); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) removeTrigger(key jobKey) {
	s.mu.Lock()
	id, ok := s.jobs[key]
	if ok {
		delete(s.jobs, key)
	}
	s.mu.Unlock()
	if !ok {
		return
	}
	if err := s.cron.RemoveJob(id); err != nil {
		// Already gone; removal of a non-existent trigger is not an error.
		s.log.Debug("remove trigger", zap.String("kind", string(key.Kind)),
			zap.Int64("chat_id", key.ChatID), zap.Error(err))
	}
}

func (s *Scheduler) addTrigger(kind Kind, chatID int64, hhmm string, grace time.Duration) error {
	hour, minute, err := timefmt.SplitHHMM(hhmm)
	if err != nil {
		return fmt.Errorf("trigger time %q: %w", hhmm, err)
	}

	job, err := s.cron.NewJob(
		gocron.CronJob(fmt.Sprintf("%d %d * * *", minute, hour), false),
		gocron.NewTask(func() { s.fire(kind, chatID) }),
		gocron.WithName(fmt.Sprintf("%s:%d", kind, chatID)),
	)
	if err != nil {
		return fmt.Errorf("add %s trigger: %w", kind, err)
	}

	s.mu.Lock()
	s.jobs[jobKey{kind, chatID}] = job.ID()
	s.mu.Unlock()

	if grace > 0 && s.missedWithin(hour, minute, grace) {
		s.fire(kind, chatID)
	}
	return nil
}

// missedWithin reports whether today's hh:mm in the reference timezone
// passed no longer than grace ago.
func (s *Scheduler) missedWithin(hour, minute int, grace time.Duration) bool {
	now := s.clock.Now().In(s.loc)
	at := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, s.loc)
	return !at.After(now) && now.Sub(at) <= grace
}

// fire pushes the fixed message for a trigger. Delivery failures are logged
// and never retried here; the next daily firing is unaffected.
func (s *Scheduler) fire(kind Kind, chatID int64) {
	text := bedtimeText
	if kind == KindWake {
		text = wakeText
	}
	if err := s.notifier.Push(chatID, text); err != nil {
		s.log.Error("reminder push failed",
			zap.String("kind", string(kind)), zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}
	s.log.Debug("reminder sent",
		zap.String("kind", string(kind)), zap.Int64("chat_id", chatID))
}

// activeKinds reports which trigger slots a user currently holds.
func (s *Scheduler) activeKinds(chatID int64) []Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kinds []Kind
	for _, k := range []Kind{KindBed, KindWake} {
		if _, ok := s.jobs[jobKey{k, chatID}]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
