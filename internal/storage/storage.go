package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"telegram-mood-journal/internal/models"
)

//go:embed schema.sql
var ddl embed.FS

// DB wraps the SQLite connection with the store operations the bot needs.
type DB struct{ *sql.DB }

// Open opens (or creates) the database at path, applies PRAGMAs and the
// embedded schema, and returns the store.
func Open(ctx context.Context, path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// SQLite is a single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &DB{db}, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	b, err := ddl.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, string(b))
	return err
}

// ---------- users -----------------------------------------------------------

// EnsureUser creates the user row if missing. Idempotent; called at event
// ingestion before any per-user logic.
func (d *DB) EnsureUser(ctx context.Context, chatID int64) error {
	_, err := d.ExecContext(ctx, `
        INSERT INTO users (chat_id, created_at) VALUES (?, ?)
        ON CONFLICT(chat_id) DO NOTHING`,
		chatID, time.Now().UTC().Unix())
	return err
}

// GetMode returns the conversation mode; a missing row means idle.
func (d *DB) GetMode(ctx context.Context, chatID int64) (models.Mode, error) {
	var (
		kind  string
		score sql.NullInt64
	)
	err := d.QueryRowContext(ctx,
		`SELECT mode_kind, mode_score FROM users WHERE chat_id=?`, chatID,
	).Scan(&kind, &score)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Idle, nil
	}
	if err != nil {
		return models.Idle, err
	}

	m := models.Mode{Kind: models.ModeKind(kind)}
	if score.Valid {
		v := int(score.Int64)
		m.Score = &v
	}
	return m, nil
}

func (d *DB) SetMode(ctx context.Context, chatID int64, m models.Mode) error {
	var score sql.NullInt64
	if m.Score != nil {
		score = sql.NullInt64{Int64: int64(*m.Score), Valid: true}
	}
	_, err := d.ExecContext(ctx,
		`UPDATE users SET mode_kind=?, mode_score=? WHERE chat_id=?`,
		string(m.Kind), score, chatID)
	return err
}

// ---------- diary -----------------------------------------------------------

func (d *DB) AddDiary(ctx context.Context, chatID int64, day, text string, score *int) error {
	var s sql.NullInt64
	if score != nil {
		s = sql.NullInt64{Int64: int64(*score), Valid: true}
	}
	_, err := d.ExecContext(ctx, `
        INSERT INTO diary (chat_id, day, score, text, created_at)
        VALUES (?, ?, ?, ?, ?)`,
		chatID, day, s, text, time.Now().UTC().Unix())
	return err
}

// DiaryCount counts every entry, with no per-day dedup.
func (d *DB) DiaryCount(ctx context.Context, chatID int64) (int, error) {
	var c int
	err := d.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM diary WHERE chat_id=?`, chatID).Scan(&c)
	return c, err
}

// DiaryDays returns the distinct entry days for the user, newest first.
func (d *DB) DiaryDays(ctx context.Context, chatID int64) ([]string, error) {
	rows, err := d.QueryContext(ctx,
		`SELECT DISTINCT day FROM diary WHERE chat_id=? ORDER BY day DESC`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

// ---------- todo ------------------------------------------------------------

func (d *DB) AddTodo(ctx context.Context, chatID int64, title string) error {
	_, err := d.ExecContext(ctx, `
        INSERT INTO todo (chat_id, title, status, created_at)
        VALUES (?, ?, ?, ?)`,
		chatID, title, string(models.TodoPending), time.Now().UTC().Unix())
	return err
}

// ListTodos returns the 20 most recent items, newest first.
func (d *DB) ListTodos(ctx context.Context, chatID int64) ([]models.TodoItem, error) {
	rows, err := d.QueryContext(ctx, `
        SELECT id, chat_id, title, status, created_at
        FROM todo WHERE chat_id=? ORDER BY id DESC LIMIT 20`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.TodoItem
	for rows.Next() {
		var t models.TodoItem
		if err := rows.Scan(&t.ID, &t.ChatID, &t.Title, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

func (d *DB) MarkTodoDone(ctx context.Context, chatID, todoID int64) error {
	_, err := d.ExecContext(ctx,
		`UPDATE todo SET status=? WHERE chat_id=? AND id=?`,
		string(models.TodoDone), chatID, todoID)
	return err
}

func (d *DB) ClearDoneTodos(ctx context.Context, chatID int64) error {
	_, err := d.ExecContext(ctx,
		`DELETE FROM todo WHERE chat_id=? AND status=?`,
		chatID, string(models.TodoDone))
	return err
}

// ---------- sleep settings --------------------------------------------------

// GetSleep returns the user's sleep setting; a missing row reads as all-off.
func (d *DB) GetSleep(ctx context.Context, chatID int64) (models.SleepSetting, error) {
	s := models.SleepSetting{ChatID: chatID}
	var enabled int
	err := d.QueryRowContext(ctx, `
        SELECT bedtime, waketime, enabled, updated_at
        FROM sleep_settings WHERE chat_id=?`, chatID,
	).Scan(&s.Bedtime, &s.Waketime, &enabled, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return s, nil
	}
	if err != nil {
		return s, err
	}
	s.Enabled = enabled != 0
	return s, nil
}

func (d *DB) SetSleep(ctx context.Context, s models.SleepSetting) error {
	_, err := d.ExecContext(ctx, `
        INSERT INTO sleep_settings (chat_id, bedtime, waketime, enabled, updated_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(chat_id) DO UPDATE SET
            bedtime    = excluded.bedtime,
            waketime   = excluded.waketime,
            enabled    = excluded.enabled,
            updated_at = excluded.updated_at`,
		s.ChatID, s.Bedtime, s.Waketime, boolToInt(s.Enabled), time.Now().UTC().Unix())
	return err
}

// ListEnabledSleep enumerates every user with reminders switched on, for
// startup reconciliation.
func (d *DB) ListEnabledSleep(ctx context.Context) ([]models.SleepSetting, error) {
	rows, err := d.QueryContext(ctx, `
        SELECT chat_id, bedtime, waketime, enabled, updated_at
        FROM sleep_settings WHERE enabled=1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.SleepSetting
	for rows.Next() {
		var (
			s       models.SleepSetting
			enabled int
		)
		if err := rows.Scan(&s.ChatID, &s.Bedtime, &s.Waketime, &enabled, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.Enabled = enabled != 0
		res = append(res, s)
	}
	return res, rows.Err()
}

// ---------- journal cursor --------------------------------------------------

// GetJournalIdx returns the user's position in the journal catalog,
// creating the row at 0 on first read.
func (d *DB) GetJournalIdx(ctx context.Context, chatID int64) (int, error) {
	var idx int
	err := d.QueryRowContext(ctx,
		`SELECT idx FROM journal_state WHERE chat_id=?`, chatID).Scan(&idx)
	if errors.Is(err, sql.ErrNoRows) {
		_, err = d.ExecContext(ctx, `
            INSERT INTO journal_state (chat_id, idx, updated_at) VALUES (?, 0, ?)`,
			chatID, time.Now().UTC().Unix())
		return 0, err
	}
	return idx, err
}

func (d *DB) SetJournalIdx(ctx context.Context, chatID int64, idx int) error {
	_, err := d.ExecContext(ctx, `
        INSERT INTO journal_state (chat_id, idx, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(chat_id) DO UPDATE SET
            idx        = excluded.idx,
            updated_at = excluded.updated_at`,
		chatID, idx, time.Now().UTC().Unix())
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
