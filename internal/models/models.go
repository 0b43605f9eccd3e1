package models

// User is a bot user, created on the first inbound event and never deleted.
type User struct {
	ChatID    int64 `db:"chat_id"    json:"chat_id"`
	Mode      Mode  `json:"mode"`
	CreatedAt int64 `db:"created_at" json:"created_at"`
}

// DiaryEntry is one mood-journal entry. Several entries per day are allowed;
// the streak only checks day presence, the total counts every row.
type DiaryEntry struct {
	ID        int64  `db:"id"`
	ChatID    int64  `db:"chat_id"`
	Day       string `db:"day"`   // YYYY-MM-DD
	Score     *int   `db:"score"` // 1..5, nil -> skipped
	Text      string `db:"text"`
	CreatedAt int64  `db:"created_at"`
}

type TodoStatus string

const (
	TodoPending TodoStatus = "todo"
	TodoDone    TodoStatus = "done"
)

// TodoItem is a single to-do row. Status moves todo -> done only; done rows
// are removed in bulk via the clear action.
type TodoItem struct {
	ID        int64      `db:"id"`
	ChatID    int64      `db:"chat_id"`
	Title     string     `db:"title"`
	Status    TodoStatus `db:"status"`
	CreatedAt int64      `db:"created_at"`
}

// SleepSetting holds per-user reminder times, one row per user.
// Empty Bedtime/Waketime means the time is not set.
type SleepSetting struct {
	ChatID    int64  `db:"chat_id"`
	Bedtime   string `db:"bedtime"`  // "HH:MM" or ""
	Waketime  string `db:"waketime"` // "HH:MM" or ""
	Enabled   bool   `db:"enabled"`
	UpdatedAt int64  `db:"updated_at"`
}
