package models

// ModeKind says how the next free-text message from a user is interpreted.
type ModeKind string

const (
	ModeIdle            ModeKind = ""
	ModeDiaryText       ModeKind = "diary_text"
	ModeDiaryTextScored ModeKind = "diary_text_scored"
	ModeTodoTitle       ModeKind = "todo_title"
	ModeSupport         ModeKind = "support"
	ModeBedtimeInput    ModeKind = "bedtime_input"
	ModeWaketimeInput   ModeKind = "waketime_input"
)

// Mode is the persisted conversation state. Score is set only for
// ModeDiaryTextScored and carries the mood score picked before typing.
type Mode struct {
	Kind  ModeKind
	Score *int
}

// Idle is the zero mode, valid for any never-before-seen user.
var Idle = Mode{}

// ScoredDiary builds the diary-waiting mode with an attached score.
func ScoredDiary(score int) Mode {
	return Mode{Kind: ModeDiaryTextScored, Score: &score}
}

func (m Mode) IsIdle() bool { return m.Kind == ModeIdle }
