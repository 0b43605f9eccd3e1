// Package content holds the fixed educational and media catalogs the bot
// serves. The catalogs are constants; per-user position lives in the store.
package content

// Journal is one educational poster: a title plus a few takeaway bullets.
type Journal struct {
	Title   string
	Bullets []string
}

// Journals is the ordered catalog the per-user cursor walks through.
var Journals = []Journal{
	{
		Title: "Student stress: notice it early, manage it early",
		Bullets: []string{
			"Stress is not weakness, it is a signal the load is climbing",
			"Name the source first: coursework, skills, environment or people",
			"Fix one small thing at a time before asking for more willpower",
		},
	},
	{
		Title: "Burnout warning signs",
		Bullets: []string{
			"Tired after a full night's sleep for more than a week",
			"Things you used to enjoy feel like chores",
			"Small tasks trigger outsized irritation",
		},
	},
	{
		Title: "The 5-minute reset",
		Bullets: []string{
			"Put the phone face down and breathe slowly for one minute",
			"Write the single next step, not the whole plan",
			"Stand up, stretch, drink a glass of water",
		},
	},
	{
		Title: "Sleep is a skill",
		Bullets: []string{
			"Same bedtime every day beats one long weekend lie-in",
			"Screens off 30 minutes before bed",
			"If you can't sleep in 20 minutes, get up and read something dull",
		},
	},
	{
		Title: "Asking for help is a strategy",
		Bullets: []string{
			"Talking to one trusted person halves the weight",
			"Hotlines exist precisely for the nights everything feels too much",
			"You do not need to hit bottom to deserve support",
		},
	},
	{
		Title: "Mood journaling that actually works",
		Bullets: []string{
			"Two honest sentences beat a perfect essay",
			"Score the day, then let the score go",
			"Reread old entries monthly: the pattern is the insight",
		},
	},
}

// JournalAt clamps idx into range and returns the entry plus the clamped idx.
func JournalAt(idx int) (Journal, int) {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(Journals) {
		idx = len(Journals) - 1
	}
	return Journals[idx], idx
}

// NextJournalIdx advances the cursor, wrapping to the start.
func NextJournalIdx(idx int) int {
	return (idx + 1) % len(Journals)
}
