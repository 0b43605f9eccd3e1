package content

import "math/rand"

// Playlist is one recommendable item.
type Playlist struct {
	Title string
	URL   string
}

// MediaCategory groups playlists under a menu label.
type MediaCategory struct {
	ID    string
	Label string
	Items []Playlist
}

// MediaCategories is the fixed recommendation catalog, in menu order.
var MediaCategories = []MediaCategory{
	{
		ID: "meditation", Label: "🧘 Meditation",
		Items: []Playlist{
			{Title: "Guided breathing, 10 minutes", URL: "https://youtu.be/inpok4MKVLM"},
			{Title: "Body scan before bed", URL: "https://youtu.be/ihO02wUzgkc"},
			{Title: "Calm piano for unwinding", URL: "https://youtu.be/lCOF9LN_Zxs"},
		},
	},
	{
		ID: "focus", Label: "📚 Focus",
		Items: []Playlist{
			{Title: "Lo-fi beats to study to", URL: "https://youtu.be/jfKfPfyJRdk"},
			{Title: "Deep focus ambient", URL: "https://youtu.be/tNkZsRW7h2c"},
			{Title: "25-minute pomodoro timer", URL: "https://youtu.be/1hDUh0zT9vY"},
		},
	},
	{
		ID: "workout", Label: "💪 Workout",
		Items: []Playlist{
			{Title: "15-minute full-body, no equipment", URL: "https://youtu.be/UBMk30rjy0o"},
			{Title: "HIIT + strength, 20 minutes", URL: "https://youtu.be/ml6cT4AZdqI"},
			{Title: "Evening stretch routine", URL: "https://youtu.be/g_tea8ZNk5A"},
		},
	},
	{
		ID: "sleep", Label: "🌙 Sleep",
		Items: []Playlist{
			{Title: "Rain sounds, 8 hours", URL: "https://youtu.be/q76bMs-NwRk"},
			{Title: "Sleep stories, soft voice", URL: "https://youtu.be/1ZYbU82GVz4"},
			{Title: "Delta waves for deep sleep", URL: "https://youtu.be/xQ6xgDI7Whc"},
		},
	},
}

// FindCategory looks a category up by its postback id.
func FindCategory(id string) (MediaCategory, bool) {
	for _, c := range MediaCategories {
		if c.ID == id {
			return c, true
		}
	}
	return MediaCategory{}, false
}

// RandomPlaylist picks one item from the category.
func RandomPlaylist(cat MediaCategory) Playlist {
	return cat.Items[rand.Intn(len(cat.Items))]
}

// RandomJournalIdx jumps the cursor to a random catalog position.
func RandomJournalIdx() int {
	return rand.Intn(len(Journals))
}
