package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJournalAtClamps(t *testing.T) {
	j, idx := JournalAt(-5)
	assert.Equal(t, 0, idx)
	assert.Equal(t, Journals[0].Title, j.Title)

	j, idx = JournalAt(len(Journals) + 3)
	assert.Equal(t, len(Journals)-1, idx)
	assert.Equal(t, Journals[len(Journals)-1].Title, j.Title)
}

func TestNextJournalIdxWraps(t *testing.T) {
	assert.Equal(t, 1, NextJournalIdx(0))
	assert.Equal(t, 0, NextJournalIdx(len(Journals)-1))
}

func TestRandomJournalIdxInRange(t *testing.T) {
	for i := 0; i < 50; i++ {
		idx := RandomJournalIdx()
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, len(Journals))
	}
}

func TestFindCategory(t *testing.T) {
	c, ok := FindCategory("focus")
	assert.True(t, ok)
	assert.NotEmpty(t, c.Items)

	_, ok = FindCategory("nope")
	assert.False(t, ok)
}

func TestRandomPlaylistFromCategory(t *testing.T) {
	cat, _ := FindCategory("sleep")
	for i := 0; i < 20; i++ {
		p := RandomPlaylist(cat)
		assert.Contains(t, cat.Items, p)
	}
}
