package tasks

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/redaksi/redaksibot/internal/sheets"
)

func TestRenderReminder(t *testing.T) {
	task := sheets.Task{
		ID:       7,
		Author:   "@evitaaa",
		Title:    "Launch Piece",
		Deadline: "2026-02-25",
		Status:   "pending",
	}

	out := renderReminder("Halo %s!\nJudul: %s\nDeadline: %s", task)

	assert.Equal(t, "Halo @evitaaa!\nJudul: Launch Piece\nDeadline: 2026-02-25", out)
}

func TestReminderCallbackData(t *testing.T) {
	t.Run("short title passes through", func(t *testing.T) {
		data := reminderCallbackData(sheets.Task{ID: 7, Title: "Launch Piece"})
		assert.Equal(t, "done_7_Launch Piece", data)
	})

	t.Run("long title is truncated but id segment is intact", func(t *testing.T) {
		long := strings.Repeat("a", 50)
		data := reminderCallbackData(sheets.Task{ID: 123, Title: long})

		assert.True(t, strings.HasPrefix(data, "done_123_"))
		assert.Equal(t, "done_123_"+strings.Repeat("a", 30)+"..", data)
	})

	t.Run("multibyte title stays within the callback byte cap", func(t *testing.T) {
		data := reminderCallbackData(sheets.Task{ID: 7, Title: strings.Repeat("é", 40)})

		assert.LessOrEqual(t, len(data), maxCallbackBytes)
		assert.True(t, strings.HasPrefix(data, "done_7_"))
		assert.True(t, strings.HasSuffix(data, ".."))
		assert.True(t, utf8.ValidString(data))
	})
}

func TestShortTitle(t *testing.T) {
	assert.Equal(t, "Launch Piece", shortTitle("Launch Piece", 55))
	assert.Equal(t, strings.Repeat("x", 30)+"..", shortTitle(strings.Repeat("x", 31), 55))

	// Multibyte titles drop below shortTitleLen runes when the byte budget
	// demands it, always cutting on rune boundaries.
	got := shortTitle(strings.Repeat("é", 40), 55)
	assert.Equal(t, strings.Repeat("é", 26)+"..", got)
	assert.LessOrEqual(t, len(got), 55)

	assert.Equal(t, "", shortTitle("anything", 0))
}
