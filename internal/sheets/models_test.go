package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextID(t *testing.T) {
	tests := []struct {
		name  string
		tasks []Task
		want  int
	}{
		{
			name:  "empty sheet starts at 1",
			tasks: nil,
			want:  1,
		},
		{
			name:  "one greater than highest id",
			tasks: []Task{{ID: 1}, {ID: 2}, {ID: 3}},
			want:  4,
		},
		{
			name:  "gaps do not reuse ids",
			tasks: []Task{{ID: 2}, {ID: 7}, {ID: 5}},
			want:  8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextID(tt.tasks))
		})
	}
}

func TestTaskFromRow(t *testing.T) {
	header := []interface{}{"id", "chat_id", "penulis", "judul", "deadline", "status"}
	idx := headerIndex(header)

	t.Run("decodes a full row", func(t *testing.T) {
		task, err := taskFromRow(idx, []interface{}{"7", "", "@evitaaa", "Launch Piece", "2026-02-25", "pending"})
		require.NoError(t, err)
		assert.Equal(t, Task{
			ID:       7,
			Author:   "@evitaaa",
			Title:    "Launch Piece",
			Deadline: "2026-02-25",
			Status:   "pending",
		}, task)
	})

	t.Run("decodes numeric cells", func(t *testing.T) {
		task, err := taskFromRow(idx, []interface{}{float64(3), "", "@andi", "Draft", "2026-03-01", "done"})
		require.NoError(t, err)
		assert.Equal(t, 3, task.ID)
	})

	t.Run("tolerates short rows", func(t *testing.T) {
		task, err := taskFromRow(idx, []interface{}{"4", "", "@budi"})
		require.NoError(t, err)
		assert.Equal(t, 4, task.ID)
		assert.Empty(t, task.Title)
		assert.Empty(t, task.Status)
	})

	t.Run("rejects non-numeric id", func(t *testing.T) {
		_, err := taskFromRow(idx, []interface{}{"abc", "", "@budi", "Draft", "2026-03-01", "pending"})
		assert.Error(t, err)
	})

	t.Run("rejects missing id", func(t *testing.T) {
		_, err := taskFromRow(idx, []interface{}{})
		assert.Error(t, err)
	})
}

func TestHeaderIndex(t *testing.T) {
	idx := headerIndex([]interface{}{"ID", "chat_id", "Penulis", "judul", "deadline", "STATUS"})

	// Header matching is case-insensitive and positional.
	assert.Equal(t, 0, idx["id"])
	assert.Equal(t, 2, idx["penulis"])
	assert.Equal(t, 5, idx["status"])
}

func TestTaskStatus(t *testing.T) {
	assert.True(t, Task{Status: "pending"}.IsPending())
	assert.True(t, Task{Status: "Pending"}.IsPending())
	assert.True(t, Task{Status: "DONE"}.IsDone())
	assert.False(t, Task{Status: "done"}.IsPending())
	assert.False(t, Task{Status: "in_review"}.IsPending())
	assert.False(t, Task{Status: "in_review"}.IsDone())
}

func TestTaskRow(t *testing.T) {
	task := Task{ID: 9, Author: "@evitaaa", Title: "Launch Piece", Deadline: "2026-02-25", Status: StatusPending}

	row := task.row()

	require.Len(t, row, 6)
	assert.Equal(t, 9, row[0])
	assert.Equal(t, "@evitaaa", row[2])
	assert.Equal(t, "pending", row[5])
}
