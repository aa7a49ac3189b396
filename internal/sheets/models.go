package sheets

import (
	"fmt"
	"strconv"
	"strings"
)

// Task statuses. Status is compared case-insensitively wherever it is read;
// these constants are the canonical spellings written to the sheet.
const (
	StatusPending = "pending"
	StatusDone    = "done"
)

// Column headers as they appear in row 1 of the production sheet.
const (
	headerID       = "id"
	headerChatRef  = "chat_id"
	headerAuthor   = "penulis"
	headerTitle    = "judul"
	headerDeadline = "deadline"
	headerStatus   = "status"
)

// Task represents one article-tracking row in the spreadsheet.
// Only Status is mutable after the row is created.
type Task struct {
	ID       int
	ChatRef  string // chat the row's reminders are addressed to
	Author   string // normalized to start with @
	Title    string
	Deadline string // YYYY-MM-DD, validated at intake time only
	Status   string
}

// IsPending reports whether the task status is pending, case-insensitively.
func (t Task) IsPending() bool {
	return strings.EqualFold(t.Status, StatusPending)
}

// IsDone reports whether the task status is done, case-insensitively.
func (t Task) IsDone() bool {
	return strings.EqualFold(t.Status, StatusDone)
}

// row returns the task as an ordered value row matching the sheet's fixed
// column layout (id, chat_id, penulis, judul, deadline, status).
func (t Task) row() []interface{} {
	return []interface{}{t.ID, t.ChatRef, t.Author, t.Title, t.Deadline, t.Status}
}

// NextID returns the id to assign to a new task: one greater than the highest
// existing id, or 1 when there are no tasks yet. Ids are never reused.
func NextID(tasks []Task) int {
	maxID := 0
	for _, t := range tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID + 1
}

// headerIndex maps header cell values to their zero-based column positions.
func headerIndex(row []interface{}) map[string]int {
	idx := make(map[string]int, len(row))
	for i, cell := range row {
		name := strings.ToLower(cellString(cell))
		if name != "" {
			idx[name] = i
		}
	}
	return idx
}

// taskFromRow decodes one data row using the header index. It fails when the
// id cell is missing or non-numeric so malformed rows are caught at the store
// boundary instead of leaking into the handlers.
func taskFromRow(idx map[string]int, row []interface{}) (Task, error) {
	rawID := cellAt(idx, row, headerID)
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return Task{}, fmt.Errorf("malformed id %q: %w", rawID, err)
	}

	return Task{
		ID:       id,
		ChatRef:  cellAt(idx, row, headerChatRef),
		Author:   cellAt(idx, row, headerAuthor),
		Title:    cellAt(idx, row, headerTitle),
		Deadline: cellAt(idx, row, headerDeadline),
		Status:   cellAt(idx, row, headerStatus),
	}, nil
}

func cellAt(idx map[string]int, row []interface{}, header string) string {
	i, ok := idx[header]
	if !ok || i >= len(row) {
		return ""
	}
	return cellString(row[i])
}

func cellString(cell interface{}) string {
	if cell == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", cell))
}
