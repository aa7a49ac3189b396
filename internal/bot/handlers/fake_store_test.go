package handlers

import (
	"context"

	"github.com/redaksi/redaksibot/internal/sheets"
)

// fakeStore is an in-memory sheets.Store for handler tests. Row numbers
// follow the sheet convention: data starts at row 2, below the header.
type fakeStore struct {
	tasks     []sheets.Task
	listErr   error
	appendErr error
	findErr   error
	updateErr error

	appended []sheets.Task
	updates  []statusUpdate
}

type statusUpdate struct {
	row    int
	status string
}

func (f *fakeStore) ListTasks(_ context.Context) ([]sheets.Task, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.tasks, nil
}

func (f *fakeStore) AppendTask(_ context.Context, task sheets.Task) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, task)
	f.tasks = append(f.tasks, task)
	return nil
}

func (f *fakeStore) FindRowByID(_ context.Context, id int) (int, sheets.Task, error) {
	if f.findErr != nil {
		return 0, sheets.Task{}, f.findErr
	}
	for i, t := range f.tasks {
		if t.ID == id {
			return i + 2, t, nil
		}
	}
	return 0, sheets.Task{}, sheets.ErrNotFound
}

func (f *fakeStore) UpdateStatus(_ context.Context, row int, status string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, statusUpdate{row: row, status: status})
	if i := row - 2; i >= 0 && i < len(f.tasks) {
		f.tasks[i].Status = status
	}
	return nil
}
