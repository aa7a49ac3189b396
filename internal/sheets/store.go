// Package sheets provides the spreadsheet-backed task store. The Google
// spreadsheet is the sole persistent owner of task state; the bot keeps no
// local cache and every read re-fetches the full row set.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/redaksi/redaksibot/internal/config"
)

// readRange covers the fixed six-column layout of the first worksheet.
const readRange = "A:F"

// statusColumn is the sheet column holding task status (column 6).
const statusColumn = "F"

// ErrNotFound is returned when no row matches a requested task id.
var ErrNotFound = errors.New("task not found")

// Store defines the narrow interface to the spreadsheet. Keeping the access
// pattern this small makes the interleaving between the reminder cycle, the
// intake wizard, and acknowledgements visible at the interface; there is no
// transaction discipline beyond what the Sheets API gives per call.
type Store interface {
	// ListTasks fetches every data row from the sheet.
	ListTasks(ctx context.Context) ([]Task, error)

	// AppendTask appends a new row with the task's values in column order.
	AppendTask(ctx context.Context, task Task) error

	// FindRowByID locates the row whose id column exactly matches id and
	// returns its 1-indexed sheet row together with the decoded task.
	// Returns ErrNotFound when no row matches.
	FindRowByID(ctx context.Context, id int) (int, Task, error)

	// UpdateStatus overwrites the status cell of the given sheet row.
	UpdateStatus(ctx context.Context, row int, status string) error
}

type sheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
	logger        *slog.Logger
}

// NewStore authenticates with the configured service account credentials,
// resolves the spreadsheet by name via the Drive API, and returns a Store
// bound to its first worksheet.
func NewStore(ctx context.Context, cfg config.SheetsConfig, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "sheets_store")

	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file %s: %w", cfg.CredentialsFile, err)
	}

	jwtCfg, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsScope, drive.DriveMetadataReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}
	client := jwtCfg.Client(ctx)

	driveSvc, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive client: %w", err)
	}

	query := fmt.Sprintf("name = '%s' and mimeType = 'application/vnd.google-apps.spreadsheet' and trashed = false", cfg.SpreadsheetName)
	list, err := driveSvc.Files.List().Q(query).Fields("files(id, name)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to look up spreadsheet %q: %w", cfg.SpreadsheetName, err)
	}
	if len(list.Files) == 0 {
		return nil, fmt.Errorf("spreadsheet %q not found", cfg.SpreadsheetName)
	}
	spreadsheetID := list.Files[0].Id

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	log.Info("Connected to spreadsheet", "name", cfg.SpreadsheetName, "spreadsheet_id", spreadsheetID)
	return &sheetsStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		logger:        log,
	}, nil
}

func (s *sheetsStore) ListTasks(ctx context.Context) ([]Task, error) {
	values, err := s.readAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}

	idx := headerIndex(values[0])
	tasks := make([]Task, 0, len(values)-1)
	for i, row := range values[1:] {
		task, err := taskFromRow(idx, row)
		if err != nil {
			s.logger.WarnContext(ctx, "Skipping malformed row", "sheet_row", i+2, "error", err)
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *sheetsStore) AppendTask(ctx context.Context, task Task) error {
	// RAW keeps the deadline a literal string; USER_ENTERED would let the
	// sheet coerce it into a locale-formatted date cell.
	valueRange := &sheets.ValueRange{Values: [][]interface{}{task.row()}}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, readRange, valueRange).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append task %d: %w", task.ID, err)
	}

	s.logger.InfoContext(ctx, "Appended task row", "task_id", task.ID, "author", task.Author)
	return nil
}

func (s *sheetsStore) FindRowByID(ctx context.Context, id int) (int, Task, error) {
	values, err := s.readAll(ctx)
	if err != nil {
		return 0, Task{}, err
	}
	if len(values) == 0 {
		return 0, Task{}, ErrNotFound
	}

	idx := headerIndex(values[0])
	// Match against the id column only; similar numbers may appear in other
	// columns (deadlines, titles).
	for i, row := range values[1:] {
		task, err := taskFromRow(idx, row)
		if err != nil {
			continue
		}
		if task.ID == id {
			return i + 2, task, nil // +2: 1-indexed rows, header occupies row 1
		}
	}
	return 0, Task{}, ErrNotFound
}

func (s *sheetsStore) UpdateStatus(ctx context.Context, row int, status string) error {
	cell := fmt.Sprintf("%s%d", statusColumn, row)
	valueRange := &sheets.ValueRange{Values: [][]interface{}{{status}}}
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, cell, valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update status cell %s: %w", cell, err)
	}

	s.logger.InfoContext(ctx, "Updated task status", "sheet_row", row, "status", status)
	return nil
}

func (s *sheetsStore) readAll(ctx context.Context) ([][]interface{}, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet values: %w", err)
	}
	return resp.Values, nil
}
