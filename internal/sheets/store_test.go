package sheets

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

func newTestStore(t *testing.T, handler http.Handler) *sheetsStore {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := sheets.NewService(context.Background(),
		option.WithEndpoint(srv.URL),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)

	return &sheetsStore{
		svc:           svc,
		spreadsheetID: "sheet-id",
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestAppendTaskWritesRawValues(t *testing.T) {
	var query url.Values
	store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{}"))
	}))

	err := store.AppendTask(context.Background(), Task{
		ID:       1,
		Author:   "@evitaaa",
		Title:    "Launch Piece",
		Deadline: "2026-02-25",
		Status:   StatusPending,
	})
	require.NoError(t, err)

	// USER_ENTERED would let the sheet coerce the deadline into a
	// locale-formatted date cell; it has to stay a literal string.
	assert.Equal(t, "RAW", query.Get("valueInputOption"))
}

func TestUpdateStatusWritesRawValues(t *testing.T) {
	var query url.Values
	store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{}"))
	}))

	err := store.UpdateStatus(context.Background(), 3, StatusDone)
	require.NoError(t, err)

	assert.Equal(t, "RAW", query.Get("valueInputOption"))
}

func TestListTasksSkipsMalformedRows(t *testing.T) {
	store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"range": "A:F",
			"values": [
				["id", "chat_id", "penulis", "judul", "deadline", "status"],
				["1", "-100900", "@evitaaa", "Launch Piece", "2026-02-25", "pending"],
				["not-a-number", "-100900", "@budi", "Broken Row", "2026-03-01", "pending"]
			]
		}`))
	}))

	tasks, err := store.ListTasks(context.Background())
	require.NoError(t, err)

	require.Len(t, tasks, 1)
	assert.Equal(t, 1, tasks[0].ID)
	assert.Equal(t, "Launch Piece", tasks[0].Title)
}
