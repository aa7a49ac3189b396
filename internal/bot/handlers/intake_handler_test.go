package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redaksi/redaksibot/internal/bot/conversation"
	"github.com/redaksi/redaksibot/internal/config"
	"github.com/redaksi/redaksibot/internal/sheets"
)

func TestWizardInputIgnoresGroupChats(t *testing.T) {
	deps := HandlerDeps{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:   &config.Config{},
		Store:    &fakeStore{},
		Sessions: conversation.NewManager(),
	}
	// Admin starts the wizard over DM, then posts unrelated text in the group.
	deps.Sessions.Begin(42)

	handle := NewWizardInputHandler(deps)
	handle(context.Background(), nil, &models.Update{
		Message: &models.Message{
			Text: "some group banter",
			From: &models.User{ID: 42},
			Chat: models.Chat{ID: -100900, Type: models.ChatTypeGroup},
		},
	})

	// The DM session is untouched and nothing was written.
	sess, ok := deps.Sessions.Get(42)
	require.True(t, ok)
	assert.Equal(t, conversation.StateTitle, sess.State)
	assert.Empty(t, sess.Title)

	store := deps.Store.(*fakeStore)
	assert.Empty(t, store.appended)
}

func TestCommitTask(t *testing.T) {
	sess := conversation.Session{
		State:    conversation.StateDone,
		Title:    "Launch Piece",
		Deadline: "2026-02-25",
		Author:   "@evitaaa",
	}

	t.Run("assigns next id and appends pending row", func(t *testing.T) {
		store := &fakeStore{tasks: []sheets.Task{
			{ID: 1, Status: "done"},
			{ID: 2, Status: "pending"},
		}}

		task, err := commitTask(context.Background(), store, sess, "-100900")
		require.NoError(t, err)

		assert.Equal(t, 3, task.ID)
		assert.Equal(t, "-100900", task.ChatRef)
		assert.Equal(t, "@evitaaa", task.Author)
		assert.Equal(t, "Launch Piece", task.Title)
		assert.Equal(t, "2026-02-25", task.Deadline)
		assert.Equal(t, sheets.StatusPending, task.Status)

		require.Len(t, store.appended, 1)
		assert.Equal(t, task, store.appended[0])
	})

	t.Run("first task on an empty sheet gets id 1", func(t *testing.T) {
		store := &fakeStore{}

		task, err := commitTask(context.Background(), store, sess, "-100900")
		require.NoError(t, err)
		assert.Equal(t, 1, task.ID)
	})

	t.Run("list failure writes nothing", func(t *testing.T) {
		store := &fakeStore{listErr: errors.New("sheet unavailable")}

		_, err := commitTask(context.Background(), store, sess, "-100900")
		assert.Error(t, err)
		assert.Empty(t, store.appended)
	})

	t.Run("append failure propagates", func(t *testing.T) {
		store := &fakeStore{appendErr: errors.New("sheet unavailable")}

		_, err := commitTask(context.Background(), store, sess, "-100900")
		assert.Error(t, err)
	})
}
