package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/redaksi/redaksibot/internal/bot/conversation"
	"github.com/redaksi/redaksibot/internal/sheets"
)

// NewIntakeHandler returns a handler for the /tambah command, the entry
// point of the article intake wizard. Registration applies the
// PrivateChatOnly and AdminOnly middleware before this runs.
func NewIntakeHandler(deps HandlerDeps) bot.HandlerFunc {
	return intakeHandler{deps}.Handle
}

type intakeHandler struct {
	deps HandlerDeps
}

func (h intakeHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "intake")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Intake handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	userID := update.Message.From.ID
	log.InfoContext(ctx, "Starting intake wizard", "user_id", userID)

	h.deps.Sessions.Begin(userID)
	sendText(ctx, b, log, update.Message.Chat.ID, h.deps.Config.Messages.AskTitle)
}

// NewCancelHandler returns a handler for the /cancel command. It aborts an
// active wizard session without writing anything.
func NewCancelHandler(deps HandlerDeps) bot.HandlerFunc {
	return cancelHandler{deps}.Handle
}

type cancelHandler struct {
	deps HandlerDeps
}

func (h cancelHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "cancel")

	if update.Message == nil || update.Message.From == nil {
		return
	}

	userID := update.Message.From.ID
	if _, ok := h.deps.Sessions.Get(userID); !ok {
		log.DebugContext(ctx, "Cancel with no active session", "user_id", userID)
		return
	}

	h.deps.Sessions.End(userID)
	log.InfoContext(ctx, "Intake wizard cancelled", "user_id", userID)
	sendText(ctx, b, log, update.Message.Chat.ID, h.deps.Config.Messages.Cancelled)
}

// NewWizardInputHandler returns the default handler for plain text messages.
// Text from a user with an active session feeds the wizard; everything else
// is ignored.
func NewWizardInputHandler(deps HandlerDeps) bot.HandlerFunc {
	return wizardInputHandler{deps}.Handle
}

type wizardInputHandler struct {
	deps HandlerDeps
}

func (h wizardInputHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "wizard_input")

	if update.Message == nil || update.Message.From == nil {
		return
	}
	// Sessions are keyed by user id, so group text from an admin mid-wizard
	// must not advance their DM conversation.
	if update.Message.Chat.Type != models.ChatTypePrivate {
		return
	}
	// Commands are routed by their own handlers; a stray unknown command
	// should not become wizard input.
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	msgs := h.deps.Config.Messages

	sess, err := h.deps.Sessions.Advance(userID, update.Message.Text)
	switch {
	case errors.Is(err, conversation.ErrNoSession):
		return
	case errors.Is(err, conversation.ErrEmptyInput):
		log.DebugContext(ctx, "Ignoring non-text wizard input", "user_id", userID)
		switch sess.State {
		case conversation.StateTitle:
			sendText(ctx, b, log, chatID, msgs.AskTitle)
		case conversation.StateAuthor:
			sendText(ctx, b, log, chatID, msgs.AskAuthor)
		}
		return
	case errors.Is(err, conversation.ErrInvalidDeadline):
		log.DebugContext(ctx, "Rejected deadline input", "user_id", userID)
		sendText(ctx, b, log, chatID, msgs.InvalidDeadline)
		return
	}

	switch sess.State {
	case conversation.StateDeadline:
		sendText(ctx, b, log, chatID, msgs.AskDeadline)
	case conversation.StateAuthor:
		sendText(ctx, b, log, chatID, msgs.AskAuthor)
	case conversation.StateDone:
		groupRef := strconv.FormatInt(h.deps.Config.Telegram.GroupChatID, 10)
		task, err := commitTask(ctx, h.deps.Store, sess, groupRef)
		h.deps.Sessions.End(userID)
		if err != nil {
			log.ErrorContext(ctx, "Failed to commit task", "error", err, "user_id", userID)
			sendText(ctx, b, log, chatID, msgs.SaveError)
			return
		}

		log.InfoContext(ctx, "Task committed", "task_id", task.ID, "author", task.Author, "deadline", task.Deadline)
		sendText(ctx, b, log, chatID, fmt.Sprintf(msgs.TaskAdded, task.ID, task.Author, task.Title, task.Deadline))
	}
}

// commitTask assigns the next id and appends the collected task with status
// pending. The id is one greater than the highest id currently in the sheet.
// chatRef records the chat the row's reminders are addressed to.
func commitTask(ctx context.Context, store sheets.Store, sess conversation.Session, chatRef string) (sheets.Task, error) {
	tasks, err := store.ListTasks(ctx)
	if err != nil {
		return sheets.Task{}, fmt.Errorf("failed to read tasks for id assignment: %w", err)
	}

	task := sheets.Task{
		ID:       sheets.NextID(tasks),
		ChatRef:  chatRef,
		Author:   sess.Author,
		Title:    sess.Title,
		Deadline: sess.Deadline,
		Status:   sheets.StatusPending,
	}
	if err := store.AppendTask(ctx, task); err != nil {
		return sheets.Task{}, err
	}
	return task, nil
}
