package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/redaksi/redaksibot/internal/sheets"
)

// Callback payload prefixes and menu actions.
const (
	callbackDonePrefix = "done_"

	callbackMenuPrefix = "menu_"
	callbackMenuList   = "menu_list"
	callbackMenuRecap  = "menu_rekap"
	callbackMenuGuide  = "menu_petunjuk"
	callbackMenuManual = "menu_panduan"
)

// confirmTimeLayout renders the confirmation timestamp as local wall-clock
// time, matching the reminder audience's timezone label.
const confirmTimeLayout = "15:04 WIB"

// parseDoneCallback extracts the task id from a "done_<id>" payload. Trailing
// segments (a truncated display title, which may itself contain underscores)
// are ignored; only the second segment resolves the id.
func parseDoneCallback(data string) (int, bool) {
	if !strings.HasPrefix(data, callbackDonePrefix) {
		return 0, false
	}
	parts := strings.SplitN(data, "_", 3)
	if len(parts) < 2 {
		return 0, false
	}
	id, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return id, true
}

// ackTask resolves the task row by id and flips its status to done. A second
// acknowledgement of an already-done row re-writes done; that is harmless and
// deliberately not short-circuited.
func ackTask(ctx context.Context, store sheets.Store, id int) (sheets.Task, error) {
	row, task, err := store.FindRowByID(ctx, id)
	if err != nil {
		return sheets.Task{}, err
	}
	if err := store.UpdateStatus(ctx, row, sheets.StatusDone); err != nil {
		return sheets.Task{}, err
	}
	task.Status = sheets.StatusDone
	return task, nil
}

// NewDoneCallbackHandler returns the handler for "done_*" callback queries
// coming from reminder buttons.
func NewDoneCallbackHandler(deps HandlerDeps) bot.HandlerFunc {
	return doneCallbackHandler{deps}.Handle
}

type doneCallbackHandler struct {
	deps HandlerDeps
}

func (h doneCallbackHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "done_callback")

	query := update.CallbackQuery
	if query == nil {
		return
	}

	// Answer first, regardless of outcome, to stop the button's loading
	// animation.
	answerCallback(ctx, b, log, query.ID)

	chatID, messageID, editable := callbackMessageRef(query)
	if chatID == 0 {
		log.WarnContext(ctx, "Callback query without resolvable chat", "data", query.Data)
		return
	}

	id, ok := parseDoneCallback(query.Data)
	if !ok {
		log.WarnContext(ctx, "Malformed done callback payload", "data", query.Data)
		return
	}

	msgs := h.deps.Config.Messages
	log.InfoContext(ctx, "Acknowledging task", "task_id", id, "user_id", query.From.ID)

	task, err := ackTask(ctx, h.deps.Store, id)
	if errors.Is(err, sheets.ErrNotFound) {
		log.WarnContext(ctx, "Acknowledged task id not found", "task_id", id)
		sendText(ctx, b, log, chatID, fmt.Sprintf(msgs.TaskNotFound, id))
		return
	}
	if err != nil {
		log.ErrorContext(ctx, "Failed to acknowledge task", "task_id", id, "error", err)
		sendText(ctx, b, log, chatID, msgs.SystemError)
		return
	}

	confirmedBy := query.From.Username
	if confirmedBy == "" {
		confirmedBy = query.From.FirstName
	}
	confirmation := fmt.Sprintf(msgs.Confirmed, task.ID, task.Title, confirmedBy, time.Now().Format(confirmTimeLayout))

	if editable {
		_, err = b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    chatID,
			MessageID: messageID,
			Text:      confirmation,
			ParseMode: models.ParseModeHTML,
		})
		if err == nil {
			return
		}
		// The status update is already committed; a failed edit (message too
		// old, already edited) degrades to a fresh confirmation message.
		log.WarnContext(ctx, "Failed to edit reminder message, sending fallback", "task_id", task.ID, "error", err)
	}
	sendText(ctx, b, log, chatID, fmt.Sprintf(msgs.ConfirmFallback, task.ID))
}

// NewMenuCallbackHandler returns the handler for "menu_*" callback queries
// coming from the /start inline keyboard.
func NewMenuCallbackHandler(deps HandlerDeps) bot.HandlerFunc {
	return menuCallbackHandler{deps}.Handle
}

type menuCallbackHandler struct {
	deps HandlerDeps
}

func (h menuCallbackHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "menu_callback")

	query := update.CallbackQuery
	if query == nil {
		return
	}

	answerCallback(ctx, b, log, query.ID)

	chatID, _, _ := callbackMessageRef(query)
	if chatID == 0 {
		log.WarnContext(ctx, "Callback query without resolvable chat", "data", query.Data)
		return
	}

	msgs := h.deps.Config.Messages

	switch query.Data {
	case callbackMenuGuide:
		sendText(ctx, b, log, chatID, msgs.Guide)
		return
	case callbackMenuManual:
		sendText(ctx, b, log, chatID, msgs.Manual)
		return
	}

	tasks, err := h.deps.Store.ListTasks(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to fetch tasks", "error", err, "chat_id", chatID)
		sendText(ctx, b, log, chatID, msgs.FetchError)
		return
	}

	switch query.Data {
	case callbackMenuList:
		sendText(ctx, b, log, chatID, renderList(msgs, tasks))
	case callbackMenuRecap:
		sendText(ctx, b, log, chatID, renderRecap(msgs, tasks))
	default:
		log.DebugContext(ctx, "Unknown menu callback", "data", query.Data)
	}
}

// answerCallback acknowledges a callback query so the client stops showing a
// loading indicator.
func answerCallback(ctx context.Context, b *bot.Bot, log *slog.Logger, queryID string) {
	_, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: queryID})
	if err != nil {
		log.ErrorContext(ctx, "Failed to answer callback query", "error", err, "callback_query_id", queryID)
	}
}

// callbackMessageRef resolves the chat and message of the message that
// carried the pressed button. editable is false when Telegram reports the
// message as inaccessible.
func callbackMessageRef(query *models.CallbackQuery) (chatID int64, messageID int, editable bool) {
	if query.Message.Message != nil {
		return query.Message.Message.Chat.ID, query.Message.Message.ID, true
	}
	if query.Message.InaccessibleMessage != nil {
		return query.Message.InaccessibleMessage.Chat.ID, query.Message.InaccessibleMessage.MessageID, false
	}
	return 0, 0, false
}
