package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewListHandler returns a handler for the /list command: every article with
// its author and status, unfiltered.
func NewListHandler(deps HandlerDeps) bot.HandlerFunc {
	return listHandler{deps}.Handle
}

type listHandler struct {
	deps HandlerDeps
}

func (h listHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "list")

	if update.Message == nil {
		log.WarnContext(ctx, "List handler received update with nil message", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID

	tasks, err := h.deps.Store.ListTasks(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to fetch tasks", "error", err, "chat_id", chatID)
		sendText(ctx, b, log, chatID, h.deps.Config.Messages.FetchError)
		return
	}

	sendText(ctx, b, log, chatID, renderList(h.deps.Config.Messages, tasks))
}
