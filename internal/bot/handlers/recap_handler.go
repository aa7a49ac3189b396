package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewRecapHandler returns a handler for the /rekap command: aggregate counts
// of pending and done articles.
func NewRecapHandler(deps HandlerDeps) bot.HandlerFunc {
	return recapHandler{deps}.Handle
}

type recapHandler struct {
	deps HandlerDeps
}

func (h recapHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "recap")

	if update.Message == nil {
		log.WarnContext(ctx, "Recap handler received update with nil message", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID

	tasks, err := h.deps.Store.ListTasks(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to fetch tasks", "error", err, "chat_id", chatID)
		sendText(ctx, b, log, chatID, h.deps.Config.Messages.FetchError)
		return
	}

	sendText(ctx, b, log, chatID, renderRecap(h.deps.Config.Messages, tasks))
}
