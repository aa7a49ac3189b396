package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewGuideHandler returns a handler for the /petunjuk command.
func NewGuideHandler(deps HandlerDeps) bot.HandlerFunc {
	return staticTextHandler{deps, "guide", func(deps HandlerDeps) string {
		return deps.Config.Messages.Guide
	}}.Handle
}

// NewManualHandler returns a handler for the /panduan command.
func NewManualHandler(deps HandlerDeps) bot.HandlerFunc {
	return staticTextHandler{deps, "manual", func(deps HandlerDeps) string {
		return deps.Config.Messages.Manual
	}}.Handle
}

// staticTextHandler replies with a fixed configured text.
type staticTextHandler struct {
	deps HandlerDeps
	name string
	text func(HandlerDeps) string
}

func (h staticTextHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", h.name)

	if update.Message == nil {
		log.WarnContext(ctx, "Handler received update with nil message", "update_id", update.ID)
		return
	}

	sendText(ctx, b, log, update.Message.Chat.ID, h.text(h.deps))
}
