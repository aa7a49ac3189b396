package handlers

import (
	"log/slog"

	"github.com/redaksi/redaksibot/internal/bot/conversation"
	"github.com/redaksi/redaksibot/internal/config"
	"github.com/redaksi/redaksibot/internal/sheets"
)

// HandlerDeps provides dependencies for Telegram command and callback handlers.
type HandlerDeps struct {
	Logger   *slog.Logger
	Config   *config.Config
	Store    sheets.Store
	Sessions *conversation.Manager
}
