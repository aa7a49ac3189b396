// Package tasks implements the bot's scheduled tasks: task definitions,
// dependencies, and registration.
package tasks

import (
	"log/slog"

	tgbot "github.com/go-telegram/bot"

	"github.com/redaksi/redaksibot/internal/config"
	"github.com/redaksi/redaksibot/internal/sheets"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Config *config.Config
	Store  sheets.Store
	Bot    *tgbot.Bot
}
