package tasks

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/redaksi/redaksibot/internal/sheets"
)

// The display title embedded in callback payloads is cut to shortTitleLen
// runes, and shrunk further when the full payload would exceed Telegram's
// 64-byte callback data cap. The id alone resolves the task, so truncation
// never affects acknowledgement.
const (
	shortTitleLen    = 30
	maxCallbackBytes = 64
)

// newReminderTask creates the scheduled task that nags the group chat about
// every still-pending article. Each cycle re-sends a reminder for every
// pending row; there is no deduplication across cycles.
func newReminderTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "reminder")

	return func(ctx context.Context) error {
		log.InfoContext(ctx, "Starting reminder cycle...")

		tasks, err := deps.Store.ListTasks(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch tasks for reminder cycle: %w", err)
		}

		sent := 0
		for _, t := range tasks {
			if !t.IsPending() {
				continue
			}

			keyboard := &models.InlineKeyboardMarkup{
				InlineKeyboard: [][]models.InlineKeyboardButton{{
					{
						Text:         deps.Config.Messages.ReminderButton,
						CallbackData: reminderCallbackData(t),
					},
				}},
			}

			_, err := deps.Bot.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:      deps.Config.Telegram.GroupChatID,
				Text:        renderReminder(deps.Config.Messages.Reminder, t),
				ParseMode:   models.ParseModeHTML,
				ReplyMarkup: keyboard,
			})
			if err != nil {
				log.ErrorContext(ctx, "Failed to send reminder", "task_id", t.ID, "error", err)
				continue
			}
			sent++
		}

		if sent > 0 {
			log.InfoContext(ctx, "Reminder cycle finished", "sent", sent)
		} else {
			log.InfoContext(ctx, "No pending tasks")
		}
		return nil
	}
}

// renderReminder fills the configured reminder template with the task's
// author, title, and deadline.
func renderReminder(format string, t sheets.Task) string {
	return fmt.Sprintf(format, t.Author, t.Title, t.Deadline)
}

// reminderCallbackData builds the button payload: "done_<id>_<short title>".
// The trailing title is display-only and ignored during id resolution.
func reminderCallbackData(t sheets.Task) string {
	base := fmt.Sprintf("done_%d", t.ID)
	title := shortTitle(t.Title, maxCallbackBytes-len(base)-1)
	if title == "" {
		return base
	}
	return base + "_" + title
}

// shortTitle truncates the title to shortTitleLen runes, dropping further
// runes when the result still exceeds maxBytes.
func shortTitle(title string, maxBytes int) string {
	runes := []rune(title)
	n := len(runes)
	if n > shortTitleLen {
		n = shortTitleLen
	}
	for n > 0 {
		candidate := string(runes[:n])
		if n < len(runes) {
			candidate += ".."
		}
		if len(candidate) <= maxBytes {
			return candidate
		}
		n--
	}
	return ""
}
