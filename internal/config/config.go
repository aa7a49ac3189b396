// Package config manages application configuration from config.yaml,
// BOT_* environment variables, and default values.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config defines the application configuration for all components of the bot:
// logging, Telegram transport, the spreadsheet store, the scheduler, and all
// user-visible message strings.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Sheets    SheetsConfig    `mapstructure:"sheets"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LogConfig controls log level and output format.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the bot token, the privileged user ids allowed to run
// the intake wizard, and the group chat that receives reminders.
type TelegramConfig struct {
	Token       string  `mapstructure:"token"         validate:"required"`
	AdminIDs    []int64 `mapstructure:"admin_ids"     validate:"required,min=1,dive,gt=0"`
	GroupChatID int64   `mapstructure:"group_chat_id" validate:"required"`
}

// SheetsConfig identifies the Google spreadsheet backing the task list and
// the service account credentials used to reach it.
type SheetsConfig struct {
	SpreadsheetName string `mapstructure:"spreadsheet_name" validate:"required"`
	CredentialsFile string `mapstructure:"credentials_file" validate:"required"`
}

// SchedulerConfig maps task names to their schedules.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// TaskConfig configures a single scheduled task. When Schedule is set it is
// interpreted as a cron expression (e.g. a daily fire for production);
// otherwise the task runs every Interval, first after InitialDelay.
type TaskConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Schedule     string        `mapstructure:"schedule"`
	Interval     time.Duration `mapstructure:"interval"`
	InitialDelay time.Duration `mapstructure:"initial_delay"`
}

// MessagesConfig holds every user-visible string. Strings containing format
// verbs are used as fmt templates by the handlers.
type MessagesConfig struct {
	Welcome         string `mapstructure:"welcome"`
	NotAuthorized   string `mapstructure:"not_authorized"`
	AskTitle        string `mapstructure:"ask_title"`
	AskDeadline     string `mapstructure:"ask_deadline"`
	AskAuthor       string `mapstructure:"ask_author"`
	InvalidDeadline string `mapstructure:"invalid_deadline"`
	TaskAdded       string `mapstructure:"task_added"`
	SaveError       string `mapstructure:"save_error"`
	Cancelled       string `mapstructure:"cancelled"`
	Reminder        string `mapstructure:"reminder"`
	ReminderButton  string `mapstructure:"reminder_button"`
	Confirmed       string `mapstructure:"confirmed"`
	ConfirmFallback string `mapstructure:"confirm_fallback"`
	TaskNotFound    string `mapstructure:"task_not_found"`
	SystemError     string `mapstructure:"system_error"`
	FetchError      string `mapstructure:"fetch_error"`
	PendingHeader   string `mapstructure:"pending_header"`
	AllClear        string `mapstructure:"all_clear"`
	ListHeader      string `mapstructure:"list_header"`
	Recap           string `mapstructure:"recap"`
	Guide           string `mapstructure:"guide"`
	Manual          string `mapstructure:"manual"`
	MenuList        string `mapstructure:"menu_list"`
	MenuRecap       string `mapstructure:"menu_recap"`
	MenuGuide       string `mapstructure:"menu_guide"`
	MenuManual      string `mapstructure:"menu_manual"`
}

// IsAdmin reports whether the given Telegram user id is in the configured
// admin list.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.Telegram.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Load loads and validates configuration from:
// 1. Default values
// 2. The config file at path (optional)
// 3. BOT_* environment variables
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about. The required
	// keys carry no defaults, so they need explicit bindings for env-only
	// deployments.
	for _, key := range []string{
		"telegram.token",
		"telegram.admin_ids",
		"telegram.group_chat_id",
		"sheets.spreadsheet_name",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}

	// Allow a missing config file; defaults plus environment are enough.
	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
