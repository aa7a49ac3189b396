package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/redaksi/redaksibot/internal/bot/tasks"
	"github.com/redaksi/redaksibot/internal/config"
)

// Scheduler manages scheduled tasks using the gocron library.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
	cfg       *config.SchedulerConfig
	taskMap   map[string]tasks.ScheduledTaskFunc
	mu        sync.Mutex
	running   bool
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(logger *slog.Logger, cfg *config.SchedulerConfig, taskMap map[string]tasks.ScheduledTaskFunc) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "scheduler")

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: s,
		logger:    log,
		cfg:       cfg,
		taskMap:   taskMap,
	}, nil
}

// Start schedules all enabled tasks and starts the scheduler. A task with a
// cron expression fires on that schedule; otherwise it runs at its configured
// interval, first after the configured initial delay.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	if s.cfg == nil || len(s.cfg.Tasks) == 0 {
		s.logger.Warn("No scheduler tasks configured.")
		s.scheduler.Start()
		s.running = true
		return nil
	}

	scheduled := 0
	for taskName, taskCfg := range s.cfg.Tasks {
		if !taskCfg.Enabled {
			s.logger.Info("Skipping disabled task", "task_name", taskName)
			continue
		}

		taskFunc, exists := s.taskMap[taskName]
		if !exists {
			s.logger.Warn("Scheduled task configured but not found in registry, skipping", "task_name", taskName)
			continue
		}

		definition, jobOpts, err := jobDefinition(taskCfg)
		if err != nil {
			s.logger.Warn("Invalid task schedule, skipping", "task_name", taskName, "error", err)
			continue
		}

		jobOpts = append(jobOpts, gocron.WithName(taskName))
		_, err = s.scheduler.NewJob(
			definition,
			gocron.NewTask(
				func(ctx context.Context, name string) {
					s.logger.Info("Running scheduled task", "task_name", name)
					start := time.Now()
					if taskErr := taskFunc(ctx); taskErr != nil {
						s.logger.Error("Scheduled task failed", "task_name", name, "error", taskErr)
					}
					s.logger.Info("Finished scheduled task", "task_name", name, "duration", time.Since(start))
				},
				context.Background(),
				taskName,
			),
			jobOpts...,
		)
		if err != nil {
			s.logger.Error("Failed to schedule task", "task_name", taskName, "error", err)
			continue
		}

		s.logger.Info("Scheduled task", "task_name", taskName,
			"schedule", taskCfg.Schedule, "interval", taskCfg.Interval, "initial_delay", taskCfg.InitialDelay)
		scheduled++
	}

	s.scheduler.Start()
	s.running = true
	s.logger.Info("Scheduler initialized and started", "tasks_scheduled", scheduled)

	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs to complete.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		s.logger.Info("Scheduler is not running, nothing to stop.")
		return nil
	}

	err := s.scheduler.Shutdown()
	if err != nil {
		s.logger.Error("Error during scheduler shutdown", "error", err)
	} else {
		s.logger.Info("Scheduler stopped gracefully.")
	}

	s.running = false
	return err
}

// jobDefinition translates a task config into a gocron job definition plus
// job options. Interval jobs get their first fire delayed by the configured
// initial delay.
func jobDefinition(taskCfg config.TaskConfig) (gocron.JobDefinition, []gocron.JobOption, error) {
	if taskCfg.Schedule != "" {
		return gocron.CronJob(taskCfg.Schedule, false), nil, nil
	}
	if taskCfg.Interval <= 0 {
		return nil, nil, fmt.Errorf("task has neither a cron schedule nor a positive interval")
	}

	var opts []gocron.JobOption
	if taskCfg.InitialDelay > 0 {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartDateTime(time.Now().Add(taskCfg.InitialDelay))))
	}
	return gocron.DurationJob(taskCfg.Interval), opts, nil
}
