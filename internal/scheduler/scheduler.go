package scheduler

import (
	"context"
	"fmt"
	"time"

	"ai-workspace-be/internal/pkg/logger"

	"github.com/go-co-op/gocron"
)

// Task is a maintenance job run on a fixed interval.
type Task struct {
	Name     string
	Interval time.Duration
	Handler  func(ctx context.Context) error
}

type Scheduler struct {
	scheduler *gocron.Scheduler
	ctx       context.Context
	cancel    context.CancelFunc
	logger    logger.ILogger
	tasks     map[string]Task
}

func New(logger logger.ILogger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		ctx:       ctx,
		cancel:    cancel,
		logger:    logger,
		tasks:     make(map[string]Task),
	}
}

// Register schedules task. A zero interval disables it. Runs of the same task never overlap.
func (s *Scheduler) Register(task Task) error {
	if task.Interval <= 0 {
		s.logger.Info("SCHEDULER", "Skipping disabled task", map[string]interface{}{"task": task.Name})
		return nil
	}
	if _, exists := s.tasks[task.Name]; exists {
		return fmt.Errorf("task %q already registered", task.Name)
	}

	job, err := s.scheduler.Every(task.Interval).SingletonMode().Do(func() {
		s.run(task)
	})
	if err != nil {
		return fmt.Errorf("schedule task %q: %w", task.Name, err)
	}
	job.Tag(task.Name)
	s.tasks[task.Name] = task

	s.logger.Info("SCHEDULER", "Registered task", map[string]interface{}{
		"task":     task.Name,
		"interval": task.Interval.String(),
	})
	return nil
}

func (s *Scheduler) run(task Task) {
	start := time.Now()
	if err := task.Handler(s.ctx); err != nil {
		s.logger.Error("SCHEDULER", "Task failed", map[string]interface{}{
			"task":  task.Name,
			"error": err.Error(),
		})
		return
	}
	s.logger.Debug("SCHEDULER", "Task completed", map[string]interface{}{
		"task":        task.Name,
		"duration_ms": time.Since(start).Milliseconds(),
	})
}

// RunNow executes a registered task synchronously, outside its schedule.
func (s *Scheduler) RunNow(name string) error {
	task, exists := s.tasks[name]
	if !exists {
		return fmt.Errorf("task %q not found", name)
	}
	return task.Handler(s.ctx)
}

func (s *Scheduler) Start() {
	s.scheduler.StartAsync()
}

// Stop halts scheduling and cancels the context handed to running tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.cancel()
}
