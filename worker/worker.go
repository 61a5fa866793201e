package worker

import (
	"context"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Worker long running job
type Worker interface {
	Run(ctx context.Context) error
}

type OnWork func() error

// BaseJob cron driven job
type BaseJob struct {
	Cron      *cron.Cron
	IsRunning bool
	OnWork    OnWork
}

func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

func (job *BaseJob) Stop() error {
	job.Cron.Stop()
	return nil
}

// Work run one round of work, skipping ticks that overlap a running one
func (job *BaseJob) Work() {
	if job.IsRunning {
		return
	}

	job.IsRunning = true

	job.OnWork()

	job.IsRunning = false
}

// TickWorker fixed interval job
type TickWorker struct {
	Delay time.Duration
}

// StartTick run fn once right away, then on every tick until ctx is done
func (w *TickWorker) StartTick(ctx context.Context, fn func(ctx context.Context) error) error {
	delay := w.Delay
	if delay <= 0 {
		delay = time.Second
	}

	ticker := time.NewTicker(delay)
	defer ticker.Stop()

	for {
		if err := fn(ctx); err != nil {
			logger.FromContext(ctx).WithError(err).Debugln("tick failed")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
