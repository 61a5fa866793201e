package janitor

import (
	"context"
	"time"

	"steward/core"
	"steward/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/robfig/cron/v3"
)

const checkpointKey = "janitor_checkpoint"

// Janitor purges resolved approvals past the retention window
type Janitor struct {
	worker.BaseJob
	approvals core.ApprovalStore
	property  property.Store
	retention time.Duration
}

// New new janitor worker
func New(
	location string,
	approvalStr core.ApprovalStore,
	propertyStr property.Store,
	retention time.Duration,
) *Janitor {
	janitor := Janitor{
		approvals: approvalStr,
		property:  propertyStr,
		retention: retention,
	}

	l, _ := time.LoadLocation(location)
	janitor.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 1h"
	janitor.Cron.AddFunc(spec, janitor.Work)
	janitor.OnWork = func() error {
		return janitor.onWork(context.Background())
	}

	return &janitor
}

// Run run worker
func (w *Janitor) Run(ctx context.Context) error {
	w.Start()
	defer w.Stop()

	<-ctx.Done()
	return ctx.Err()
}

func (w *Janitor) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "janitor")

	before := time.Now().Add(-w.retention)
	count, err := w.approvals.DeleteResolvedBefore(ctx, before)
	if err != nil {
		log.WithError(err).Errorln("approvals.DeleteResolvedBefore")
		return err
	}

	if count > 0 {
		log.Infoln("purged resolved approvals:", count)
	}

	if err := w.property.Save(ctx, checkpointKey, time.Now()); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	return nil
}
