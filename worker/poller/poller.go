package poller

import (
	"context"
	"time"

	"steward/worker"

	"github.com/fox-one/pkg/logger"
)

// Refresher reloads the review queue once
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RefreshFunc adapts a function to Refresher
type RefreshFunc func(ctx context.Context) error

func (f RefreshFunc) Refresh(ctx context.Context) error {
	return f(ctx)
}

// Poller keeps the review panel fresh by re-running Refresh on a fixed
// interval. Overlapping refreshes are not de-duplicated; the last
// response to settle wins. In-flight calls are not aborted on stop.
type Poller struct {
	worker.TickWorker
	refresher Refresher
}

// New new panel poller
func New(interval time.Duration, r Refresher) *Poller {
	p := Poller{refresher: r}
	p.Delay = interval

	return &p
}

// Run run worker
func (p *Poller) Run(ctx context.Context) error {
	return p.StartTick(ctx, func(ctx context.Context) error {
		return p.onWork(ctx)
	})
}

func (p *Poller) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "poller")

	if err := p.refresher.Refresh(ctx); err != nil {
		log.WithError(err).Errorln("refresh approvals")
		return err
	}

	return nil
}
