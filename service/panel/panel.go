// Package panel holds the review queue state for one board: the
// approval list, the loading flag, the last error and the set of
// records with a decision in flight.
package panel

import (
	"context"
	"errors"
	"sync"

	"steward/core"

	"github.com/twitchtv/twirp"
)

const (
	// MsgLoadFailed shown when the queue cannot be loaded
	MsgLoadFailed = "Unable to load approvals."
	// MsgUpdateFailed shown when a decision cannot be submitted
	MsgUpdateFailed = "Unable to update approval."
)

// DecisionHandler lets an embedding host take over decision submission
// entirely; when set, Decide performs no network call and no state
// mutation of its own.
type DecisionHandler func(ctx context.Context, approvalID string, status core.ApprovalStatus) error

// Option panel option
type Option func(*Panel)

// WithDecisionHandler install an external decision handler
func WithDecisionHandler(fn DecisionHandler) Option {
	return func(p *Panel) {
		p.onDecide = fn
	}
}

// Panel review queue state for one board
type Panel struct {
	boardID  string
	api      core.ApprovalAPI
	session  core.ReviewerSession
	onDecide DecisionHandler

	mu        sync.Mutex
	approvals []*core.Approval
	loading   bool
	err       string
	updating  map[string]bool
}

// Snapshot a copy of the panel state for rendering
type Snapshot struct {
	Approvals []*core.Approval
	Loading   bool
	Err       string
	Updating  map[string]bool
}

// New new panel
func New(boardID string, api core.ApprovalAPI, session core.ReviewerSession, opts ...Option) *Panel {
	p := &Panel{
		boardID:  boardID,
		api:      api,
		session:  session,
		updating: map[string]bool{},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *Panel) ready() bool {
	return p.boardID != "" && p.api != nil && p.session != nil && p.session.SignedIn()
}

// Refresh reloads the queue. A failed call keeps the last good data
// and records a user facing error. Overlapping refreshes are not
// de-duplicated; the last one to settle wins.
func (p *Panel) Refresh(ctx context.Context) error {
	if !p.ready() {
		return nil
	}

	p.mu.Lock()
	p.loading = true
	p.err = ""
	p.mu.Unlock()

	approvals, err := p.api.List(ctx, p.boardID)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.loading = false
	if err != nil {
		p.err = failureHint(err, MsgLoadFailed)
		return err
	}

	p.approvals = approvals
	return nil
}

// Decide submits a reviewer decision for one approval and replaces
// that record, and only that record, with the server's representation.
// A failed call leaves the list untouched. No retry; the updating
// marker is cleared either way.
func (p *Panel) Decide(ctx context.Context, approvalID string, status core.ApprovalStatus) error {
	if p.onDecide != nil {
		return p.onDecide(ctx, approvalID, status)
	}

	if !p.ready() {
		return nil
	}

	p.mu.Lock()
	p.updating[approvalID] = true
	p.err = ""
	p.mu.Unlock()

	updated, err := p.api.Update(ctx, p.boardID, approvalID, status)

	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.updating, approvalID)
	if err != nil {
		p.err = failureHint(err, MsgUpdateFailed)
		return err
	}

	for i, a := range p.approvals {
		if a.ID == updated.ID {
			p.approvals[i] = updated
			break
		}
	}

	return nil
}

// Snapshot copy the current state for rendering
func (p *Panel) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	approvals := make([]*core.Approval, len(p.approvals))
	copy(approvals, p.approvals)

	updating := make(map[string]bool, len(p.updating))
	for id := range p.updating {
		updating[id] = true
	}

	return Snapshot{
		Approvals: approvals,
		Loading:   p.loading,
		Err:       p.err,
		Updating:  updating,
	}
}

// Updating report whether a decision for the given id is in flight
func (p *Panel) Updating(approvalID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.updating[approvalID]
}

// failureHint prefer the server's own message over the fallback.
// Transport noise stays in logs, not in front of the reviewer.
func failureHint(err error, fallback string) string {
	var terr twirp.Error
	if errors.As(err, &terr) {
		if msg := terr.Msg(); msg != "" {
			return msg
		}
	}

	return fallback
}
