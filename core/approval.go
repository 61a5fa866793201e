package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// ApprovalStatus approval lifecycle status
type ApprovalStatus string

const (
	// ApprovalStatusPending waiting for a reviewer decision
	ApprovalStatusPending ApprovalStatus = "pending"
	// ApprovalStatusApproved approved by a reviewer
	ApprovalStatusApproved ApprovalStatus = "approved"
	// ApprovalStatusRejected rejected by a reviewer
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// IsValid check status is a known value
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return true
	}

	return false
}

// IsResolved check status is a final decision
func (s ApprovalStatus) IsResolved() bool {
	return s == ApprovalStatusApproved || s == ApprovalStatusRejected
}

type (
	// Approval an action proposed by an agent, waiting for (or holding)
	// a reviewer decision. One record per id within a board.
	Approval struct {
		ID           string          `sql:"size:36;PRIMARY_KEY" json:"id,omitempty"`
		BoardID      string          `sql:"size:36" json:"board_id,omitempty"`
		ActionType   string          `sql:"size:128" json:"action_type,omitempty"`
		Payload      types.JSONText  `sql:"type:varchar(2048)" json:"payload,omitempty"`
		Confidence   decimal.Decimal `sql:"type:decimal(8,4)" json:"confidence"`
		RubricScores types.JSONText  `sql:"type:varchar(1024)" json:"rubric_scores,omitempty"`
		Status       ApprovalStatus  `sql:"size:16" json:"status,omitempty"`
		CreatedAt    Timestamp       `sql:"size:40" json:"created_at,omitempty"`
		ResolvedAt   *Timestamp      `sql:"size:40" json:"resolved_at,omitempty"`
		Version      int64           `json:"-"`
	}

	// ApprovalStore approvals persistence
	ApprovalStore interface {
		Create(ctx context.Context, approval *Approval) error
		Find(ctx context.Context, id string) (*Approval, bool, error)
		List(ctx context.Context, boardID string, status ApprovalStatus) ([]*Approval, error)
		Update(ctx context.Context, approval *Approval, version int64) error
		DeleteResolvedBefore(ctx context.Context, before time.Time) (int64, error)
	}

	// ApprovalAPI remote approvals endpoint used by the review panel
	ApprovalAPI interface {
		List(ctx context.Context, boardID string) ([]*Approval, error)
		Create(ctx context.Context, boardID string, approval *Approval) (*Approval, error)
		Update(ctx context.Context, boardID, approvalID string, status ApprovalStatus) (*Approval, error)
	}
)

// PayloadMap decode payload into a generic map, empty map if absent or broken
func (a *Approval) PayloadMap() map[string]interface{} {
	return decodeJSONMap(a.Payload)
}

// RubricMap decode rubric scores into a generic map
func (a *Approval) RubricMap() map[string]interface{} {
	return decodeJSONMap(a.RubricScores)
}

func decodeJSONMap(raw types.JSONText) map[string]interface{} {
	m := map[string]interface{}{}
	if len(raw) == 0 {
		return m
	}

	_ = json.Unmarshal(raw, &m)
	return m
}
