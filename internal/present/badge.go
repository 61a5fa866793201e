package present

import (
	"steward/core"

	"github.com/shopspring/decimal"
)

// Badge display category for a status or score
type Badge string

const (
	// BadgeSuccess positive outcome
	BadgeSuccess Badge = "success"
	// BadgeAccent notable but not conclusive
	BadgeAccent Badge = "accent"
	// BadgeWarning needs reviewer attention
	BadgeWarning Badge = "warning"
	// BadgeDanger negative outcome
	BadgeDanger Badge = "danger"
	// BadgeNeutral neutral outline
	BadgeNeutral Badge = "neutral"
)

var (
	confidenceHigh = decimal.NewFromInt(90)
	confidenceGood = decimal.NewFromInt(80)
)

// StatusBadge badge category for an approval status
func StatusBadge(status core.ApprovalStatus) Badge {
	switch status {
	case core.ApprovalStatusApproved:
		return BadgeSuccess
	case core.ApprovalStatusRejected:
		return BadgeDanger
	default:
		return BadgeNeutral
	}
}

// ConfidenceBadge badge category for a confidence score
func ConfidenceBadge(confidence decimal.Decimal) Badge {
	switch {
	case confidence.GreaterThanOrEqual(confidenceHigh):
		return BadgeSuccess
	case confidence.GreaterThanOrEqual(confidenceGood):
		return BadgeAccent
	default:
		return BadgeWarning
	}
}
