package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Shift lifecycle statuses.
const (
	ShiftDraft     = "draft"
	ShiftPublished = "published"
	ShiftAssigned  = "assigned"
	ShiftCompleted = "completed"
)

// Shift is a scheduled work interval at a site. OfficerID is nil while the
// shift is unassigned. PayRate/BillRate, when present, override the officer
// and client tiers of the rate hierarchy; an explicit 0 is honored.
type Shift struct {
	bun.BaseModel `bun:"table:shifts"`

	BasicEntity
	SiteID        *int       `json:"site_id" bun:"site_id"`
	OfficerID     *int       `json:"officer_id" bun:"officer_id"`
	StartTime     *time.Time `json:"start_time" bun:"start_time"`
	EndTime       *time.Time `json:"end_time" bun:"end_time"`
	Status        *string    `json:"status" bun:"status"`
	PayRate       *float64   `json:"pay_rate" bun:"pay_rate"`
	BillRate      *float64   `json:"bill_rate" bun:"bill_rate"`
	BreakDuration *int       `json:"break_duration" bun:"break_duration"`
	Notes         *string    `json:"notes" bun:"notes"`
}
