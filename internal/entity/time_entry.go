package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Time entry review statuses.
const (
	EntryPending  = "pending"
	EntryApproved = "approved"
	EntryRejected = "rejected"
)

// TimeEntry is the actual clocked record against a shift and the unit of
// payroll computation. PayRate/BillRate are snapshots resolved at creation so
// later rate edits never change already-worked hours. TotalHours is derived at
// clock-out: (clock_out - clock_in) - break/60, clamped at 0.
type TimeEntry struct {
	bun.BaseModel `bun:"table:time_entries"`

	BasicEntity
	ShiftID      *int       `json:"shift_id" bun:"shift_id"`
	OfficerID    *int       `json:"officer_id" bun:"officer_id"`
	ClockIn      *time.Time `json:"clock_in" bun:"clock_in"`
	ClockOut     *time.Time `json:"clock_out" bun:"clock_out"`
	TotalHours   *float64   `json:"total_hours" bun:"total_hours"`
	Status       *string    `json:"status" bun:"status"`
	PayRate      *float64   `json:"pay_rate" bun:"pay_rate"`
	BillRate     *float64   `json:"bill_rate" bun:"bill_rate"`
	InvoiceID    *int       `json:"invoice_id" bun:"invoice_id"`
	PayrollRunID *int       `json:"payroll_run_id" bun:"payroll_run_id"`
}
