package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Payroll run statuses.
const (
	PayrollDraft = "draft"
	PayrollPaid  = "paid"
)

// PayrollRun is a confirmed payroll period. Immutable once created: mistakes
// are corrected with a new run, never by editing an old one.
type PayrollRun struct {
	bun.BaseModel `bun:"table:payroll_runs"`

	BasicEntity
	PeriodStart  *time.Time `json:"period_start" bun:"period_start"`
	PeriodEnd    *time.Time `json:"period_end" bun:"period_end"`
	TotalAmount  *float64   `json:"total_amount" bun:"total_amount"`
	OfficerCount *int       `json:"officer_count" bun:"officer_count"`
	Status       *string    `json:"status" bun:"status"`
	ProcessedAt  *time.Time `json:"processed_at" bun:"processed_at"`
}

// PayrollItem is one officer's line inside a confirmed run.
type PayrollItem struct {
	bun.BaseModel `bun:"table:payroll_items"`

	BasicEntity
	PayrollRunID    *int     `json:"payroll_run_id" bun:"payroll_run_id"`
	OfficerID       *int     `json:"officer_id" bun:"officer_id"`
	RegularHours    *float64 `json:"regular_hours" bun:"regular_hours"`
	OvertimeHours   *float64 `json:"overtime_hours" bun:"overtime_hours"`
	GrossPay        *float64 `json:"gross_pay" bun:"gross_pay"`
	DeductionsTotal *float64 `json:"deductions_total" bun:"deductions_total"`
	NetPay          *float64 `json:"net_pay" bun:"net_pay"`
}
