package entity

import (
	"github.com/uptrace/bun"
)

// Employment statuses an officer moves through.
const (
	EmploymentActive     = "active"
	EmploymentOnboarding = "onboarding"
	EmploymentTerminated = "terminated"
)

// Deduction is a flat per-period amount withheld from an officer's pay
// (uniform, equipment), not a per-hour rate.
type Deduction struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// OfficerFinancials holds the officer-level tier of the rate hierarchy.
// OvertimeRate, when present, must be >= BaseRate.
type OfficerFinancials struct {
	BaseRate     *float64    `json:"base_rate"`
	OvertimeRate *float64    `json:"overtime_rate"`
	Deductions   []Deduction `json:"deductions"`
}

// DeductionsTotal sums the flat per-period deductions.
func (f OfficerFinancials) DeductionsTotal() float64 {
	var total float64
	for _, d := range f.Deductions {
		total += d.Amount
	}
	return total
}

type Officer struct {
	bun.BaseModel `bun:"table:officers"`

	BasicEntity
	EmployeeID       *string            `json:"employee_id" bun:"employee_id"`
	FullName         *string            `json:"full_name" bun:"full_name"`
	Phone            *string            `json:"phone" bun:"phone"`
	Email            *string            `json:"email" bun:"email"`
	Password         *string            `json:"-" bun:"password"`
	Role             *string            `json:"role" bun:"role"`
	EmploymentStatus *string            `json:"employment_status" bun:"employment_status"`
	Financials       *OfficerFinancials `json:"financials" bun:"financials,type:jsonb"`
}
