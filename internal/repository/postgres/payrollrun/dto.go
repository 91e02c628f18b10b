package payrollrun

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"

	"guardpost/backend/internal/service/payroll"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Status *string
}

type PreviewRequest struct {
	PeriodStart date.Date `json:"period_start"`
	PeriodEnd   date.Date `json:"period_end"`
}

type PreviewResponse struct {
	PeriodStart time.Time           `json:"period_start"`
	PeriodEnd   time.Time           `json:"period_end"`
	Candidates  []payroll.Candidate `json:"candidates"`
	Warnings    []payroll.Warning   `json:"warnings"`
	TotalAmount float64             `json:"total_amount"`
}

type ConfirmResponse struct {
	RunID        int     `json:"run_id"`
	TotalAmount  float64 `json:"total_amount"`
	OfficerCount int     `json:"officer_count"`
}

type GetListResponse struct {
	ID           int        `json:"id"`
	PeriodStart  *time.Time `json:"period_start"`
	PeriodEnd    *time.Time `json:"period_end"`
	TotalAmount  *float64   `json:"total_amount"`
	OfficerCount *int       `json:"officer_count"`
	Status       *string    `json:"status"`
	ProcessedAt  *time.Time `json:"processed_at"`
}

type GetDetailResponse struct {
	Run   GetListResponse `json:"run"`
	Items []ItemResponse  `json:"items"`
}

type ItemResponse struct {
	ID              int      `json:"id"`
	OfficerID       *int     `json:"officer_id"`
	EmployeeID      *string  `json:"employee_id"`
	OfficerName     *string  `json:"officer_name"`
	RegularHours    *float64 `json:"regular_hours"`
	OvertimeHours   *float64 `json:"overtime_hours"`
	GrossPay        *float64 `json:"gross_pay"`
	DeductionsTotal *float64 `json:"deductions_total"`
	NetPay          *float64 `json:"net_pay"`
}
