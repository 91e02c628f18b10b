package invoice

import (
	"time"

	"guardpost/backend/internal/service/billing"
)

type Filter struct {
	Limit    *int
	Offset   *int
	Page     *int
	ClientID *int
	Status   *string
}

type ConfirmRequest struct {
	ClientID   int  `json:"client_id"`
	DueInDays  *int `json:"due_in_days" form:"due_in_days"`
}

type ConfirmResponse struct {
	InvoiceID     int     `json:"invoice_id"`
	InvoiceNumber string  `json:"invoice_number"`
	Amount        float64 `json:"amount"`
}

type GetListResponse struct {
	ID            int        `json:"id"`
	ClientID      *int       `json:"client_id"`
	ClientName    *string    `json:"client_name"`
	InvoiceNumber *string    `json:"invoice_number"`
	IssueDate     *time.Time `json:"issue_date"`
	DueDate       *time.Time `json:"due_date"`
	Amount        *float64   `json:"amount"`
	Status        *string    `json:"status"`
}

type GetDetailResponse struct {
	Invoice GetListResponse `json:"invoice"`
	Items   []ItemResponse  `json:"items"`
}

type ItemResponse struct {
	ID          int      `json:"id"`
	Description *string  `json:"description"`
	Quantity    *float64 `json:"quantity"`
	Rate        *float64 `json:"rate"`
	Amount      *float64 `json:"amount"`
}

type UpdateStatusRequest struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
}

// PreviewResponse re-exports the billing preview for the controller layer.
type PreviewResponse = billing.Preview
