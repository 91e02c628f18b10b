package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Invoice statuses.
const (
	InvoiceDraft   = "draft"
	InvoiceSent    = "sent"
	InvoicePaid    = "paid"
	InvoiceOverdue = "overdue"
)

type Invoice struct {
	bun.BaseModel `bun:"table:invoices"`

	BasicEntity
	ClientID      *int       `json:"client_id" bun:"client_id"`
	InvoiceNumber *string    `json:"invoice_number" bun:"invoice_number"`
	IssueDate     *time.Time `json:"issue_date" bun:"issue_date"`
	DueDate       *time.Time `json:"due_date" bun:"due_date"`
	Amount        *float64   `json:"amount" bun:"amount"`
	Status        *string    `json:"status" bun:"status"`
}

// InvoiceItem is one billed line: all hours at the same effective bill rate.
type InvoiceItem struct {
	bun.BaseModel `bun:"table:invoice_items"`

	BasicEntity
	InvoiceID   *int     `json:"invoice_id" bun:"invoice_id"`
	Description *string  `json:"description" bun:"description"`
	Quantity    *float64 `json:"quantity" bun:"quantity"`
	Rate        *float64 `json:"rate" bun:"rate"`
	Amount      *float64 `json:"amount" bun:"amount"`
}
