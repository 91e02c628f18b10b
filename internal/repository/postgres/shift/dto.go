package shift

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/uptrace/bun"

	"guardpost/backend/internal/service/schedule"
)

type Filter struct {
	Limit     *int
	Offset    *int
	Page      *int
	SiteID    *int
	OfficerID *int
	Status    *string
	DateFrom  *date.Date
	DateTo    *date.Date
}

type GetListResponse struct {
	ID            int        `json:"id"`
	SiteID        *int       `json:"site_id"`
	SiteName      *string    `json:"site_name"`
	ClientID      *int       `json:"client_id"`
	OfficerID     *int       `json:"officer_id"`
	OfficerName   *string    `json:"officer_name"`
	StartTime     *time.Time `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	Status        *string    `json:"status"`
	PayRate       *float64   `json:"pay_rate"`
	BillRate      *float64   `json:"bill_rate"`
	BreakDuration *int       `json:"break_duration"`
}

type CreateRequest struct {
	SiteID        *int       `json:"site_id" form:"site_id"`
	StartTime     *time.Time `json:"start_time" form:"start_time"`
	EndTime       *time.Time `json:"end_time" form:"end_time"`
	PayRate       *float64   `json:"pay_rate" form:"pay_rate"`
	BillRate      *float64   `json:"bill_rate" form:"bill_rate"`
	BreakDuration *int       `json:"break_duration" form:"break_duration"`
	Publish       *bool      `json:"publish" form:"publish"`
	Notes         *string    `json:"notes" form:"notes"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:shifts"`

	ID            int        `json:"id" bun:"-"`
	SiteID        *int       `json:"site_id" bun:"site_id"`
	StartTime     *time.Time `json:"start_time" bun:"start_time"`
	EndTime       *time.Time `json:"end_time" bun:"end_time"`
	Status        string     `json:"status" bun:"status"`
	PayRate       *float64   `json:"pay_rate" bun:"pay_rate"`
	BillRate      *float64   `json:"bill_rate" bun:"bill_rate"`
	BreakDuration *int       `json:"break_duration" bun:"break_duration"`
	Notes         *string    `json:"notes" bun:"notes"`
	CreatedAt     time.Time  `json:"-" bun:"created_at"`
	CreatedBy     int        `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID            int        `json:"id"`
	StartTime     *time.Time `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	Status        *string    `json:"status"`
	PayRate       *float64   `json:"pay_rate"`
	BillRate      *float64   `json:"bill_rate"`
	BreakDuration *int       `json:"break_duration"`
	Notes         *string    `json:"notes"`
}

type AssignRequest struct {
	ShiftID   int  `json:"shift_id"`
	OfficerID *int `json:"officer_id" form:"officer_id"`
}

// AssignResponse reports the applied assignment. Conflict is advisory: the
// assignment went through even when a double-booking was detected, and the
// caller decides whether to surface or undo it.
type AssignResponse struct {
	ShiftID   int                `json:"shift_id"`
	OfficerID int                `json:"officer_id"`
	Status    string             `json:"status"`
	Conflict  *schedule.Conflict `json:"conflict,omitempty"`
}
