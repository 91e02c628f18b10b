package timeentry

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/uptrace/bun"
)

type Filter struct {
	Limit     *int
	Offset    *int
	Page      *int
	OfficerID *int
	ShiftID   *int
	Status    *string
	DateFrom  *date.Date
	DateTo    *date.Date
}

type GetListResponse struct {
	ID          int        `json:"id"`
	ShiftID     *int       `json:"shift_id"`
	OfficerID   *int       `json:"officer_id"`
	OfficerName *string    `json:"officer_name"`
	SiteName    *string    `json:"site_name"`
	ClockIn     *time.Time `json:"clock_in"`
	ClockOut    *time.Time `json:"clock_out"`
	TotalHours  *float64   `json:"total_hours"`
	Status      *string    `json:"status"`
	PayRate     *float64   `json:"pay_rate"`
	BillRate    *float64   `json:"bill_rate"`
}

type ClockInRequest struct {
	ShiftID   *int     `json:"shift_id" form:"shift_id"`
	Latitude  *float64 `json:"latitude" form:"latitude"`
	Longitude *float64 `json:"longitude" form:"longitude"`
}

type ClockInResponse struct {
	bun.BaseModel `bun:"table:time_entries"`

	ID        int       `json:"id" bun:"-"`
	ShiftID   *int      `json:"shift_id" bun:"shift_id"`
	OfficerID *int      `json:"officer_id" bun:"officer_id"`
	ClockIn   time.Time `json:"clock_in" bun:"clock_in"`
	Status    string    `json:"status" bun:"status"`
	PayRate   *float64  `json:"pay_rate" bun:"pay_rate"`
	BillRate  *float64  `json:"bill_rate" bun:"bill_rate"`
	CreatedAt time.Time `json:"-" bun:"created_at"`
	CreatedBy int       `json:"-" bun:"created_by"`
}

type ClockOutRequest struct {
	EntryID   int      `json:"entry_id"`
	Latitude  *float64 `json:"latitude" form:"latitude"`
	Longitude *float64 `json:"longitude" form:"longitude"`
}

type ClockOutResponse struct {
	EntryID    int       `json:"entry_id"`
	ClockOut   time.Time `json:"clock_out"`
	TotalHours float64   `json:"total_hours"`
}

type ReviewRequest struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
}
