package entity

import (
	"github.com/uptrace/bun"
)

// BillingSettings holds the client-level tier of the bill-rate hierarchy.
// Each configured rate must be > 0.
type BillingSettings struct {
	StandardRate  *float64 `json:"standard_rate"`
	HolidayRate   *float64 `json:"holiday_rate"`
	EmergencyRate *float64 `json:"emergency_rate"`
}

type Client struct {
	bun.BaseModel `bun:"table:clients"`

	BasicEntity
	Name            *string          `json:"name" bun:"name"`
	ContactName     *string          `json:"contact_name" bun:"contact_name"`
	ContactEmail    *string          `json:"contact_email" bun:"contact_email"`
	Phone           *string          `json:"phone" bun:"phone"`
	BillingSettings *BillingSettings `json:"billing_settings" bun:"billing_settings,type:jsonb"`
}
