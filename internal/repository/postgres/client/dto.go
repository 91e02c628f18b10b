package client

import (
	"time"

	"github.com/uptrace/bun"

	"guardpost/backend/internal/entity"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Search *string
}

type GetListResponse struct {
	ID           int     `json:"id"`
	Name         *string `json:"name"`
	ContactName  *string `json:"contact_name"`
	ContactEmail *string `json:"contact_email"`
	Phone        *string `json:"phone"`
	SiteCount    int     `json:"site_count"`
}

type GetDetailByIdResponse struct {
	ID              int                     `json:"id"`
	Name            *string                 `json:"name"`
	ContactName     *string                 `json:"contact_name"`
	ContactEmail    *string                 `json:"contact_email"`
	Phone           *string                 `json:"phone"`
	BillingSettings *entity.BillingSettings `json:"billing_settings"`
}

type CreateRequest struct {
	Name            *string                 `json:"name" form:"name"`
	ContactName     *string                 `json:"contact_name" form:"contact_name"`
	ContactEmail    *string                 `json:"contact_email" form:"contact_email"`
	Phone           *string                 `json:"phone" form:"phone"`
	BillingSettings *entity.BillingSettings `json:"billing_settings" form:"billing_settings"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:clients"`

	ID              int                     `json:"id" bun:"-"`
	Name            *string                 `json:"name" bun:"name"`
	ContactName     *string                 `json:"contact_name" bun:"contact_name"`
	ContactEmail    *string                 `json:"contact_email" bun:"contact_email"`
	Phone           *string                 `json:"phone" bun:"phone"`
	BillingSettings *entity.BillingSettings `json:"billing_settings" bun:"billing_settings,type:jsonb"`
	CreatedAt       time.Time               `json:"-" bun:"created_at"`
	CreatedBy       int                     `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID              int                     `json:"id" form:"id"`
	Name            *string                 `json:"name" form:"name"`
	ContactName     *string                 `json:"contact_name" form:"contact_name"`
	ContactEmail    *string                 `json:"contact_email" form:"contact_email"`
	Phone           *string                 `json:"phone" form:"phone"`
	BillingSettings *entity.BillingSettings `json:"billing_settings" form:"billing_settings"`
}
