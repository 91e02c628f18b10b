package site

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit    *int
	Offset   *int
	Page     *int
	Search   *string
	ClientID *int
}

type GetListResponse struct {
	ID         int      `json:"id"`
	ClientID   *int     `json:"client_id"`
	ClientName *string  `json:"client_name"`
	Name       *string  `json:"name"`
	Address    *string  `json:"address"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Radius     *float64 `json:"radius"`
}

type GetDetailByIdResponse struct {
	ID         int      `json:"id"`
	ClientID   *int     `json:"client_id"`
	ClientName *string  `json:"client_name"`
	Name       *string  `json:"name"`
	Address    *string  `json:"address"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Radius     *float64 `json:"radius"`
}

type CreateRequest struct {
	ClientID  *int     `json:"client_id" form:"client_id"`
	Name      *string  `json:"name" form:"name"`
	Address   *string  `json:"address" form:"address"`
	Latitude  *float64 `json:"latitude" form:"latitude"`
	Longitude *float64 `json:"longitude" form:"longitude"`
	Radius    *float64 `json:"radius" form:"radius"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:sites"`

	ID        int       `json:"id" bun:"-"`
	ClientID  *int      `json:"client_id" bun:"client_id"`
	Name      *string   `json:"name" bun:"name"`
	Address   *string   `json:"address" bun:"address"`
	Latitude  *float64  `json:"latitude" bun:"latitude"`
	Longitude *float64  `json:"longitude" bun:"longitude"`
	Radius    *float64  `json:"radius" bun:"radius"`
	CreatedAt time.Time `json:"-" bun:"created_at"`
	CreatedBy int       `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID        int      `json:"id" form:"id"`
	ClientID  *int     `json:"client_id" form:"client_id"`
	Name      *string  `json:"name" form:"name"`
	Address   *string  `json:"address" form:"address"`
	Latitude  *float64 `json:"latitude" form:"latitude"`
	Longitude *float64 `json:"longitude" form:"longitude"`
	Radius    *float64 `json:"radius" form:"radius"`
}
