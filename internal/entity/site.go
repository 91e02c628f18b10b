package entity

import (
	"github.com/uptrace/bun"
)

// Site is a guarded location with a circular geofence around its center.
// Radius is in meters and must be > 0.
type Site struct {
	bun.BaseModel `bun:"table:sites"`

	BasicEntity
	ClientID  *int     `json:"client_id" bun:"client_id"`
	Name      *string  `json:"name" bun:"name"`
	Address   *string  `json:"address" bun:"address"`
	Latitude  *float64 `json:"latitude" bun:"latitude"`
	Longitude *float64 `json:"longitude" bun:"longitude"`
	Radius    *float64 `json:"radius" bun:"radius"`
}
