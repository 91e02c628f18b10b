package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Geofence event types.
const (
	GeofenceEnter = "enter"
	GeofenceExit  = "exit"
)

// GeofenceEvent records a boundary crossing. Events are append-only and are
// created only on an inside/outside transition, never on steady-state pings.
type GeofenceEvent struct {
	bun.BaseModel `bun:"table:geofence_events"`

	BasicEntity
	OfficerID          *int       `json:"officer_id" bun:"officer_id"`
	SiteID             *int       `json:"site_id" bun:"site_id"`
	EventType          *string    `json:"event_type" bun:"event_type"`
	Latitude           *float64   `json:"latitude" bun:"latitude"`
	Longitude          *float64   `json:"longitude" bun:"longitude"`
	DistanceFromCenter *int       `json:"distance_from_center" bun:"distance_from_center"`
	OccurredAt         *time.Time `json:"occurred_at" bun:"occurred_at"`
	Acknowledged       *bool      `json:"acknowledged" bun:"acknowledged"`
}
