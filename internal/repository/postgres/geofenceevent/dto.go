package geofenceevent

import (
	"time"
)

type Filter struct {
	Limit        *int
	Offset       *int
	Page         *int
	OfficerID    *int
	SiteID       *int
	Acknowledged *bool
}

type PingRequest struct {
	SiteID    *int     `json:"site_id" form:"site_id"`
	Latitude  *float64 `json:"latitude" form:"latitude"`
	Longitude *float64 `json:"longitude" form:"longitude"`
}

// PingResponse reports the evaluated state. Event is set only when the ping
// crossed the boundary.
type PingResponse struct {
	Inside         bool           `json:"inside"`
	Approaching    bool           `json:"approaching_boundary"`
	DistanceMeters float64        `json:"distance_meters"`
	Event          *EventResponse `json:"event,omitempty"`
}

type EventResponse struct {
	ID                 int       `json:"id"`
	OfficerID          int       `json:"officer_id"`
	SiteID             int       `json:"site_id"`
	EventType          string    `json:"event_type"`
	DistanceFromCenter int       `json:"distance_from_center"`
	OccurredAt         time.Time `json:"occurred_at"`
}

type GetListResponse struct {
	ID                 int        `json:"id"`
	OfficerID          *int       `json:"officer_id"`
	OfficerName        *string    `json:"officer_name"`
	SiteID             *int       `json:"site_id"`
	SiteName           *string    `json:"site_name"`
	EventType          *string    `json:"event_type"`
	DistanceFromCenter *int       `json:"distance_from_center"`
	OccurredAt         *time.Time `json:"occurred_at"`
	Acknowledged       *bool      `json:"acknowledged"`
}
