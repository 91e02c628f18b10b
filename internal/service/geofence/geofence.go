// Package geofence computes distance from site centers and inside/outside
// boundary transitions from officer GPS pings.
package geofence

import (
	"math"
	"time"

	"guardpost/backend/internal/entity"
)

// EarthRadiusMeters is the mean Earth radius used by the Haversine formula.
const EarthRadiusMeters = 6371000.0

// approachRatio marks the outer band of the geofence used for early warnings.
const approachRatio = 0.8

// Location is a GPS fix in decimal degrees.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DistanceMeters returns the great-circle distance between two coordinates
// using the Haversine formula.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	const degToRad = math.Pi / 180

	dLat := (lat2 - lat1) * degToRad
	dLng := (lng2 - lng1) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

func siteDistance(loc Location, site entity.Site) float64 {
	if site.Latitude == nil || site.Longitude == nil {
		return math.Inf(1)
	}
	return DistanceMeters(loc.Latitude, loc.Longitude, *site.Latitude, *site.Longitude)
}

// IsInside reports whether the location is within the site's geofence.
// The boundary itself counts as inside.
func IsInside(loc Location, site entity.Site) bool {
	if site.Radius == nil {
		return false
	}
	return siteDistance(loc, site) <= *site.Radius
}

// ApproachingBoundary reports whether the location sits in the outer band of
// the geofence (inside, but past 80% of the radius). Used for early-warning
// display only; it never emits events.
func ApproachingBoundary(loc Location, site entity.Site) bool {
	if site.Radius == nil {
		return false
	}
	d := siteDistance(loc, site)
	return d > approachRatio*(*site.Radius) && d <= *site.Radius
}

// CheckTransition compares the ping against the caller-supplied previous
// state and returns a boundary-crossing event, or nil when the state did not
// change. Steady-state pings inside or outside produce nothing, so periodic
// polling cannot flood the event log.
func CheckTransition(officerID int, loc Location, site entity.Site, wasInside bool, now time.Time) *entity.GeofenceEvent {
	if site.Radius == nil {
		return nil
	}

	distance := siteDistance(loc, site)
	isInside := distance <= *site.Radius
	if isInside == wasInside {
		return nil
	}

	eventType := entity.GeofenceExit
	if isInside {
		eventType = entity.GeofenceEnter
	}

	rounded := int(math.Round(distance))
	acknowledged := false

	return &entity.GeofenceEvent{
		OfficerID:          &officerID,
		SiteID:             &site.ID,
		EventType:          &eventType,
		Latitude:           &loc.Latitude,
		Longitude:          &loc.Longitude,
		DistanceFromCenter: &rounded,
		OccurredAt:         &now,
		Acknowledged:       &acknowledged,
	}
}
