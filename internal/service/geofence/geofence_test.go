package geofence

import (
	"math"
	"testing"
	"time"

	"guardpost/backend/internal/entity"
)

func fp(v float64) *float64 { return &v }

const (
	siteLat = 40.730610
	siteLng = -73.935242
)

func testSite(radius float64) entity.Site {
	s := entity.Site{Latitude: fp(siteLat), Longitude: fp(siteLng), Radius: fp(radius)}
	s.ID = 12
	return s
}

// northOf returns a location the given number of meters due north of the
// site center. Along a meridian the Haversine distance is exact.
func northOf(meters float64) Location {
	return Location{
		Latitude:  siteLat + meters/EarthRadiusMeters*180/math.Pi,
		Longitude: siteLng,
	}
}

func TestDistanceMeters(t *testing.T) {
	t.Run("same point is zero", func(t *testing.T) {
		if d := DistanceMeters(siteLat, siteLng, siteLat, siteLng); d != 0 {
			t.Errorf("DistanceMeters(same point) = %v, want 0", d)
		}
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		want := EarthRadiusMeters * math.Pi / 180 // ~111195 m
		got := DistanceMeters(40, -73, 41, -73)
		if math.Abs(got-want) > 1 {
			t.Errorf("DistanceMeters(1 deg lat) = %v, want %v", got, want)
		}
	})

	t.Run("constructed offset round-trips", func(t *testing.T) {
		loc := northOf(250)
		got := DistanceMeters(loc.Latitude, loc.Longitude, siteLat, siteLng)
		if math.Abs(got-250) > 0.01 {
			t.Errorf("DistanceMeters(250m north) = %v, want 250", got)
		}
	})
}

func TestIsInside(t *testing.T) {
	site := testSite(200)

	tests := []struct {
		name string
		loc  Location
		want bool
	}{
		{name: "exact center", loc: Location{Latitude: siteLat, Longitude: siteLng}, want: true},
		{name: "well inside", loc: northOf(50), want: true},
		{name: "on the boundary counts as inside", loc: northOf(200), want: true},
		{name: "outside", loc: northOf(250), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInside(tt.loc, site); got != tt.want {
				t.Errorf("IsInside() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApproachingBoundary(t *testing.T) {
	site := testSite(200)

	tests := []struct {
		name string
		loc  Location
		want bool
	}{
		{name: "center is not approaching", loc: Location{Latitude: siteLat, Longitude: siteLng}, want: false},
		{name: "inside the 80 percent band", loc: northOf(100), want: false},
		{name: "outer band", loc: northOf(170), want: true},
		{name: "boundary is still the outer band", loc: northOf(200), want: true},
		{name: "outside is not approaching", loc: northOf(220), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApproachingBoundary(tt.loc, site); got != tt.want {
				t.Errorf("ApproachingBoundary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckTransition(t *testing.T) {
	site := testSite(200)
	now := time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC)

	t.Run("steady state inside emits nothing", func(t *testing.T) {
		if ev := CheckTransition(7, northOf(50), site, true, now); ev != nil {
			t.Errorf("CheckTransition() = %+v, want nil", ev)
		}
	})

	t.Run("steady state outside emits nothing", func(t *testing.T) {
		if ev := CheckTransition(7, northOf(500), site, false, now); ev != nil {
			t.Errorf("CheckTransition() = %+v, want nil", ev)
		}
	})

	t.Run("crossing out emits one exit with rounded distance", func(t *testing.T) {
		ev := CheckTransition(7, northOf(250), site, true, now)
		if ev == nil {
			t.Fatal("CheckTransition() = nil, want exit event")
		}
		if *ev.EventType != entity.GeofenceExit {
			t.Errorf("EventType = %q, want exit", *ev.EventType)
		}
		if *ev.DistanceFromCenter != 250 {
			t.Errorf("DistanceFromCenter = %d, want 250", *ev.DistanceFromCenter)
		}
		if *ev.OfficerID != 7 || *ev.SiteID != site.ID {
			t.Errorf("event refs = officer %d site %d, want 7 and %d", *ev.OfficerID, *ev.SiteID, site.ID)
		}
		if !ev.OccurredAt.Equal(now) {
			t.Errorf("OccurredAt = %v, want %v", ev.OccurredAt, now)
		}
		if *ev.Acknowledged {
			t.Error("new events must start unacknowledged")
		}
	})

	t.Run("crossing in emits enter", func(t *testing.T) {
		ev := CheckTransition(7, northOf(120), site, false, now)
		if ev == nil {
			t.Fatal("CheckTransition() = nil, want enter event")
		}
		if *ev.EventType != entity.GeofenceEnter {
			t.Errorf("EventType = %q, want enter", *ev.EventType)
		}
	})
}
