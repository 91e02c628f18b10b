// Package schedule detects double-booking when assigning officers to shifts.
//
// A detected conflict is advisory: dispatchers sometimes overlap shifts on
// purpose for handovers, so callers surface the classification as a warning
// rather than blocking the assignment.
package schedule

import (
	"time"

	"guardpost/backend/internal/entity"
)

// Kind classifies a scheduling conflict.
type Kind string

const DoubleBooked Kind = "double_booked"

// Conflict describes a clash between a candidate interval and an existing
// shift for the same officer.
type Conflict struct {
	Kind  Kind         `json:"kind"`
	Shift entity.Shift `json:"shift"`
}

// FindConflict checks the half-open candidate interval [start, end) against
// the officer's non-completed shifts. excludeShiftID skips the shift being
// edited so it never conflicts with itself; pass 0 when creating.
//
// Two intervals overlap iff s1 < e2 && e1 > s2, so back-to-back shifts that
// merely touch do not conflict.
func FindConflict(start, end time.Time, officerID int, shifts []entity.Shift, excludeShiftID int) *Conflict {
	for _, s := range shifts {
		if s.ID == excludeShiftID {
			continue
		}
		if s.OfficerID == nil || *s.OfficerID != officerID {
			continue
		}
		if s.Status != nil && *s.Status == entity.ShiftCompleted {
			continue
		}
		if s.StartTime == nil || s.EndTime == nil {
			continue
		}

		if start.Before(*s.EndTime) && end.After(*s.StartTime) {
			return &Conflict{Kind: DoubleBooked, Shift: s}
		}
	}

	return nil
}
