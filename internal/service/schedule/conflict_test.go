package schedule

import (
	"testing"
	"time"

	"guardpost/backend/internal/entity"
)

func ip(v int) *int          { return &v }
func sp(v string) *string    { return &v }
func tp(v time.Time) *time.Time { return &v }

func day(hour, min int) time.Time {
	return time.Date(2026, 3, 9, hour, min, 0, 0, time.UTC)
}

func shift(id, officerID int, status string, start, end time.Time) entity.Shift {
	s := entity.Shift{
		OfficerID: ip(officerID),
		Status:    sp(status),
		StartTime: tp(start),
		EndTime:   tp(end),
	}
	s.ID = id
	return s
}

func TestFindConflict(t *testing.T) {
	existing := []entity.Shift{
		shift(1, 7, entity.ShiftAssigned, day(9, 0), day(17, 0)),
		shift(2, 7, entity.ShiftCompleted, day(18, 0), day(22, 0)),
		shift(3, 8, entity.ShiftAssigned, day(9, 0), day(17, 0)),
	}

	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		officerID int
		exclude   int
		wantID    int // 0 = no conflict
	}{
		{
			name:      "overlapping tail reports double booking",
			start:     day(16, 0),
			end:       day(20, 0),
			officerID: 7,
			wantID:    1,
		},
		{
			name:      "touching intervals do not conflict",
			start:     day(17, 0),
			end:       day(20, 0),
			officerID: 7,
			wantID:    0,
		},
		{
			name:      "contained interval conflicts",
			start:     day(10, 0),
			end:       day(11, 0),
			officerID: 7,
			wantID:    1,
		},
		{
			name:      "completed shifts are ignored",
			start:     day(18, 30),
			end:       day(21, 0),
			officerID: 7,
			wantID:    0,
		},
		{
			name:      "other officers' shifts are ignored",
			start:     day(10, 0),
			end:       day(12, 0),
			officerID: 9,
			wantID:    0,
		},
		{
			name:      "edited shift excluded from comparison with itself",
			start:     day(9, 0),
			end:       day(17, 0),
			officerID: 7,
			exclude:   1,
			wantID:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindConflict(tt.start, tt.end, tt.officerID, existing, tt.exclude)
			if tt.wantID == 0 {
				if got != nil {
					t.Fatalf("FindConflict() = conflict with shift %d, want none", got.Shift.ID)
				}
				return
			}
			if got == nil {
				t.Fatal("FindConflict() = nil, want conflict")
			}
			if got.Kind != DoubleBooked {
				t.Errorf("Kind = %q, want %q", got.Kind, DoubleBooked)
			}
			if got.Shift.ID != tt.wantID {
				t.Errorf("conflicting shift = %d, want %d", got.Shift.ID, tt.wantID)
			}
		})
	}
}

func TestFindConflict_CrossMidnight(t *testing.T) {
	// A night shift ending past midnight still blocks an early-morning pickup.
	night := shift(5, 7, entity.ShiftAssigned,
		time.Date(2026, 3, 9, 22, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC))

	got := FindConflict(
		time.Date(2026, 3, 10, 5, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC),
		7, []entity.Shift{night}, 0)
	if got == nil {
		t.Fatal("FindConflict() across midnight = nil, want conflict")
	}
}

func TestFindConflict_UnassignedShiftIgnored(t *testing.T) {
	open := entity.Shift{
		Status:    sp(entity.ShiftPublished),
		StartTime: tp(day(9, 0)),
		EndTime:   tp(day(17, 0)),
	}
	open.ID = 4

	if got := FindConflict(day(10, 0), day(12, 0), 7, []entity.Shift{open}, 0); got != nil {
		t.Fatalf("FindConflict() against unassigned shift = %+v, want nil", got)
	}
}
