package payroll

import (
	"math"
	"reflect"
	"testing"
	"time"

	"guardpost/backend/internal/entity"
	"guardpost/backend/internal/service/rates"
)

const eps = 1e-9

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }
func sp(v string) *string   { return &v }

func approx(a, b float64) bool { return math.Abs(a-b) < eps }

func testResolver(t *testing.T) *rates.Resolver {
	t.Helper()
	r, err := rates.NewResolver(15, 35)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	return r
}

func entry(id, officerID int, status string, clockIn time.Time, hours float64) entity.TimeEntry {
	e := entity.TimeEntry{
		OfficerID:  ip(officerID),
		Status:     sp(status),
		ClockIn:    &clockIn,
		TotalHours: fp(hours),
	}
	e.ID = id
	return e
}

func officer(id int, name string, base, overtime *float64, deductions ...entity.Deduction) entity.Officer {
	o := entity.Officer{
		FullName:         sp(name),
		EmploymentStatus: sp(entity.EmploymentActive),
		Financials: &entity.OfficerFinancials{
			BaseRate:     base,
			OvertimeRate: overtime,
			Deductions:   deductions,
		},
	}
	o.ID = id
	return o
}

var (
	periodStart = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
)

func TestSplitHours(t *testing.T) {
	tests := []struct {
		hours        float64
		wantRegular  float64
		wantOvertime float64
	}{
		{0, 0, 0},
		{4.5, 4.5, 0},
		{8, 8, 0},
		{10, 8, 2},
		{12.25, 8, 4.25},
	}

	for _, tt := range tests {
		regular, overtime := SplitHours(tt.hours)
		if !approx(regular, tt.wantRegular) || !approx(overtime, tt.wantOvertime) {
			t.Errorf("SplitHours(%v) = (%v, %v), want (%v, %v)",
				tt.hours, regular, overtime, tt.wantRegular, tt.wantOvertime)
		}
		if !approx(regular+overtime, tt.hours) {
			t.Errorf("SplitHours(%v): regular+overtime = %v, want %v", tt.hours, regular+overtime, tt.hours)
		}
	}
}

func TestAggregate_EndToEnd(t *testing.T) {
	// Officer: base 20, overtime 30, one $5 uniform deduction. Two approved
	// entries of 10h and 6h: regular 8+6=14, overtime 2, gross 14*20+2*30=340,
	// net 335.
	agg := NewAggregator(testResolver(t))

	officers := map[int]entity.Officer{
		7: officer(7, "Dana Reyes", fp(20), fp(30), entity.Deduction{Name: "Uniform", Amount: 5}),
	}
	entries := []entity.TimeEntry{
		entry(2, 7, entity.EntryApproved, time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC), 6),
		entry(1, 7, entity.EntryApproved, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), 10),
	}

	candidates, warnings, err := agg.Aggregate(periodStart, periodEnd, entries, officers, nil)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings = %+v, want none", warnings)
	}
	if len(candidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(candidates))
	}

	c := candidates[0]
	if c.OfficerID != 7 {
		t.Errorf("OfficerID = %d, want 7", c.OfficerID)
	}
	if !approx(c.RegularHours, 14) {
		t.Errorf("RegularHours = %v, want 14", c.RegularHours)
	}
	if !approx(c.OvertimeHours, 2) {
		t.Errorf("OvertimeHours = %v, want 2", c.OvertimeHours)
	}
	if !approx(c.GrossPay, 340) {
		t.Errorf("GrossPay = %v, want 340", c.GrossPay)
	}
	if !approx(c.DeductionsTotal, 5) {
		t.Errorf("DeductionsTotal = %v, want 5", c.DeductionsTotal)
	}
	if !approx(c.NetPay, 335) {
		t.Errorf("NetPay = %v, want 335", c.NetPay)
	}

	// Contributing entries come back in chronological clock-in order.
	if len(c.Entries) != 2 || c.Entries[0].ID != 1 || c.Entries[1].ID != 2 {
		t.Errorf("Entries order = %v, want [1 2]", []int{c.Entries[0].ID, c.Entries[1].ID})
	}
}

func TestAggregate_NetPayFlooredAtZero(t *testing.T) {
	agg := NewAggregator(testResolver(t))

	officers := map[int]entity.Officer{
		3: officer(3, "Sam Okafor", fp(20), nil, entity.Deduction{Name: "Equipment", Amount: 100}),
	}
	entries := []entity.TimeEntry{
		entry(1, 3, entity.EntryApproved, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), 2),
	}

	candidates, _, err := agg.Aggregate(periodStart, periodEnd, entries, officers, nil)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(candidates))
	}
	if candidates[0].GrossPay != 40 {
		t.Errorf("GrossPay = %v, want 40", candidates[0].GrossPay)
	}
	if candidates[0].NetPay != 0 {
		t.Errorf("NetPay = %v, want 0 (floored, never negative)", candidates[0].NetPay)
	}
}

func TestAggregate_PeriodBoundaries(t *testing.T) {
	agg := NewAggregator(testResolver(t))
	officers := map[int]entity.Officer{7: officer(7, "Dana Reyes", fp(20), nil)}

	entries := []entity.TimeEntry{
		// First instant of the period: included.
		entry(1, 7, entity.EntryApproved, periodStart, 4),
		// Late on the end day: the period is closed through 23:59:59.999.
		entry(2, 7, entity.EntryApproved, time.Date(2026, 3, 15, 23, 30, 0, 0, time.UTC), 4),
		// Day after: excluded.
		entry(3, 7, entity.EntryApproved, time.Date(2026, 3, 16, 0, 0, 1, 0, time.UTC), 4),
		// Before the period: excluded.
		entry(4, 7, entity.EntryApproved, time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC), 4),
	}

	candidates, warnings, err := agg.Aggregate(periodStart, periodEnd, entries, officers, nil)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings = %+v, want none", warnings)
	}
	if len(candidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(candidates))
	}
	if !approx(candidates[0].RegularHours, 8) {
		t.Errorf("RegularHours = %v, want 8 (entries 1 and 2 only)", candidates[0].RegularHours)
	}
}

func TestAggregate_SkipsNonApproved(t *testing.T) {
	agg := NewAggregator(testResolver(t))
	officers := map[int]entity.Officer{7: officer(7, "Dana Reyes", fp(20), nil)}

	entries := []entity.TimeEntry{
		entry(1, 7, entity.EntryPending, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), 8),
		entry(2, 7, entity.EntryRejected, time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC), 8),
	}

	candidates, warnings, err := agg.Aggregate(periodStart, periodEnd, entries, officers, nil)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("candidates = %d, want 0", len(candidates))
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings = %+v, want none (non-approved is a filter, not a data problem)", warnings)
	}
}

func TestAggregate_DataIntegrityWarnings(t *testing.T) {
	agg := NewAggregator(testResolver(t))
	officers := map[int]entity.Officer{7: officer(7, "Dana Reyes", fp(20), nil)}

	negative := entry(1, 7, entity.EntryApproved, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), -2)
	unknownOfficer := entry(2, 99, entity.EntryApproved, time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC), 8)
	noOfficer := entry(3, 0, entity.EntryApproved, time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC), 8)
	noOfficer.OfficerID = nil
	good := entry(4, 7, entity.EntryApproved, time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC), 8)

	candidates, warnings, err := agg.Aggregate(periodStart, periodEnd,
		[]entity.TimeEntry{negative, unknownOfficer, noOfficer, good}, officers, nil)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	if len(warnings) != 3 {
		t.Fatalf("warnings = %d, want 3: %+v", len(warnings), warnings)
	}
	for _, w := range warnings {
		if w.Kind != WarnDataIntegrity {
			t.Errorf("warning kind = %q, want %q", w.Kind, WarnDataIntegrity)
		}
	}

	if len(candidates) != 1 || !approx(candidates[0].RegularHours, 8) {
		t.Fatalf("good entry not aggregated: %+v", candidates)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	agg := NewAggregator(testResolver(t))

	officers := map[int]entity.Officer{
		3: officer(3, "Sam Okafor", fp(18), nil, entity.Deduction{Name: "Uniform", Amount: 10}),
		7: officer(7, "Dana Reyes", fp(20), fp(30)),
	}
	entries := []entity.TimeEntry{
		entry(1, 7, entity.EntryApproved, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), 10),
		entry(2, 3, entity.EntryApproved, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), 6),
		entry(3, 7, entity.EntryApproved, time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC), 7.5),
	}

	first, _, err := agg.Aggregate(periodStart, periodEnd, entries, officers, nil)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	second, _, err := agg.Aggregate(periodStart, periodEnd, entries, officers, nil)
	if err != nil {
		t.Fatalf("Aggregate() second call error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Aggregate() not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}

	// Deterministic ordering by officer id.
	if first[0].OfficerID != 3 || first[1].OfficerID != 7 {
		t.Errorf("candidate order = [%d %d], want [3 7]", first[0].OfficerID, first[1].OfficerID)
	}
}

func TestAggregate_ShiftOverrideRate(t *testing.T) {
	agg := NewAggregator(testResolver(t))

	officers := map[int]entity.Officer{7: officer(7, "Dana Reyes", fp(20), nil)}
	s := entity.Shift{PayRate: fp(28)}
	s.ID = 11
	shifts := map[int]entity.Shift{11: s}

	e := entry(1, 7, entity.EntryApproved, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), 4)
	e.ShiftID = ip(11)

	candidates, _, err := agg.Aggregate(periodStart, periodEnd, []entity.TimeEntry{e}, officers, shifts)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("candidates = %d, want 1", len(candidates))
	}
	if !approx(candidates[0].GrossPay, 112) {
		t.Errorf("GrossPay = %v, want 112 (shift override 28 beats base 20)", candidates[0].GrossPay)
	}
}

func TestTotals(t *testing.T) {
	total, count := Totals([]Candidate{{NetPay: 335}, {NetPay: 120.5}})
	if !approx(total, 455.5) {
		t.Errorf("total = %v, want 455.5", total)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}
