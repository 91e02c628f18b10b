package billing

import (
	"math"
	"testing"

	"guardpost/backend/internal/entity"
	"guardpost/backend/internal/service/rates"
)

const eps = 1e-9

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func approx(a, b float64) bool { return math.Abs(a-b) < eps }

func testGrouper(t *testing.T) *Grouper {
	t.Helper()
	r, err := rates.NewResolver(15, 35)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	return NewGrouper(r)
}

func billedEntry(id int, hours float64, billRate *float64) entity.TimeEntry {
	e := entity.TimeEntry{TotalHours: fp(hours), BillRate: billRate}
	e.ID = id
	return e
}

func TestGroupForClient_MergesByRate(t *testing.T) {
	g := testGrouper(t)
	client := &entity.Client{BillingSettings: &entity.BillingSettings{StandardRate: fp(45)}}

	// 5h and 3h both resolve to the client's $45 standard rate; the third
	// entry carries a $50 snapshot and becomes its own line.
	entries := []entity.TimeEntry{
		billedEntry(1, 5, nil),
		billedEntry(2, 3, nil),
		billedEntry(3, 2, fp(50)),
	}

	preview, err := g.GroupForClient(9, entries, nil, client)
	if err != nil {
		t.Fatalf("GroupForClient() error = %v", err)
	}

	if len(preview.Lines) != 2 {
		t.Fatalf("lines = %d, want 2: %+v", len(preview.Lines), preview.Lines)
	}

	first := preview.Lines[0]
	if !approx(first.Quantity, 8) || !approx(first.Rate, 45) || !approx(first.Amount, 360) {
		t.Errorf("merged line = %+v, want quantity 8 rate 45 amount 360", first)
	}
	if first.Description != "Security services @ $45.00/hr" {
		t.Errorf("description = %q", first.Description)
	}

	second := preview.Lines[1]
	if !approx(second.Quantity, 2) || !approx(second.Rate, 50) || !approx(second.Amount, 100) {
		t.Errorf("snapshot line = %+v, want quantity 2 rate 50 amount 100", second)
	}

	if !approx(preview.Total, 460) {
		t.Errorf("Total = %v, want 460", preview.Total)
	}
	if len(preview.EntryIDs) != 3 {
		t.Errorf("EntryIDs = %v, want all three entries", preview.EntryIDs)
	}
}

func TestGroupForClient_ShiftOverride(t *testing.T) {
	g := testGrouper(t)
	client := &entity.Client{BillingSettings: &entity.BillingSettings{StandardRate: fp(45)}}

	s := entity.Shift{BillRate: fp(60)}
	s.ID = 4
	shifts := map[int]entity.Shift{4: s}

	e := billedEntry(1, 6, nil)
	e.ShiftID = ip(4)

	preview, err := g.GroupForClient(9, []entity.TimeEntry{e}, shifts, client)
	if err != nil {
		t.Fatalf("GroupForClient() error = %v", err)
	}
	if len(preview.Lines) != 1 || !approx(preview.Lines[0].Rate, 60) {
		t.Fatalf("lines = %+v, want one line at the shift override rate 60", preview.Lines)
	}
	if !approx(preview.Total, 360) {
		t.Errorf("Total = %v, want 360", preview.Total)
	}
}

func TestGroupForClient_Warnings(t *testing.T) {
	g := testGrouper(t)
	client := &entity.Client{BillingSettings: &entity.BillingSettings{StandardRate: fp(45)}}

	open := entity.TimeEntry{} // still clocked in, no hours yet
	open.ID = 1
	negative := billedEntry(2, -1, nil)
	good := billedEntry(3, 4, nil)

	preview, err := g.GroupForClient(9, []entity.TimeEntry{open, negative, good}, nil, client)
	if err != nil {
		t.Fatalf("GroupForClient() error = %v", err)
	}

	if len(preview.Warnings) != 2 {
		t.Fatalf("warnings = %+v, want 2", preview.Warnings)
	}
	if len(preview.Lines) != 1 || !approx(preview.Lines[0].Quantity, 4) {
		t.Fatalf("lines = %+v, want only the good entry billed", preview.Lines)
	}
}

func TestGroupForClient_Empty(t *testing.T) {
	g := testGrouper(t)

	preview, err := g.GroupForClient(9, nil, nil, nil)
	if err != nil {
		t.Fatalf("GroupForClient() error = %v", err)
	}
	if len(preview.Lines) != 0 || preview.Total != 0 {
		t.Errorf("empty input: preview = %+v, want no lines and zero total", preview)
	}
}
