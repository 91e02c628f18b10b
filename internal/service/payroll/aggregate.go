// Package payroll turns approved time entries into per-officer payroll
// candidates for a period: regular/overtime splitting, rate resolution,
// flat deduction application.
//
// Aggregation is pure: it reads snapshots and returns derived values, so
// calling it twice on the same input yields the same candidates. Nothing is
// persisted until a run is explicitly confirmed at the repository layer.
package payroll

import (
	"sort"
	"time"

	"github.com/pkg/errors"

	"guardpost/backend/internal/entity"
	"guardpost/backend/internal/service/rates"
)

// OvertimeThresholdHours splits a single time entry into regular and overtime
// hours. The threshold is per entry, not per calendar day or week: two 6-hour
// entries on the same day yield no overtime. That mirrors how dispatch
// reviews entries today; revisit if weekly overtime rules ever apply.
const OvertimeThresholdHours = 8.0

// WarningKind classifies a data problem found during aggregation.
type WarningKind string

const WarnDataIntegrity WarningKind = "data_integrity"

// Warning reports an entry excluded from aggregation. Warnings ride alongside
// the results so bad data is never silently dropped.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	EntryID int         `json:"entry_id"`
	Reason  string      `json:"reason"`
}

// Candidate is the computed, not-yet-committed pay summary for one officer.
type Candidate struct {
	OfficerID       int                `json:"officer_id"`
	OfficerName     string             `json:"officer_name"`
	RegularHours    float64            `json:"regular_hours"`
	OvertimeHours   float64            `json:"overtime_hours"`
	GrossPay        float64            `json:"gross_pay"`
	DeductionsTotal float64            `json:"deductions_total"`
	NetPay          float64            `json:"net_pay"`
	Entries         []entity.TimeEntry `json:"entries"`
}

// SplitHours splits one entry's hours at the per-entry overtime threshold.
// regular + overtime always equals h for h >= 0.
func SplitHours(h float64) (regular, overtime float64) {
	if h <= OvertimeThresholdHours {
		return h, 0
	}
	return OvertimeThresholdHours, h - OvertimeThresholdHours
}

// PeriodEnd extends a day-granular period end to the last instant of that
// day, making the period closed on both ends.
func PeriodEnd(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 999000000, d.Location())
}

// Aggregator computes payroll candidates using the shared rate resolver.
type Aggregator struct {
	rates *rates.Resolver
}

func NewAggregator(r *rates.Resolver) *Aggregator {
	return &Aggregator{rates: r}
}

// Aggregate folds the approved entries whose clock-in falls inside
// [periodStart, end of periodEnd] into one candidate per officer. Officers
// and shifts are lookup snapshots keyed by id; a nil shift entry is fine (the
// rate chain falls through to the officer tier).
//
// Entries with negative hours, no recorded hours, or an unknown officer are
// excluded and reported as warnings. A rate that cannot be resolved at any
// tier aborts the aggregation: paying zero for worked hours is worse than
// failing the run.
func (a *Aggregator) Aggregate(
	periodStart, periodEnd time.Time,
	entries []entity.TimeEntry,
	officers map[int]entity.Officer,
	shifts map[int]entity.Shift,
) ([]Candidate, []Warning, error) {

	end := PeriodEnd(periodEnd)
	warnings := []Warning{}
	byOfficer := make(map[int]*Candidate)

	for _, e := range entries {
		if e.Status == nil || *e.Status != entity.EntryApproved {
			continue
		}
		if e.ClockIn == nil {
			warnings = append(warnings, Warning{Kind: WarnDataIntegrity, EntryID: e.ID, Reason: "entry has no clock-in time"})
			continue
		}
		if e.ClockIn.Before(periodStart) || e.ClockIn.After(end) {
			continue
		}

		if e.OfficerID == nil {
			warnings = append(warnings, Warning{Kind: WarnDataIntegrity, EntryID: e.ID, Reason: "entry has no officer reference"})
			continue
		}
		officer, ok := officers[*e.OfficerID]
		if !ok {
			warnings = append(warnings, Warning{Kind: WarnDataIntegrity, EntryID: e.ID, Reason: "officer not found"})
			continue
		}

		if e.TotalHours == nil {
			warnings = append(warnings, Warning{Kind: WarnDataIntegrity, EntryID: e.ID, Reason: "entry has no recorded hours"})
			continue
		}
		hours := *e.TotalHours
		if hours < 0 {
			warnings = append(warnings, Warning{Kind: WarnDataIntegrity, EntryID: e.ID, Reason: "entry has negative hours"})
			continue
		}

		var shift *entity.Shift
		if e.ShiftID != nil {
			if s, ok := shifts[*e.ShiftID]; ok {
				shift = &s
			}
		}

		entry := e
		payRate, err := a.rates.PayRate(&entry, shift, &officer)
		if err != nil {
			return nil, warnings, errors.Wrapf(err, "resolving pay rate for entry %d", e.ID)
		}
		otRate, err := a.rates.OvertimeRate(&entry, shift, &officer)
		if err != nil {
			return nil, warnings, errors.Wrapf(err, "resolving overtime rate for entry %d", e.ID)
		}

		regular, overtime := SplitHours(hours)

		cand, ok := byOfficer[*e.OfficerID]
		if !ok {
			cand = &Candidate{OfficerID: *e.OfficerID}
			if officer.FullName != nil {
				cand.OfficerName = *officer.FullName
			}
			if officer.Financials != nil {
				cand.DeductionsTotal = officer.Financials.DeductionsTotal()
			}
			byOfficer[*e.OfficerID] = cand
		}

		cand.RegularHours += regular
		cand.OvertimeHours += overtime
		cand.GrossPay += regular*payRate + overtime*otRate
		cand.Entries = append(cand.Entries, e)
	}

	candidates := make([]Candidate, 0, len(byOfficer))
	for _, cand := range byOfficer {
		// Flat per-period deductions apply once, and never push net below
		// zero or carry over into a future period.
		cand.NetPay = cand.GrossPay - cand.DeductionsTotal
		if cand.NetPay < 0 {
			cand.NetPay = 0
		}

		sort.Slice(cand.Entries, func(i, j int) bool {
			return cand.Entries[i].ClockIn.Before(*cand.Entries[j].ClockIn)
		})

		candidates = append(candidates, *cand)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].OfficerID < candidates[j].OfficerID
	})

	return candidates, warnings, nil
}

// Totals sums the candidates for run-level reporting.
func Totals(candidates []Candidate) (totalAmount float64, officerCount int) {
	for _, c := range candidates {
		totalAmount += c.NetPay
	}
	return totalAmount, len(candidates)
}
