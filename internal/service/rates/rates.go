// Package rates resolves the effective pay and bill rate for a unit of worked
// time from the layered override hierarchy: entry snapshot, shift override,
// officer/client record, configured system default.
package rates

import (
	"github.com/pkg/errors"

	"guardpost/backend/internal/entity"
)

// ErrNoRate is returned when no tier of the hierarchy, including the
// configured default, yields a usable rate. Callers must treat this as a hard
// failure for the entry; falling back to zero would silently underpay or
// underbill.
var ErrNoRate = errors.New("no rate resolvable at any tier")

// OvertimeMultiplier is applied to the resolved pay rate when the officer has
// no explicit overtime rate.
const OvertimeMultiplier = 1.5

// tier is one source in a precedence chain. honorZero marks explicit
// overrides, where a stored 0 means "intentionally free" rather than absent.
type tier struct {
	rate      *float64
	honorZero bool
}

func resolve(tiers []tier) (float64, error) {
	for _, t := range tiers {
		if t.rate == nil {
			continue
		}
		v := *t.rate
		if v < 0 {
			continue
		}
		if v == 0 && !t.honorZero {
			continue
		}
		return v, nil
	}
	return 0, ErrNoRate
}

// Resolver resolves effective rates. The defaults are the last tier of each
// chain and come from configuration, never from a hard-coded constant.
type Resolver struct {
	defaultPay  float64
	defaultBill float64
}

// NewResolver builds a Resolver from the configured system defaults. Both
// must be positive: a missing default would otherwise surface much later as a
// per-entry resolution failure.
func NewResolver(defaultPayRate, defaultBillRate float64) (*Resolver, error) {
	if defaultPayRate <= 0 {
		return nil, errors.New("rates: default pay rate must be configured and positive")
	}
	if defaultBillRate <= 0 {
		return nil, errors.New("rates: default bill rate must be configured and positive")
	}
	return &Resolver{defaultPay: defaultPayRate, defaultBill: defaultBillRate}, nil
}

// PayRate resolves the hourly pay rate for a worked entry:
// entry snapshot > shift override > officer base rate > default.
// Entry and shift are overrides, so an explicit 0 on either is honored.
func (r *Resolver) PayRate(entry *entity.TimeEntry, shift *entity.Shift, officer *entity.Officer) (float64, error) {
	tiers := make([]tier, 0, 4)
	if entry != nil {
		tiers = append(tiers, tier{rate: entry.PayRate, honorZero: true})
	}
	if shift != nil {
		tiers = append(tiers, tier{rate: shift.PayRate, honorZero: true})
	}
	if officer != nil && officer.Financials != nil {
		tiers = append(tiers, tier{rate: officer.Financials.BaseRate})
	}
	tiers = append(tiers, tier{rate: &r.defaultPay})

	return resolve(tiers)
}

// OvertimeRate resolves the hourly overtime rate: the officer's explicit
// overtime rate when set, otherwise 1.5x the resolved pay rate.
func (r *Resolver) OvertimeRate(entry *entity.TimeEntry, shift *entity.Shift, officer *entity.Officer) (float64, error) {
	if officer != nil && officer.Financials != nil && officer.Financials.OvertimeRate != nil && *officer.Financials.OvertimeRate > 0 {
		return *officer.Financials.OvertimeRate, nil
	}

	pay, err := r.PayRate(entry, shift, officer)
	if err != nil {
		return 0, err
	}
	return pay * OvertimeMultiplier, nil
}

// BillRate resolves the hourly bill rate for a worked entry:
// entry snapshot > shift override > client standard rate > default.
func (r *Resolver) BillRate(entry *entity.TimeEntry, shift *entity.Shift, client *entity.Client) (float64, error) {
	tiers := make([]tier, 0, 4)
	if entry != nil {
		tiers = append(tiers, tier{rate: entry.BillRate, honorZero: true})
	}
	if shift != nil {
		tiers = append(tiers, tier{rate: shift.BillRate, honorZero: true})
	}
	if client != nil && client.BillingSettings != nil {
		tiers = append(tiers, tier{rate: client.BillingSettings.StandardRate})
	}
	tiers = append(tiers, tier{rate: &r.defaultBill})

	return resolve(tiers)
}
