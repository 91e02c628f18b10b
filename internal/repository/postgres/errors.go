// Package postgres holds error values shared by the concrete repositories.
package postgres

import "github.com/pkg/errors"

var (
	// ErrNotFound is used when a specific record is requested but does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConcurrentModification means an optimistic-concurrency write found the
	// record changed since it was read. Callers retry a bounded number of
	// times before surfacing it.
	ErrConcurrentModification = errors.New("record modified concurrently")

	// ErrDuplicateRun means a payroll run already exists for the period.
	// Rejected outright; runs are immutable and never silently replaced.
	ErrDuplicateRun = errors.New("payroll run already exists for this period")

	// ErrAlreadyBilled means some of the hours selected for an invoice were
	// billed by a concurrent confirmation.
	ErrAlreadyBilled = errors.New("time entries already attached to an invoice")
)
