// Package audit appends structured audit records for committed mutations.
// Repositories take a Recorder as an optional callback so the core write path
// never depends on how auditing is stored.
package audit

import (
	"context"
	"log"
	"time"

	"guardpost/backend/internal/entity"
	"guardpost/backend/internal/pkg/repository/postgresql"
)

// Record describes one committed mutation.
type Record struct {
	Action         string
	Description    string
	ActorID        int
	TargetResource string
	TargetID       int
	Timestamp      time.Time
}

// Recorder receives audit records. A nil Recorder is valid and records nothing.
type Recorder func(ctx context.Context, rec Record)

// Emit invokes the recorder if one is set, stamping the time when unset.
func (r Recorder) Emit(ctx context.Context, rec Record) {
	if r == nil {
		return
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	r(ctx, rec)
}

// NewRecorder returns a Recorder that appends to the audit_logs table.
// Audit failures are logged, not propagated: a missing audit row must not
// roll back the mutation it describes.
func NewRecorder(db *postgresql.Database) Recorder {
	return func(ctx context.Context, rec Record) {
		row := entity.AuditLog{
			Action:         rec.Action,
			Description:    rec.Description,
			ActorID:        rec.ActorID,
			TargetResource: rec.TargetResource,
			TargetID:       rec.TargetID,
			CreatedAt:      rec.Timestamp,
		}

		if _, err := db.NewInsert().Model(&row).Exec(ctx); err != nil {
			log.Println("audit: appending record:", err)
		}
	}
}
