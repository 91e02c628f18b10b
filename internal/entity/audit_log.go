package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// AuditLog records a committed mutation (assignment, payroll confirmation,
// invoice send) for later display.
type AuditLog struct {
	bun.BaseModel `bun:"table:audit_logs"`

	ID             int       `json:"id" bun:"id,pk,autoincrement"`
	Action         string    `json:"action" bun:"action"`
	Description    string    `json:"description" bun:"description"`
	ActorID        int       `json:"actor_id" bun:"actor_id"`
	TargetResource string    `json:"target_resource" bun:"target_resource"`
	TargetID       int       `json:"target_id" bun:"target_id"`
	CreatedAt      time.Time `json:"created_at" bun:"created_at"`
}
