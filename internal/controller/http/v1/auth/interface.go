package auth

import (
	"context"

	"guardpost/backend/internal/entity"
)

type Officer interface {
	GetByEmployeeID(ctx context.Context, employeeID string) (entity.Officer, error)
}
