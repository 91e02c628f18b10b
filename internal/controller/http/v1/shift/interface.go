package shift

import (
	"context"
	"time"

	"guardpost/backend/internal/repository/postgres/shift"
)

type Shift interface {
	GetList(ctx context.Context, filter shift.Filter) ([]shift.GetListResponse, int, error)
	Create(ctx context.Context, request shift.CreateRequest) (shift.CreateResponse, error)
	UpdateColumns(ctx context.Context, request shift.UpdateRequest) error
	Assign(ctx context.Context, request shift.AssignRequest) (shift.AssignResponse, error)
	CompleteElapsed(ctx context.Context, now time.Time) (int, error)
	Delete(ctx context.Context, id int) error
}
