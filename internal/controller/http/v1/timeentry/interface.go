package timeentry

import (
	"context"

	"guardpost/backend/internal/repository/postgres/timeentry"
)

type TimeEntry interface {
	GetList(ctx context.Context, filter timeentry.Filter) ([]timeentry.GetListResponse, int, error)
	ClockIn(ctx context.Context, request timeentry.ClockInRequest) (timeentry.ClockInResponse, error)
	ClockOut(ctx context.Context, request timeentry.ClockOutRequest) (timeentry.ClockOutResponse, error)
	Review(ctx context.Context, request timeentry.ReviewRequest) error
	Delete(ctx context.Context, id int) error
}
