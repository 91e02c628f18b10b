package invoice

import (
	"context"

	"guardpost/backend/internal/repository/postgres/invoice"
)

type Invoice interface {
	Preview(ctx context.Context, clientID int) (invoice.PreviewResponse, error)
	Confirm(ctx context.Context, request invoice.ConfirmRequest) (invoice.ConfirmResponse, error)
	GetList(ctx context.Context, filter invoice.Filter) ([]invoice.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (invoice.GetDetailResponse, error)
	UpdateStatus(ctx context.Context, request invoice.UpdateStatusRequest) error
}
