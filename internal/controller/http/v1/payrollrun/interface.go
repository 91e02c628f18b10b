package payrollrun

import (
	"context"

	"guardpost/backend/internal/repository/postgres/payrollrun"
)

type PayrollRun interface {
	Preview(ctx context.Context, request payrollrun.PreviewRequest) (payrollrun.PreviewResponse, error)
	Confirm(ctx context.Context, request payrollrun.PreviewRequest) (payrollrun.ConfirmResponse, error)
	MarkPaid(ctx context.Context, id int) error
	GetList(ctx context.Context, filter payrollrun.Filter) ([]payrollrun.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (payrollrun.GetDetailResponse, error)
}
