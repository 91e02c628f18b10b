package officer

import (
	"context"

	"guardpost/backend/internal/repository/postgres/officer"
)

type Officer interface {
	GetList(ctx context.Context, filter officer.Filter) ([]officer.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (officer.GetDetailByIdResponse, error)
	Create(ctx context.Context, request officer.CreateRequest) (officer.CreateResponse, error)
	UpdateColumns(ctx context.Context, request officer.UpdateRequest) error
	Delete(ctx context.Context, id int) error
}
