package client

import (
	"context"

	"guardpost/backend/internal/repository/postgres/client"
)

type Client interface {
	GetList(ctx context.Context, filter client.Filter) ([]client.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (client.GetDetailByIdResponse, error)
	Create(ctx context.Context, request client.CreateRequest) (client.CreateResponse, error)
	UpdateColumns(ctx context.Context, request client.UpdateRequest) error
	Delete(ctx context.Context, id int) error
}
