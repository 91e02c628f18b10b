package geofence

import (
	"context"

	"guardpost/backend/internal/repository/postgres/geofenceevent"
)

type GeofenceEvent interface {
	Ping(ctx context.Context, request geofenceevent.PingRequest) (geofenceevent.PingResponse, error)
	Acknowledge(ctx context.Context, id int) error
	GetList(ctx context.Context, filter geofenceevent.Filter) ([]geofenceevent.GetListResponse, int, error)
}
