package geofenceevent

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"guardpost/backend/foundation/web"
	"guardpost/backend/internal/entity"
	"guardpost/backend/internal/pkg/repository/postgresql"
	"guardpost/backend/internal/repository/postgres"
	"guardpost/backend/internal/service/geofence"
)

// stateTTL bounds how long a cached inside/outside state survives without a
// fresh ping before we fall back to the event log.
const stateTTL = 24 * time.Hour

type Repository struct {
	*postgresql.Database
	redis *redis.Client
}

func NewRepository(database *postgresql.Database, redisDB *redis.Client) *Repository {
	return &Repository{Database: database, redis: redisDB}
}

func stateKey(officerID, siteID int) string {
	return fmt.Sprintf("geofence:state:%d:%d", officerID, siteID)
}

// lastState resolves the officer's previous inside/outside state for a site:
// redis first, then the latest stored event. A missing history means the
// officer starts outside.
func (r Repository) lastState(ctx context.Context, officerID, siteID int) (bool, error) {
	val, err := r.redis.Get(ctx, stateKey(officerID, siteID)).Result()
	if err == nil {
		return val == "inside", nil
	}
	if !errors.Is(err, redis.Nil) {
		return false, errors.Wrap(err, "reading geofence state")
	}

	var last entity.GeofenceEvent
	err = r.NewSelect().
		Model(&last).
		Where("officer_id = ? AND site_id = ?", officerID, siteID).
		Order("occurred_at DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "selecting last geofence event")
	}

	return last.EventType != nil && *last.EventType == entity.GeofenceEnter, nil
}

func (r Repository) saveState(ctx context.Context, officerID, siteID int, inside bool) {
	state := "outside"
	if inside {
		state = "inside"
	}
	// Last-write-wins is fine: pings for one officer+site come from a single
	// device stream and events are monotonic in time.
	r.redis.Set(ctx, stateKey(officerID, siteID), state, stateTTL)
}

// Ping evaluates one GPS fix against a site's geofence. An event row is
// appended only when the boundary was crossed; steady-state pings only
// refresh the cached state.
func (r Repository) Ping(ctx context.Context, request PingRequest) (PingResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return PingResponse{}, err
	}

	if err := r.ValidateStruct(&request, "SiteID", "Latitude", "Longitude"); err != nil {
		return PingResponse{}, err
	}

	var site entity.Site
	err = r.NewSelect().Model(&site).Where("deleted_at IS NULL AND id = ?", *request.SiteID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return PingResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return PingResponse{}, web.NewRequestError(errors.Wrap(err, "selecting site"), http.StatusInternalServerError)
	}
	if site.Latitude == nil || site.Longitude == nil || site.Radius == nil {
		return PingResponse{}, web.NewRequestError(errors.New("site has no geofence configured"), http.StatusBadRequest)
	}

	officerID := claims.UserId
	loc := geofence.Location{Latitude: *request.Latitude, Longitude: *request.Longitude}

	wasInside, err := r.lastState(ctx, officerID, site.ID)
	if err != nil {
		return PingResponse{}, web.NewRequestError(err, http.StatusInternalServerError)
	}

	now := time.Now()
	response := PingResponse{
		Inside:         geofence.IsInside(loc, site),
		Approaching:    geofence.ApproachingBoundary(loc, site),
		DistanceMeters: geofence.DistanceMeters(loc.Latitude, loc.Longitude, *site.Latitude, *site.Longitude),
	}

	event := geofence.CheckTransition(officerID, loc, site, wasInside, now)
	if event != nil {
		event.CreatedAt = &now
		event.CreatedBy = &claims.UserId

		if _, err = r.NewInsert().Model(event).Returning("id").Exec(ctx, &event.ID); err != nil {
			return PingResponse{}, web.NewRequestError(errors.Wrap(err, "creating geofence event"), http.StatusInternalServerError)
		}

		response.Event = &EventResponse{
			ID:                 event.ID,
			OfficerID:          officerID,
			SiteID:             site.ID,
			EventType:          *event.EventType,
			DistanceFromCenter: *event.DistanceFromCenter,
			OccurredAt:         now,
		}
	}

	r.saveState(ctx, officerID, site.ID, response.Inside)

	return response, nil
}

// Acknowledge marks an event as seen by a dispatcher. Events are otherwise
// append-only.
func (r Repository) Acknowledge(ctx context.Context, id int) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	res, err := r.NewUpdate().
		Table("geofence_events").
		Where("deleted_at IS NULL AND id = ?", id).
		Set("acknowledged = true").
		Set("updated_at = ?", time.Now()).
		Set("updated_by = ?", claims.UserId).
		Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "acknowledging geofence event"), http.StatusBadRequest)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
		WHERE
			g.deleted_at IS NULL`

	args := []interface{}{}
	if filter.OfficerID != nil {
		whereQuery += " AND g.officer_id = ?"
		args = append(args, *filter.OfficerID)
	}
	if filter.SiteID != nil {
		whereQuery += " AND g.site_id = ?"
		args = append(args, *filter.SiteID)
	}
	if filter.Acknowledged != nil {
		whereQuery += " AND g.acknowledged = ?"
		args = append(args, *filter.Acknowledged)
	}

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}

	var limitQuery, offsetQuery string
	if filter.Limit != nil {
		limitQuery = fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}
	if filter.Offset != nil {
		offsetQuery = fmt.Sprintf(" OFFSET %d", *filter.Offset)
	}

	query := `
		SELECT
			g.id,
			g.officer_id,
			o.full_name,
			g.site_id,
			st.name,
			g.event_type,
			g.distance_from_center,
			g.occurred_at,
			g.acknowledged
		FROM geofence_events g
		LEFT JOIN officers o ON g.officer_id = o.id
		LEFT JOIN sites st ON g.site_id = st.id
	` + whereQuery + " ORDER BY g.occurred_at DESC" + limitQuery + offsetQuery

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting geofence events"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse
	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.OfficerID,
			&detail.OfficerName,
			&detail.SiteID,
			&detail.SiteName,
			&detail.EventType,
			&detail.DistanceFromCenter,
			&detail.OccurredAt,
			&detail.Acknowledged,
		); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning geofence event list"), http.StatusInternalServerError)
		}
		list = append(list, detail)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "reading geofence event rows"), http.StatusInternalServerError)
	}

	countQuery := `
		SELECT count(g.id)
		FROM geofence_events g
	` + whereQuery

	count := 0
	if err = r.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting geofence events"), http.StatusInternalServerError)
	}

	return list, count, nil
}
