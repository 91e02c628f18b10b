package shift

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"guardpost/backend/foundation/web"
	"guardpost/backend/internal/audit"
	"guardpost/backend/internal/entity"
	"guardpost/backend/internal/pkg/repository/postgresql"
	"guardpost/backend/internal/repository/postgres"
	"guardpost/backend/internal/service/schedule"
)

// assignMaxAttempts bounds the optimistic-concurrency retry loop on Assign.
const assignMaxAttempts = 3

type Repository struct {
	*postgresql.Database
	audit audit.Recorder
}

func NewRepository(database *postgresql.Database, recorder audit.Recorder) *Repository {
	return &Repository{Database: database, audit: recorder}
}

func (r Repository) GetById(ctx context.Context, id int) (entity.Shift, error) {
	var detail entity.Shift

	err := r.NewSelect().Model(&detail).Where("deleted_at IS NULL AND id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Shift{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.Shift{}, web.NewRequestError(errors.Wrap(err, "selecting shift"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
		WHERE
			s.deleted_at IS NULL`

	args := []interface{}{}
	if filter.SiteID != nil {
		whereQuery += " AND s.site_id = ?"
		args = append(args, *filter.SiteID)
	}
	if filter.OfficerID != nil {
		whereQuery += " AND s.officer_id = ?"
		args = append(args, *filter.OfficerID)
	}
	if filter.Status != nil {
		whereQuery += " AND s.status = ?"
		args = append(args, *filter.Status)
	}
	if filter.DateFrom != nil {
		whereQuery += " AND s.start_time >= ?"
		args = append(args, filter.DateFrom.ToTime())
	}
	if filter.DateTo != nil {
		whereQuery += " AND s.start_time < ?"
		args = append(args, filter.DateTo.ToTime().AddDate(0, 0, 1))
	}

	orderQuery := " ORDER BY s.start_time DESC"

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
			s.id,
			s.site_id,
			st.name,
			st.client_id,
			s.officer_id,
			o.full_name,
			s.start_time,
			s.end_time,
			s.status,
			s.pay_rate,
			s.bill_rate,
			s.break_duration
		FROM shifts s
		LEFT JOIN sites st ON s.site_id = st.id
		LEFT JOIN officers o ON s.officer_id = o.id
	` + whereQuery + orderQuery + limitQuery + offsetQuery

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting shifts"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse
	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.SiteID,
			&detail.SiteName,
			&detail.ClientID,
			&detail.OfficerID,
			&detail.OfficerName,
			&detail.StartTime,
			&detail.EndTime,
			&detail.Status,
			&detail.PayRate,
			&detail.BillRate,
			&detail.BreakDuration,
		); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning shift list"), http.StatusInternalServerError)
		}
		list = append(list, detail)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "reading shift rows"), http.StatusInternalServerError)
	}

	countQuery := `
		SELECT count(s.id)
		FROM shifts s
		LEFT JOIN sites st ON s.site_id = st.id
		LEFT JOIN officers o ON s.officer_id = o.id
	` + whereQuery

	count := 0
	if err = r.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting shifts"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "SiteID", "StartTime", "EndTime"); err != nil {
		return CreateResponse{}, err
	}

	if !request.EndTime.After(*request.StartTime) {
		return CreateResponse{}, web.NewRequestError(errors.New("end_time must be after start_time"), http.StatusBadRequest)
	}
	if request.BreakDuration != nil && *request.BreakDuration < 0 {
		return CreateResponse{}, web.NewRequestError(errors.New("break_duration must not be negative"), http.StatusBadRequest)
	}

	status := entity.ShiftDraft
	if request.Publish != nil && *request.Publish {
		status = entity.ShiftPublished
	}

	response := CreateResponse{
		SiteID:        request.SiteID,
		StartTime:     request.StartTime,
		EndTime:       request.EndTime,
		Status:        status,
		PayRate:       request.PayRate,
		BillRate:      request.BillRate,
		BreakDuration: request.BreakDuration,
		Notes:         request.Notes,
		CreatedAt:     time.Now(),
		CreatedBy:     claims.UserId,
	}

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating shift"), http.StatusBadRequest)
	}

	return response, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	if request.StartTime != nil && request.EndTime != nil && !request.EndTime.After(*request.StartTime) {
		return web.NewRequestError(errors.New("end_time must be after start_time"), http.StatusBadRequest)
	}

	q := r.NewUpdate().Table("shifts").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.StartTime != nil {
		q.Set("start_time = ?", request.StartTime)
	}
	if request.EndTime != nil {
		q.Set("end_time = ?", request.EndTime)
	}
	if request.Status != nil {
		q.Set("status = ?", request.Status)
	}
	if request.PayRate != nil {
		q.Set("pay_rate = ?", request.PayRate)
	}
	if request.BillRate != nil {
		q.Set("bill_rate = ?", request.BillRate)
	}
	if request.BreakDuration != nil {
		q.Set("break_duration = ?", request.BreakDuration)
	}
	if request.Notes != nil {
		q.Set("notes = ?", request.Notes)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	if _, err = q.Exec(ctx); err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating shift"), http.StatusBadRequest)
	}

	return nil
}

// Assign sets the shift's officer using a read-check-write cycle with an
// optimistic guard on updated_at. The conflict check is advisory: a detected
// double-booking is returned with the response, never blocks the write.
func (r Repository) Assign(ctx context.Context, request AssignRequest) (AssignResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return AssignResponse{}, err
	}

	if err := r.ValidateStruct(&request, "OfficerID"); err != nil {
		return AssignResponse{}, err
	}
	officerID := *request.OfficerID

	for attempt := 0; attempt < assignMaxAttempts; attempt++ {
		current, err := r.GetById(ctx, request.ShiftID)
		if err != nil {
			return AssignResponse{}, err
		}
		if current.StartTime == nil || current.EndTime == nil {
			return AssignResponse{}, web.NewRequestError(errors.New("shift has no scheduled interval"), http.StatusBadRequest)
		}
		if current.Status != nil && *current.Status == entity.ShiftCompleted {
			return AssignResponse{}, web.NewRequestError(errors.New("completed shifts cannot be reassigned"), http.StatusBadRequest)
		}

		var open []entity.Shift
		err = r.NewSelect().
			Model(&open).
			Where("deleted_at IS NULL AND officer_id = ? AND status != ?", officerID, entity.ShiftCompleted).
			Scan(ctx)
		if err != nil {
			return AssignResponse{}, web.NewRequestError(errors.Wrap(err, "selecting officer shifts"), http.StatusInternalServerError)
		}

		conflict := schedule.FindConflict(*current.StartTime, *current.EndTime, officerID, open, current.ID)

		// The guard fails when another writer touched the row after our
		// read; we then re-read and re-run the conflict check.
		q := r.NewUpdate().
			Table("shifts").
			Where("deleted_at IS NULL AND id = ? AND updated_at IS NOT DISTINCT FROM ?", current.ID, current.UpdatedAt).
			Set("officer_id = ?", officerID).
			Set("status = ?", entity.ShiftAssigned).
			Set("updated_at = ?", time.Now()).
			Set("updated_by = ?", claims.UserId)

		res, err := q.Exec(ctx)
		if err != nil {
			return AssignResponse{}, web.NewRequestError(errors.Wrap(err, "assigning shift"), http.StatusInternalServerError)
		}
		if rows, _ := res.RowsAffected(); rows == 0 {
			continue
		}

		r.audit.Emit(ctx, audit.Record{
			Action:         "shift.assign",
			Description:    fmt.Sprintf("assigned officer %d to shift %d", officerID, current.ID),
			ActorID:        claims.UserId,
			TargetResource: "shifts",
			TargetID:       current.ID,
		})

		return AssignResponse{
			ShiftID:   current.ID,
			OfficerID: officerID,
			Status:    entity.ShiftAssigned,
			Conflict:  conflict,
		}, nil
	}

	return AssignResponse{}, web.NewRequestError(postgres.ErrConcurrentModification, http.StatusConflict)
}

// CompleteElapsed marks assigned shifts whose end time has passed as
// completed. Called by a periodic sweep; the reference time is explicit so
// the sweep is testable.
func (r Repository) CompleteElapsed(ctx context.Context, now time.Time) (int, error) {
	res, err := r.NewUpdate().
		Table("shifts").
		Where("deleted_at IS NULL AND status = ? AND end_time <= ?", entity.ShiftAssigned, now).
		Set("status = ?", entity.ShiftCompleted).
		Set("updated_at = ?", now).
		Exec(ctx)
	if err != nil {
		return 0, web.NewRequestError(errors.Wrap(err, "completing elapsed shifts"), http.StatusInternalServerError)
	}

	rows, _ := res.RowsAffected()
	return int(rows), nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "shifts", id)
}
