package timeentry

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"guardpost/backend/foundation/web"
	"guardpost/backend/internal/entity"
	"guardpost/backend/internal/pkg/repository/postgresql"
	"guardpost/backend/internal/repository/postgres"
	"guardpost/backend/internal/service/rates"
)

type Repository struct {
	*postgresql.Database
	rates *rates.Resolver
}

func NewRepository(database *postgresql.Database, resolver *rates.Resolver) *Repository {
	return &Repository{Database: database, rates: resolver}
}

func (r Repository) GetById(ctx context.Context, id int) (entity.TimeEntry, error) {
	var detail entity.TimeEntry

	err := r.NewSelect().Model(&detail).Where("deleted_at IS NULL AND id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.TimeEntry{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.TimeEntry{}, web.NewRequestError(errors.Wrap(err, "selecting time entry"), http.StatusInternalServerError)
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
			t.deleted_at IS NULL`

	args := []interface{}{}
	if filter.OfficerID != nil {
		whereQuery += " AND t.officer_id = ?"
		args = append(args, *filter.OfficerID)
	}
	if filter.ShiftID != nil {
		whereQuery += " AND t.shift_id = ?"
		args = append(args, *filter.ShiftID)
	}
	if filter.Status != nil {
		whereQuery += " AND t.status = ?"
		args = append(args, *filter.Status)
	}
	if filter.DateFrom != nil {
		whereQuery += " AND t.clock_in >= ?"
		args = append(args, filter.DateFrom.ToTime())
	}
	if filter.DateTo != nil {
		whereQuery += " AND t.clock_in < ?"
		args = append(args, filter.DateTo.ToTime().AddDate(0, 0, 1))
	}

	orderQuery := " ORDER BY t.clock_in DESC"

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
			t.id,
			t.shift_id,
			t.officer_id,
			o.full_name,
			st.name,
			t.clock_in,
			t.clock_out,
			t.total_hours,
			t.status,
			t.pay_rate,
			t.bill_rate
		FROM time_entries t
		LEFT JOIN officers o ON t.officer_id = o.id
		LEFT JOIN shifts s ON t.shift_id = s.id
		LEFT JOIN sites st ON s.site_id = st.id
	` + whereQuery + orderQuery + limitQuery + offsetQuery

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting time entries"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse
	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.ShiftID,
			&detail.OfficerID,
			&detail.OfficerName,
			&detail.SiteName,
			&detail.ClockIn,
			&detail.ClockOut,
			&detail.TotalHours,
			&detail.Status,
			&detail.PayRate,
			&detail.BillRate,
		); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning time entry list"), http.StatusInternalServerError)
		}
		list = append(list, detail)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "reading time entry rows"), http.StatusInternalServerError)
	}

	countQuery := `
		SELECT count(t.id)
		FROM time_entries t
		LEFT JOIN officers o ON t.officer_id = o.id
		LEFT JOIN shifts s ON t.shift_id = s.id
		LEFT JOIN sites st ON s.site_id = st.id
	` + whereQuery

	count := 0
	if err = r.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting time entries"), http.StatusInternalServerError)
	}

	return list, count, nil
}

// ClockIn opens a time entry against an assigned shift, snapshotting the
// effective pay and bill rate so later rate edits never change hours already
// worked.
func (r Repository) ClockIn(ctx context.Context, request ClockInRequest) (ClockInResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return ClockInResponse{}, err
	}

	if err := r.ValidateStruct(&request, "ShiftID"); err != nil {
		return ClockInResponse{}, err
	}

	var shift entity.Shift
	err = r.NewSelect().Model(&shift).Where("deleted_at IS NULL AND id = ?", *request.ShiftID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return ClockInResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return ClockInResponse{}, web.NewRequestError(errors.Wrap(err, "selecting shift"), http.StatusInternalServerError)
	}
	if shift.OfficerID == nil {
		return ClockInResponse{}, web.NewRequestError(errors.New("shift has no assigned officer"), http.StatusBadRequest)
	}

	exists, err := r.NewSelect().
		Model((*entity.TimeEntry)(nil)).
		Where("deleted_at IS NULL AND shift_id = ? AND clock_out IS NULL", shift.ID).
		Exists(ctx)
	if err != nil {
		return ClockInResponse{}, web.NewRequestError(errors.Wrap(err, "checking open entry"), http.StatusInternalServerError)
	}
	if exists {
		return ClockInResponse{}, web.NewRequestError(errors.New("an open time entry already exists for this shift"), http.StatusBadRequest)
	}

	var officer entity.Officer
	err = r.NewSelect().Model(&officer).Where("deleted_at IS NULL AND id = ?", *shift.OfficerID).Scan(ctx)
	if err != nil {
		return ClockInResponse{}, web.NewRequestError(errors.Wrap(err, "selecting officer"), http.StatusInternalServerError)
	}

	var client entity.Client
	err = r.NewSelect().
		Model(&client).
		Where("clients.deleted_at IS NULL AND clients.id = (SELECT client_id FROM sites WHERE id = ?)", shift.SiteID).
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return ClockInResponse{}, web.NewRequestError(errors.Wrap(err, "selecting client"), http.StatusInternalServerError)
	}

	payRate, err := r.rates.PayRate(nil, &shift, &officer)
	if err != nil {
		return ClockInResponse{}, web.NewRequestError(errors.Wrap(err, "resolving pay rate"), http.StatusInternalServerError)
	}
	billRate, err := r.rates.BillRate(nil, &shift, &client)
	if err != nil {
		return ClockInResponse{}, web.NewRequestError(errors.Wrap(err, "resolving bill rate"), http.StatusInternalServerError)
	}

	response := ClockInResponse{
		ShiftID:   &shift.ID,
		OfficerID: shift.OfficerID,
		ClockIn:   time.Now(),
		Status:    entity.EntryPending,
		PayRate:   &payRate,
		BillRate:  &billRate,
		CreatedAt: time.Now(),
		CreatedBy: claims.UserId,
	}

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return ClockInResponse{}, web.NewRequestError(errors.Wrap(err, "creating time entry"), http.StatusBadRequest)
	}

	return response, nil
}

// ClockOut closes an open entry, deriving total hours from the worked
// interval minus the shift's unpaid break, clamped at zero. Closing the entry
// also completes its shift.
func (r Repository) ClockOut(ctx context.Context, request ClockOutRequest) (ClockOutResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return ClockOutResponse{}, err
	}

	entry, err := r.GetById(ctx, request.EntryID)
	if err != nil {
		return ClockOutResponse{}, err
	}
	if entry.ClockOut != nil {
		return ClockOutResponse{}, web.NewRequestError(errors.New("time entry is already closed"), http.StatusBadRequest)
	}
	if entry.ClockIn == nil {
		return ClockOutResponse{}, web.NewRequestError(errors.New("time entry has no clock-in"), http.StatusBadRequest)
	}

	breakMinutes := 0
	if entry.ShiftID != nil {
		var shift entity.Shift
		if err := r.NewSelect().Model(&shift).Where("id = ?", *entry.ShiftID).Scan(ctx); err == nil && shift.BreakDuration != nil {
			breakMinutes = *shift.BreakDuration
		}
	}

	now := time.Now()
	total := now.Sub(*entry.ClockIn).Hours() - float64(breakMinutes)/60
	if total < 0 {
		total = 0
	}

	q := r.NewUpdate().
		Table("time_entries").
		Where("deleted_at IS NULL AND id = ? AND clock_out IS NULL", entry.ID).
		Set("clock_out = ?", now).
		Set("total_hours = ?", total).
		Set("updated_at = ?", now).
		Set("updated_by = ?", claims.UserId)

	res, err := q.Exec(ctx)
	if err != nil {
		return ClockOutResponse{}, web.NewRequestError(errors.Wrap(err, "closing time entry"), http.StatusBadRequest)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ClockOutResponse{}, web.NewRequestError(postgres.ErrConcurrentModification, http.StatusConflict)
	}

	if entry.ShiftID != nil {
		_, err = r.NewUpdate().
			Table("shifts").
			Where("deleted_at IS NULL AND id = ?", *entry.ShiftID).
			Set("status = ?", entity.ShiftCompleted).
			Set("updated_at = ?", now).
			Set("updated_by = ?", claims.UserId).
			Exec(ctx)
		if err != nil {
			return ClockOutResponse{}, web.NewRequestError(errors.Wrap(err, "completing shift"), http.StatusInternalServerError)
		}
	}

	return ClockOutResponse{EntryID: entry.ID, ClockOut: now, TotalHours: total}, nil
}

// Review moves a pending entry to approved or rejected.
func (r Repository) Review(ctx context.Context, request ReviewRequest) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	if request.Status != entity.EntryApproved && request.Status != entity.EntryRejected {
		return web.NewRequestError(errors.Errorf("invalid review status %q", request.Status), http.StatusBadRequest)
	}

	res, err := r.NewUpdate().
		Table("time_entries").
		Where("deleted_at IS NULL AND id = ? AND status = ?", request.ID, entity.EntryPending).
		Set("status = ?", request.Status).
		Set("updated_at = ?", time.Now()).
		Set("updated_by = ?", claims.UserId).
		Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "reviewing time entry"), http.StatusBadRequest)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return web.NewRequestError(errors.New("time entry not found or not pending"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "time_entries", id)
}
