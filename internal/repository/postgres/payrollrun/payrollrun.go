package payrollrun

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"guardpost/backend/foundation/web"
	"guardpost/backend/internal/audit"
	"guardpost/backend/internal/entity"
	"guardpost/backend/internal/pkg/repository/postgresql"
	"guardpost/backend/internal/repository/postgres"
	"guardpost/backend/internal/service/payroll"
)

type Repository struct {
	*postgresql.Database
	aggregator *payroll.Aggregator
	audit      audit.Recorder
}

func NewRepository(database *postgresql.Database, aggregator *payroll.Aggregator, recorder audit.Recorder) *Repository {
	return &Repository{Database: database, aggregator: aggregator, audit: recorder}
}

// snapshot loads everything one aggregation needs: approved entries in the
// period plus officer and shift lookups for the entries' references.
func (r Repository) snapshot(ctx context.Context, periodStart, periodEnd time.Time) ([]entity.TimeEntry, map[int]entity.Officer, map[int]entity.Shift, error) {
	var entries []entity.TimeEntry
	err := r.NewSelect().
		Model(&entries).
		Where("deleted_at IS NULL AND status = ? AND clock_in >= ? AND clock_in <= ?",
			entity.EntryApproved, periodStart, payroll.PeriodEnd(periodEnd)).
		Scan(ctx)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "selecting approved entries")
	}

	var officerRows []entity.Officer
	if err = r.NewSelect().Model(&officerRows).Where("deleted_at IS NULL").Scan(ctx); err != nil {
		return nil, nil, nil, errors.Wrap(err, "selecting officers")
	}
	officers := make(map[int]entity.Officer, len(officerRows))
	for _, o := range officerRows {
		officers[o.ID] = o
	}

	var shiftRows []entity.Shift
	if err = r.NewSelect().Model(&shiftRows).Where("deleted_at IS NULL").Scan(ctx); err != nil {
		return nil, nil, nil, errors.Wrap(err, "selecting shifts")
	}
	shifts := make(map[int]entity.Shift, len(shiftRows))
	for _, s := range shiftRows {
		shifts[s.ID] = s
	}

	return entries, officers, shifts, nil
}

// Preview aggregates the period without persisting anything. Calling it any
// number of times has no effect on stored state.
func (r Repository) Preview(ctx context.Context, request PreviewRequest) (PreviewResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return PreviewResponse{}, err
	}

	periodStart := request.PeriodStart.ToTime()
	periodEnd := request.PeriodEnd.ToTime()
	if periodEnd.Before(periodStart) {
		return PreviewResponse{}, web.NewRequestError(errors.New("period_end before period_start"), http.StatusBadRequest)
	}

	entries, officers, shifts, err := r.snapshot(ctx, periodStart, periodEnd)
	if err != nil {
		return PreviewResponse{}, web.NewRequestError(err, http.StatusInternalServerError)
	}

	candidates, warnings, err := r.aggregator.Aggregate(periodStart, periodEnd, entries, officers, shifts)
	if err != nil {
		return PreviewResponse{}, web.NewRequestError(err, http.StatusInternalServerError)
	}

	total, _ := payroll.Totals(candidates)

	return PreviewResponse{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Candidates:  candidates,
		Warnings:    warnings,
		TotalAmount: total,
	}, nil
}

// Confirm recomputes the period and persists it as an immutable run inside
// one transaction. The duplicate check runs inside the same transaction so
// two concurrent confirmations cannot both commit a run for the period.
func (r Repository) Confirm(ctx context.Context, request PreviewRequest) (ConfirmResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return ConfirmResponse{}, err
	}

	preview, err := r.Preview(ctx, request)
	if err != nil {
		return ConfirmResponse{}, err
	}
	if len(preview.Candidates) == 0 {
		return ConfirmResponse{}, web.NewRequestError(errors.New("no payable entries in period"), http.StatusBadRequest)
	}

	total, count := payroll.Totals(preview.Candidates)
	now := time.Now()
	status := entity.PayrollDraft

	var runID int

	err = r.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*entity.PayrollRun)(nil)).
			Where("deleted_at IS NULL AND period_start = ? AND period_end = ?", preview.PeriodStart, preview.PeriodEnd).
			Exists(ctx)
		if err != nil {
			return errors.Wrap(err, "checking existing run")
		}
		if exists {
			return postgres.ErrDuplicateRun
		}

		run := entity.PayrollRun{
			PeriodStart:  &preview.PeriodStart,
			PeriodEnd:    &preview.PeriodEnd,
			TotalAmount:  &total,
			OfficerCount: &count,
			Status:       &status,
			ProcessedAt:  &now,
		}
		run.CreatedAt = &now
		run.CreatedBy = &claims.UserId

		if _, err = tx.NewInsert().Model(&run).Returning("id").Exec(ctx, &run.ID); err != nil {
			return errors.Wrap(err, "inserting payroll run")
		}
		runID = run.ID

		var entryIDs []int
		for i := range preview.Candidates {
			c := preview.Candidates[i]
			item := entity.PayrollItem{
				PayrollRunID:    &runID,
				OfficerID:       &c.OfficerID,
				RegularHours:    &c.RegularHours,
				OvertimeHours:   &c.OvertimeHours,
				GrossPay:        &c.GrossPay,
				DeductionsTotal: &c.DeductionsTotal,
				NetPay:          &c.NetPay,
			}
			item.CreatedAt = &now
			item.CreatedBy = &claims.UserId

			if _, err = tx.NewInsert().Model(&item).Exec(ctx); err != nil {
				return errors.Wrap(err, "inserting payroll item")
			}
			for _, e := range c.Entries {
				entryIDs = append(entryIDs, e.ID)
			}
		}

		// Stamp the contributing entries; an entry grabbed by a concurrent
		// run fails the guard and rolls the whole confirmation back.
		res, err := tx.NewUpdate().
			Table("time_entries").
			Where("deleted_at IS NULL AND id IN (?) AND payroll_run_id IS NULL", bun.In(entryIDs)).
			Set("payroll_run_id = ?", runID).
			Set("updated_at = ?", now).
			Set("updated_by = ?", claims.UserId).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "stamping entries")
		}
		if rows, _ := res.RowsAffected(); int(rows) != len(entryIDs) {
			return postgres.ErrDuplicateRun
		}

		return nil
	})
	if errors.Is(err, postgres.ErrDuplicateRun) {
		return ConfirmResponse{}, web.NewRequestError(postgres.ErrDuplicateRun, http.StatusConflict)
	}
	if err != nil {
		return ConfirmResponse{}, web.NewRequestError(errors.Wrap(err, "confirming payroll run"), http.StatusInternalServerError)
	}

	r.audit.Emit(ctx, audit.Record{
		Action:         "payroll.confirm",
		Description:    fmt.Sprintf("confirmed payroll run %d for %d officers", runID, count),
		ActorID:        claims.UserId,
		TargetResource: "payroll_runs",
		TargetID:       runID,
	})

	return ConfirmResponse{RunID: runID, TotalAmount: total, OfficerCount: count}, nil
}

// MarkPaid moves a draft run to paid. Runs are otherwise immutable.
func (r Repository) MarkPaid(ctx context.Context, id int) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	res, err := r.NewUpdate().
		Table("payroll_runs").
		Where("deleted_at IS NULL AND id = ? AND status = ?", id, entity.PayrollDraft).
		Set("status = ?", entity.PayrollPaid).
		Set("updated_at = ?", time.Now()).
		Set("updated_by = ?", claims.UserId).
		Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "marking run paid"), http.StatusBadRequest)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return web.NewRequestError(errors.New("run not found or not draft"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	q := r.NewSelect().
		Model((*entity.PayrollRun)(nil)).
		Column("id", "period_start", "period_end", "total_amount", "officer_count", "status", "processed_at").
		Where("deleted_at IS NULL").
		Order("period_start DESC")

	if filter.Status != nil {
		q.Where("status = ?", *filter.Status)
	}
	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}
	if filter.Limit != nil {
		q.Limit(*filter.Limit)
	}
	if filter.Offset != nil {
		q.Offset(*filter.Offset)
	}

	var list []GetListResponse
	count, err := q.ScanAndCount(ctx, &list)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting payroll runs"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailResponse{}, err
	}

	var run GetListResponse
	err = r.NewSelect().
		Model((*entity.PayrollRun)(nil)).
		Column("id", "period_start", "period_end", "total_amount", "officer_count", "status", "processed_at").
		Where("deleted_at IS NULL AND id = ?", id).
		Scan(ctx, &run)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailResponse{}, web.NewRequestError(errors.Wrap(err, "selecting payroll run"), http.StatusInternalServerError)
	}

	query := `
		SELECT
			p.id,
			p.officer_id,
			o.employee_id,
			o.full_name,
			p.regular_hours,
			p.overtime_hours,
			p.gross_pay,
			p.deductions_total,
			p.net_pay
		FROM payroll_items p
		LEFT JOIN officers o ON p.officer_id = o.id
		WHERE p.deleted_at IS NULL AND p.payroll_run_id = ?
		ORDER BY o.full_name`

	rows, err := r.QueryContext(ctx, query, id)
	if err != nil {
		return GetDetailResponse{}, web.NewRequestError(errors.Wrap(err, "selecting payroll items"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var items []ItemResponse
	for rows.Next() {
		var item ItemResponse
		if err = rows.Scan(
			&item.ID,
			&item.OfficerID,
			&item.EmployeeID,
			&item.OfficerName,
			&item.RegularHours,
			&item.OvertimeHours,
			&item.GrossPay,
			&item.DeductionsTotal,
			&item.NetPay,
		); err != nil {
			return GetDetailResponse{}, web.NewRequestError(errors.Wrap(err, "scanning payroll item"), http.StatusInternalServerError)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return GetDetailResponse{}, web.NewRequestError(errors.Wrap(err, "reading payroll items"), http.StatusInternalServerError)
	}

	return GetDetailResponse{Run: run, Items: items}, nil
}
