package invoice

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
	"guardpost/backend/internal/service/billing"
)

type Repository struct {
	*postgresql.Database
	grouper *billing.Grouper
	audit   audit.Recorder
}

func NewRepository(database *postgresql.Database, grouper *billing.Grouper, recorder audit.Recorder) *Repository {
	return &Repository{Database: database, grouper: grouper, audit: recorder}
}

// unbilled loads a client's approved, not-yet-invoiced closed entries plus
// the shift lookup for rate resolution.
func (r Repository) unbilled(ctx context.Context, clientID int) ([]entity.TimeEntry, map[int]entity.Shift, *entity.Client, error) {
	var client entity.Client
	err := r.NewSelect().Model(&client).Where("deleted_at IS NULL AND id = ?", clientID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, nil, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "selecting client")
	}

	var entries []entity.TimeEntry
	err = r.NewSelect().
		Model(&entries).
		Where(`time_entry.deleted_at IS NULL
			AND time_entry.status = ?
			AND time_entry.invoice_id IS NULL
			AND time_entry.clock_out IS NOT NULL
			AND time_entry.shift_id IN (
				SELECT s.id FROM shifts s
				JOIN sites st ON s.site_id = st.id
				WHERE st.client_id = ?)`, entity.EntryApproved, clientID).
		Scan(ctx)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "selecting unbilled entries")
	}

	var shiftRows []entity.Shift
	if err = r.NewSelect().Model(&shiftRows).Where("deleted_at IS NULL").Scan(ctx); err != nil {
		return nil, nil, nil, errors.Wrap(err, "selecting shifts")
	}
	shifts := make(map[int]entity.Shift, len(shiftRows))
	for _, s := range shiftRows {
		shifts[s.ID] = s
	}

	return entries, shifts, &client, nil
}

// Preview groups the client's unbilled hours into line items without writing
// anything: the caller always reviews before confirming.
func (r Repository) Preview(ctx context.Context, clientID int) (billing.Preview, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return billing.Preview{}, err
	}

	entries, shifts, client, err := r.unbilled(ctx, clientID)
	if err != nil {
		if web.GetError(err) != nil {
			return billing.Preview{}, err
		}
		return billing.Preview{}, web.NewRequestError(err, http.StatusInternalServerError)
	}

	preview, err := r.grouper.GroupForClient(clientID, entries, shifts, client)
	if err != nil {
		return billing.Preview{}, web.NewRequestError(err, http.StatusInternalServerError)
	}

	return preview, nil
}

// Confirm commits the current preview: invoice, line items, and the billed
// stamp on every source entry, in one transaction. The stamp is guarded on
// invoice_id IS NULL so two concurrent confirmations can never bill the same
// hours twice.
func (r Repository) Confirm(ctx context.Context, request ConfirmRequest) (ConfirmResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return ConfirmResponse{}, err
	}

	preview, err := r.Preview(ctx, request.ClientID)
	if err != nil {
		return ConfirmResponse{}, err
	}
	if len(preview.Lines) == 0 {
		return ConfirmResponse{}, web.NewRequestError(errors.New("no unbilled hours for client"), http.StatusBadRequest)
	}

	now := time.Now()
	dueDays := 30
	if request.DueInDays != nil && *request.DueInDays > 0 {
		dueDays = *request.DueInDays
	}
	dueDate := now.AddDate(0, 0, dueDays)
	number := fmt.Sprintf("GP-%s-%d", now.Format("200601"), now.UnixNano()%100000)
	status := entity.InvoiceSent

	var invoiceID int

	err = r.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		inv := entity.Invoice{
			ClientID:      &request.ClientID,
			InvoiceNumber: &number,
			IssueDate:     &now,
			DueDate:       &dueDate,
			Amount:        &preview.Total,
			Status:        &status,
		}
		inv.CreatedAt = &now
		inv.CreatedBy = &claims.UserId

		if _, err := tx.NewInsert().Model(&inv).Returning("id").Exec(ctx, &inv.ID); err != nil {
			return errors.Wrap(err, "inserting invoice")
		}
		invoiceID = inv.ID

		for i := range preview.Lines {
			line := preview.Lines[i]
			item := entity.InvoiceItem{
				InvoiceID:   &invoiceID,
				Description: &line.Description,
				Quantity:    &line.Quantity,
				Rate:        &line.Rate,
				Amount:      &line.Amount,
			}
			item.CreatedAt = &now
			item.CreatedBy = &claims.UserId

			if _, err := tx.NewInsert().Model(&item).Exec(ctx); err != nil {
				return errors.Wrap(err, "inserting invoice item")
			}
		}

		res, err := tx.NewUpdate().
			Table("time_entries").
			Where("deleted_at IS NULL AND id IN (?) AND invoice_id IS NULL", bun.In(preview.EntryIDs)).
			Set("invoice_id = ?", invoiceID).
			Set("updated_at = ?", now).
			Set("updated_by = ?", claims.UserId).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "stamping billed entries")
		}
		if rows, _ := res.RowsAffected(); int(rows) != len(preview.EntryIDs) {
			return postgres.ErrAlreadyBilled
		}

		return nil
	})
	if errors.Is(err, postgres.ErrAlreadyBilled) {
		return ConfirmResponse{}, web.NewRequestError(postgres.ErrAlreadyBilled, http.StatusConflict)
	}
	if err != nil {
		return ConfirmResponse{}, web.NewRequestError(errors.Wrap(err, "confirming invoice"), http.StatusInternalServerError)
	}

	r.audit.Emit(ctx, audit.Record{
		Action:         "invoice.send",
		Description:    fmt.Sprintf("sent invoice %s to client %d", number, request.ClientID),
		ActorID:        claims.UserId,
		TargetResource: "invoices",
		TargetID:       invoiceID,
	})

	return ConfirmResponse{InvoiceID: invoiceID, InvoiceNumber: number, Amount: preview.Total}, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
		WHERE
			i.deleted_at IS NULL`

	args := []interface{}{}
	if filter.ClientID != nil {
		whereQuery += " AND i.client_id = ?"
		args = append(args, *filter.ClientID)
	}
	if filter.Status != nil {
		whereQuery += " AND i.status = ?"
		args = append(args, *filter.Status)
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
			i.id,
			i.client_id,
			c.name,
			i.invoice_number,
			i.issue_date,
			i.due_date,
			i.amount,
			i.status
		FROM invoices i
		LEFT JOIN clients c ON i.client_id = c.id
	` + whereQuery + " ORDER BY i.issue_date DESC" + limitQuery + offsetQuery

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting invoices"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse
	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.ClientID,
			&detail.ClientName,
			&detail.InvoiceNumber,
			&detail.IssueDate,
			&detail.DueDate,
			&detail.Amount,
			&detail.Status,
		); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning invoice list"), http.StatusInternalServerError)
		}
		list = append(list, detail)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "reading invoice rows"), http.StatusInternalServerError)
	}

	countQuery := `
		SELECT count(i.id)
		FROM invoices i
	` + whereQuery

	count := 0
	if err = r.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting invoices"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailResponse{}, err
	}

	var detail GetListResponse
	query := `
		SELECT
			i.id,
			i.client_id,
			c.name,
			i.invoice_number,
			i.issue_date,
			i.due_date,
			i.amount,
			i.status
		FROM invoices i
		LEFT JOIN clients c ON i.client_id = c.id
		WHERE i.deleted_at IS NULL AND i.id = ?`

	err = r.QueryRowContext(ctx, query, id).Scan(
		&detail.ID,
		&detail.ClientID,
		&detail.ClientName,
		&detail.InvoiceNumber,
		&detail.IssueDate,
		&detail.DueDate,
		&detail.Amount,
		&detail.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailResponse{}, web.NewRequestError(errors.Wrap(err, "selecting invoice"), http.StatusInternalServerError)
	}

	var items []ItemResponse
	err = r.NewSelect().
		Model((*entity.InvoiceItem)(nil)).
		Column("id", "description", "quantity", "rate", "amount").
		Where("deleted_at IS NULL AND invoice_id = ?", id).
		Order("rate ASC").
		Scan(ctx, &items)
	if err != nil {
		return GetDetailResponse{}, web.NewRequestError(errors.Wrap(err, "selecting invoice items"), http.StatusInternalServerError)
	}

	return GetDetailResponse{Invoice: detail, Items: items}, nil
}

// UpdateStatus moves an invoice between sent, paid and overdue.
func (r Repository) UpdateStatus(ctx context.Context, request UpdateStatusRequest) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	switch request.Status {
	case entity.InvoiceSent, entity.InvoicePaid, entity.InvoiceOverdue:
	default:
		return web.NewRequestError(errors.Errorf("invalid invoice status %q", request.Status), http.StatusBadRequest)
	}

	res, err := r.NewUpdate().
		Table("invoices").
		Where("deleted_at IS NULL AND id = ?", request.ID).
		Set("status = ?", request.Status).
		Set("updated_at = ?", time.Now()).
		Set("updated_by = ?", claims.UserId).
		Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating invoice status"), http.StatusBadRequest)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}
