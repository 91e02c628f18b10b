package client

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"guardpost/backend/foundation/web"
	"guardpost/backend/internal/entity"
	"guardpost/backend/internal/pkg/repository/postgresql"
	"guardpost/backend/internal/repository/postgres"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func validateBilling(settings *entity.BillingSettings) error {
	if settings == nil {
		return nil
	}
	for name, rate := range map[string]*float64{
		"standard_rate":  settings.StandardRate,
		"holiday_rate":   settings.HolidayRate,
		"emergency_rate": settings.EmergencyRate,
	} {
		if rate != nil && *rate <= 0 {
			return web.NewRequestError(fmt.Errorf("%s must be greater than zero", name), http.StatusBadRequest)
		}
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
			c.deleted_at IS NULL`

	args := []interface{}{}
	if filter.Search != nil {
		search := "%" + strings.TrimSpace(*filter.Search) + "%"
		whereQuery += " AND (c.name ILIKE ? OR c.contact_name ILIKE ?)"
		args = append(args, search, search)
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
			c.id,
			c.name,
			c.contact_name,
			c.contact_email,
			c.phone,
			(SELECT count(s.id) FROM sites s WHERE s.client_id = c.id AND s.deleted_at IS NULL)
		FROM clients c
	` + whereQuery + " ORDER BY c.created_at DESC" + limitQuery + offsetQuery

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting clients"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse
	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.Name,
			&detail.ContactName,
			&detail.ContactEmail,
			&detail.Phone,
			&detail.SiteCount,
		); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning client list"), http.StatusInternalServerError)
		}
		list = append(list, detail)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "reading client rows"), http.StatusInternalServerError)
	}

	countQuery := `
		SELECT count(c.id)
		FROM clients c
	` + whereQuery

	count := 0
	if err = r.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting clients"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	var client entity.Client
	err = r.NewSelect().Model(&client).Where("deleted_at IS NULL AND id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting client detail"), http.StatusInternalServerError)
	}

	return GetDetailByIdResponse{
		ID:              client.ID,
		Name:            client.Name,
		ContactName:     client.ContactName,
		ContactEmail:    client.ContactEmail,
		Phone:           client.Phone,
		BillingSettings: client.BillingSettings,
	}, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Name"); err != nil {
		return CreateResponse{}, err
	}
	if err := validateBilling(request.BillingSettings); err != nil {
		return CreateResponse{}, err
	}

	response := CreateResponse{
		Name:            request.Name,
		ContactName:     request.ContactName,
		ContactEmail:    request.ContactEmail,
		Phone:           request.Phone,
		BillingSettings: request.BillingSettings,
		CreatedAt:       time.Now(),
		CreatedBy:       claims.UserId,
	}

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating client"), http.StatusBadRequest)
	}

	return response, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}
	if err := validateBilling(request.BillingSettings); err != nil {
		return err
	}

	q := r.NewUpdate().Table("clients").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.Name != nil {
		q.Set("name = ?", request.Name)
	}
	if request.ContactName != nil {
		q.Set("contact_name = ?", request.ContactName)
	}
	if request.ContactEmail != nil {
		q.Set("contact_email = ?", request.ContactEmail)
	}
	if request.Phone != nil {
		q.Set("phone = ?", request.Phone)
	}
	if request.BillingSettings != nil {
		raw, err := json.Marshal(request.BillingSettings)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "encoding billing settings"), http.StatusBadRequest)
		}
		q.Set("billing_settings = ?", string(raw))
	}

	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	res, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating client"), http.StatusBadRequest)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "clients", id)
}
