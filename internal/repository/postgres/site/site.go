package site

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"

	"guardpost/backend/foundation/web"
	"guardpost/backend/internal/entity"
	"guardpost/backend/internal/pkg/repository/postgresql"
	"guardpost/backend/internal/repository/postgres"
)

type Repository struct {
	*postgresql.Database
	baseURL string
}

func NewRepository(database *postgresql.Database, baseURL string) *Repository {
	return &Repository{Database: database, baseURL: strings.TrimRight(baseURL, "/")}
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
	if filter.Search != nil {
		search := "%" + strings.TrimSpace(*filter.Search) + "%"
		whereQuery += " AND (s.name ILIKE ? OR s.address ILIKE ?)"
		args = append(args, search, search)
	}
	if filter.ClientID != nil {
		whereQuery += " AND s.client_id = ?"
		args = append(args, *filter.ClientID)
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
			s.id,
			s.client_id,
			c.name,
			s.name,
			s.address,
			s.latitude,
			s.longitude,
			s.radius
		FROM sites s
		LEFT JOIN clients c ON s.client_id = c.id
	` + whereQuery + " ORDER BY s.created_at DESC" + limitQuery + offsetQuery

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting sites"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse
	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.ClientID,
			&detail.ClientName,
			&detail.Name,
			&detail.Address,
			&detail.Latitude,
			&detail.Longitude,
			&detail.Radius,
		); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning site list"), http.StatusInternalServerError)
		}
		list = append(list, detail)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "reading site rows"), http.StatusInternalServerError)
	}

	countQuery := `
		SELECT count(s.id)
		FROM sites s
	` + whereQuery

	count := 0
	if err = r.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting sites"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	query := `
		SELECT
			s.id,
			s.client_id,
			c.name,
			s.name,
			s.address,
			s.latitude,
			s.longitude,
			s.radius
		FROM sites s
		LEFT JOIN clients c ON s.client_id = c.id
		WHERE s.deleted_at IS NULL AND s.id = ?
	`

	var detail GetDetailByIdResponse
	err = r.QueryRowContext(ctx, query, id).Scan(
		&detail.ID,
		&detail.ClientID,
		&detail.ClientName,
		&detail.Name,
		&detail.Address,
		&detail.Latitude,
		&detail.Longitude,
		&detail.Radius,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting site detail"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "ClientID", "Name", "Latitude", "Longitude", "Radius"); err != nil {
		return CreateResponse{}, err
	}
	if *request.Radius <= 0 {
		return CreateResponse{}, web.NewRequestError(errors.New("radius must be greater than zero"), http.StatusBadRequest)
	}

	var client entity.Client
	err = r.NewSelect().Model(&client).Where("deleted_at IS NULL AND id = ?", *request.ClientID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return CreateResponse{}, web.NewRequestError(errors.New("client not found"), http.StatusBadRequest)
	}
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "selecting client"), http.StatusInternalServerError)
	}

	response := CreateResponse{
		ClientID:  request.ClientID,
		Name:      request.Name,
		Address:   request.Address,
		Latitude:  request.Latitude,
		Longitude: request.Longitude,
		Radius:    request.Radius,
		CreatedAt: time.Now(),
		CreatedBy: claims.UserId,
	}

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating site"), http.StatusBadRequest)
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

	q := r.NewUpdate().Table("sites").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.ClientID != nil {
		q.Set("client_id = ?", request.ClientID)
	}
	if request.Name != nil {
		q.Set("name = ?", request.Name)
	}
	if request.Address != nil {
		q.Set("address = ?", request.Address)
	}
	if request.Latitude != nil {
		q.Set("latitude = ?", request.Latitude)
	}
	if request.Longitude != nil {
		q.Set("longitude = ?", request.Longitude)
	}
	if request.Radius != nil {
		if *request.Radius <= 0 {
			return web.NewRequestError(errors.New("radius must be greater than zero"), http.StatusBadRequest)
		}
		q.Set("radius = ?", request.Radius)
	}

	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	res, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating site"), http.StatusBadRequest)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}

// ClockInQR renders a PNG QR code pointing officers at the site's clock-in
// endpoint. Posted at the site entrance.
func (r Repository) ClockInQR(ctx context.Context, id int) ([]byte, error) {
	detail, err := r.GetDetailById(ctx, id)
	if err != nil {
		return nil, err
	}

	content := fmt.Sprintf("%s/api/v1/time-entry/clock-in?site_id=%d", r.baseURL, detail.ID)
	png, err := qrcode.Encode(content, qrcode.Medium, 256)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "encoding qr code"), http.StatusInternalServerError)
	}

	return png, nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "sites", id)
}
