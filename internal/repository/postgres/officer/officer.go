package officer

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"guardpost/backend/foundation/web"
	"guardpost/backend/internal/auth"
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

func validRole(role string) bool {
	switch role {
	case auth.RoleAdmin, auth.RoleDispatcher, auth.RoleOfficer:
		return true
	}
	return false
}

func validEmployment(status string) bool {
	switch status {
	case entity.EmploymentActive, entity.EmploymentOnboarding, entity.EmploymentTerminated:
		return true
	}
	return false
}

// GetByEmployeeID looks up an officer for sign-in. It is the only read that
// returns the password hash.
func (r Repository) GetByEmployeeID(ctx context.Context, employeeID string) (entity.Officer, error) {
	var detail entity.Officer
	err := r.NewSelect().Model(&detail).Where("employee_id = ? AND deleted_at IS NULL", employeeID).Scan(ctx)
	if err != nil {
		return entity.Officer{}, web.NewRequestError(errors.New("officer not found"), http.StatusUnauthorized)
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
			o.deleted_at IS NULL`

	args := []interface{}{}
	if filter.Search != nil {
		search := "%" + strings.TrimSpace(*filter.Search) + "%"
		whereQuery += " AND (o.employee_id ILIKE ? OR o.full_name ILIKE ?)"
		args = append(args, search, search)
	}
	if filter.EmploymentStatus != nil {
		whereQuery += " AND o.employment_status = ?"
		args = append(args, *filter.EmploymentStatus)
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
			o.id,
			o.employee_id,
			o.full_name,
			o.phone,
			o.email,
			o.role,
			o.employment_status
		FROM officers o
	` + whereQuery + " ORDER BY o.created_at DESC" + limitQuery + offsetQuery

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting officers"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse
	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.EmployeeID,
			&detail.FullName,
			&detail.Phone,
			&detail.Email,
			&detail.Role,
			&detail.EmploymentStatus,
		); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning officer list"), http.StatusInternalServerError)
		}
		list = append(list, detail)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "reading officer rows"), http.StatusInternalServerError)
	}

	countQuery := `
		SELECT count(o.id)
		FROM officers o
	` + whereQuery

	count := 0
	if err = r.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "counting officers"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	_, err := r.CheckClaims(ctx)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	var officer entity.Officer
	err = r.NewSelect().Model(&officer).Where("deleted_at IS NULL AND id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting officer detail"), http.StatusInternalServerError)
	}

	return GetDetailByIdResponse{
		ID:               officer.ID,
		EmployeeID:       officer.EmployeeID,
		FullName:         officer.FullName,
		Phone:            officer.Phone,
		Email:            officer.Email,
		Role:             officer.Role,
		EmploymentStatus: officer.EmploymentStatus,
		Financials:       officer.Financials,
	}, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "EmployeeID", "Password", "FullName", "Role"); err != nil {
		return CreateResponse{}, err
	}

	used := true
	if err := r.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT id FROM officers WHERE employee_id = ? AND deleted_at IS NULL)`,
		*request.EmployeeID).Scan(&used); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "employee_id check"), http.StatusInternalServerError)
	}
	if used {
		return CreateResponse{}, web.NewRequestError(errors.New("employee_id is used"), http.StatusBadRequest)
	}

	role := strings.ToUpper(*request.Role)
	if !validRole(role) {
		return CreateResponse{}, web.NewRequestError(errors.New("incorrect role. role should be ADMIN, DISPATCHER or OFFICER"), http.StatusBadRequest)
	}

	status := entity.EmploymentOnboarding
	if request.EmploymentStatus != nil {
		status = strings.ToLower(*request.EmploymentStatus)
		if !validEmployment(status) {
			return CreateResponse{}, web.NewRequestError(errors.New("incorrect employment_status"), http.StatusBadRequest)
		}
	}

	if request.Financials != nil {
		if request.Financials.BaseRate != nil && *request.Financials.BaseRate < 0 {
			return CreateResponse{}, web.NewRequestError(errors.New("base_rate must not be negative"), http.StatusBadRequest)
		}
		if request.Financials.OvertimeRate != nil && request.Financials.BaseRate != nil &&
			*request.Financials.OvertimeRate < *request.Financials.BaseRate {
			return CreateResponse{}, web.NewRequestError(errors.New("overtime_rate must not be below base_rate"), http.StatusBadRequest)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
	}
	hashedPassword := string(hash)

	response := CreateResponse{
		EmployeeID:       request.EmployeeID,
		Password:         &hashedPassword,
		Role:             &role,
		FullName:         request.FullName,
		Phone:            request.Phone,
		Email:            request.Email,
		EmploymentStatus: &status,
		Financials:       request.Financials,
		CreatedAt:        time.Now(),
		CreatedBy:        claims.UserId,
	}

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating officer"), http.StatusBadRequest)
	}

	response.Password = nil

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

	q := r.NewUpdate().Table("officers").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.EmployeeID != nil {
		used := true
		if err := r.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT id FROM officers WHERE employee_id = ? AND deleted_at IS NULL AND id != ?)`,
			*request.EmployeeID, request.ID).Scan(&used); err != nil {
			return web.NewRequestError(errors.Wrap(err, "employee_id check"), http.StatusInternalServerError)
		}
		if used {
			return web.NewRequestError(errors.New("employee_id is used"), http.StatusBadRequest)
		}
		q.Set("employee_id = ?", request.EmployeeID)
	}

	if request.Role != nil {
		role := strings.ToUpper(*request.Role)
		if !validRole(role) {
			return web.NewRequestError(errors.New("incorrect role. role should be ADMIN, DISPATCHER or OFFICER"), http.StatusBadRequest)
		}
		q.Set("role = ?", role)
	}

	if request.EmploymentStatus != nil {
		status := strings.ToLower(*request.EmploymentStatus)
		if !validEmployment(status) {
			return web.NewRequestError(errors.New("incorrect employment_status"), http.StatusBadRequest)
		}
		q.Set("employment_status = ?", status)
	}

	if request.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
		}
		q.Set("password = ?", string(hash))
	}

	if request.FullName != nil {
		q.Set("full_name = ?", request.FullName)
	}
	if request.Phone != nil {
		q.Set("phone = ?", request.Phone)
	}
	if request.Email != nil {
		q.Set("email = ?", request.Email)
	}
	if request.Financials != nil {
		if request.Financials.BaseRate != nil && *request.Financials.BaseRate < 0 {
			return web.NewRequestError(errors.New("base_rate must not be negative"), http.StatusBadRequest)
		}
		if request.Financials.OvertimeRate != nil && request.Financials.BaseRate != nil &&
			*request.Financials.OvertimeRate < *request.Financials.BaseRate {
			return web.NewRequestError(errors.New("overtime_rate must not be below base_rate"), http.StatusBadRequest)
		}
		raw, err := json.Marshal(request.Financials)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "encoding financials"), http.StatusBadRequest)
		}
		q.Set("financials = ?", string(raw))
	}

	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	res, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating officer"), http.StatusBadRequest)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	return nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "officers", id)
}
