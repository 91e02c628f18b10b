package officer

import (
	"time"

	"github.com/uptrace/bun"

	"guardpost/backend/internal/entity"
)

type Filter struct {
	Limit            *int
	Offset           *int
	Page             *int
	Search           *string
	EmploymentStatus *string
}

type SignInRequest struct {
	EmployeeID string `json:"employee_id" form:"employee_id"`
	Password   string `json:"password" form:"password"`
}

type RefreshTokenRequest struct {
	AccessToken  string `json:"access_token" form:"access_token"`
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

type GetListResponse struct {
	ID               int     `json:"id"`
	EmployeeID       *string `json:"employee_id"`
	FullName         *string `json:"full_name"`
	Phone            *string `json:"phone"`
	Email            *string `json:"email"`
	Role             *string `json:"role"`
	EmploymentStatus *string `json:"employment_status"`
}

type GetDetailByIdResponse struct {
	ID               int                       `json:"id"`
	EmployeeID       *string                   `json:"employee_id"`
	FullName         *string                   `json:"full_name"`
	Phone            *string                   `json:"phone"`
	Email            *string                   `json:"email"`
	Role             *string                   `json:"role"`
	EmploymentStatus *string                   `json:"employment_status"`
	Financials       *entity.OfficerFinancials `json:"financials"`
}

type CreateRequest struct {
	EmployeeID       *string                   `json:"employee_id" form:"employee_id"`
	Password         *string                   `json:"password" form:"password"`
	Role             *string                   `json:"role" form:"role"`
	FullName         *string                   `json:"full_name" form:"full_name"`
	Phone            *string                   `json:"phone" form:"phone"`
	Email            *string                   `json:"email" form:"email"`
	EmploymentStatus *string                   `json:"employment_status" form:"employment_status"`
	Financials       *entity.OfficerFinancials `json:"financials" form:"financials"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:officers"`

	ID               int                       `json:"id" bun:"-"`
	EmployeeID       *string                   `json:"employee_id" bun:"employee_id"`
	Password         *string                   `json:"-" bun:"password"`
	Role             *string                   `json:"role" bun:"role"`
	FullName         *string                   `json:"full_name" bun:"full_name"`
	Phone            *string                   `json:"phone" bun:"phone"`
	Email            *string                   `json:"email" bun:"email"`
	EmploymentStatus *string                   `json:"employment_status" bun:"employment_status"`
	Financials       *entity.OfficerFinancials `json:"financials" bun:"financials,type:jsonb"`
	CreatedAt        time.Time                 `json:"-" bun:"created_at"`
	CreatedBy        int                       `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID               int                       `json:"id" form:"id"`
	EmployeeID       *string                   `json:"employee_id" form:"employee_id"`
	Password         *string                   `json:"password" form:"password"`
	Role             *string                   `json:"role" form:"role"`
	FullName         *string                   `json:"full_name" form:"full_name"`
	Phone            *string                   `json:"phone" form:"phone"`
	Email            *string                   `json:"email" form:"email"`
	EmploymentStatus *string                   `json:"employment_status" form:"employment_status"`
	Financials       *entity.OfficerFinancials `json:"financials" form:"financials"`
}
