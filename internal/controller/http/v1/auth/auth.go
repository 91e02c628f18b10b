package auth

import (
	"net/http"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"guardpost/backend/foundation/web"
	"guardpost/backend/internal/auth"
	"guardpost/backend/internal/entity"
	"guardpost/backend/internal/repository/postgres/officer"
)

type Controller struct {
	officer Officer
	auth    *auth.Auth
}

func NewController(officer Officer, auth *auth.Auth) *Controller {
	return &Controller{officer: officer, auth: auth}
}

func (uc Controller) SignIn(c *web.Context) error {
	var data officer.SignInRequest

	err := c.BindFunc(&data, "EmployeeID", "Password")
	if err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.officer.GetByEmployeeID(c.Ctx, data.EmployeeID)
	if err != nil {
		return c.RespondError(err)
	}

	if detail.Password == nil || detail.Role == nil {
		return c.RespondError(web.NewRequestError(errors.New("officer not found"), http.StatusUnauthorized))
	}
	if detail.EmploymentStatus != nil && *detail.EmploymentStatus == entity.EmploymentTerminated {
		return c.RespondError(web.NewRequestError(errors.New("employment terminated"), http.StatusUnauthorized))
	}

	if err = bcrypt.CompareHashAndPassword([]byte(*detail.Password), []byte(data.Password)); err != nil {
		return c.RespondError(web.NewRequestError(errors.New("incorrect password"), http.StatusUnauthorized))
	}

	accessToken, err := uc.auth.GenerateToken(detail.ID, *detail.Role)
	if err != nil {
		return c.RespondError(err)
	}
	refreshToken, err := uc.auth.GenerateRefreshToken(detail.ID, *detail.Role)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data": map[string]string{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		},
		"error": nil,
	}, http.StatusOK)
}

func (uc Controller) RefreshToken(c *web.Context) error {
	var data officer.RefreshTokenRequest

	err := c.BindFunc(&data, "RefreshToken")
	if err != nil {
		return c.RespondError(err)
	}

	claims, err := uc.auth.ValidateToken(data.RefreshToken)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
	}

	accessToken, err := uc.auth.GenerateToken(claims.UserId, claims.Role)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "generating new tokens"), http.StatusInternalServerError))
	}
	refreshToken, err := uc.auth.GenerateRefreshToken(claims.UserId, claims.Role)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "generating new tokens"), http.StatusInternalServerError))
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data": map[string]string{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		},
		"error": nil,
	}, http.StatusOK)
}
