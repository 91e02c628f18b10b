// Package postgresql owns the bun database handle and the request-scoped
// helpers (claims, struct validation, soft deletes) every repository shares.
package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"reflect"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"guardpost/backend/foundation/web"
	"guardpost/backend/internal/auth"
	"guardpost/backend/internal/pkg/config"
)

type Database struct {
	*bun.DB
}

func NewDatabase(cfg *config.Config) *Database {
	pgconn := pgdriver.NewConnector(
		pgdriver.WithAddr(cfg.DBHost+":"+cfg.DBPort),
		pgdriver.WithUser(cfg.DBUsername),
		pgdriver.WithPassword(cfg.DBPassword),
		pgdriver.WithDatabase(cfg.DBName),
		pgdriver.WithInsecure(cfg.DisableTLS),
	)

	sqldb := sql.OpenDB(pgconn)
	db := bun.NewDB(sqldb, pgdialect.New())
	db.AddQueryHook(bundebug.NewQueryHook(bundebug.FromEnv("BUNDEBUG")))

	return &Database{DB: db}
}

// CheckClaims pulls the authenticated claims stored by the auth middleware.
func (d Database) CheckClaims(ctx context.Context) (auth.Claims, error) {
	claims, ok := ctx.Value(auth.Key).(auth.Claims)
	if !ok {
		return auth.Claims{}, web.NewRequestError(errors.New("claims missing from context"), http.StatusUnauthorized)
	}
	return claims, nil
}

// ValidateStruct verifies the named pointer fields of a request struct were
// provided. Field names refer to the Go struct fields.
func (d Database) ValidateStruct(s interface{}, requiredFields ...string) error {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	for _, name := range requiredFields {
		field := v.FieldByName(name)
		if !field.IsValid() {
			return web.NewRequestError(fmt.Errorf("unknown field %q", name), http.StatusInternalServerError)
		}
		if field.Kind() == reflect.Ptr && field.IsNil() {
			return web.NewRequestError(fmt.Errorf("field %q is required", name), http.StatusBadRequest)
		}
	}

	return nil
}

// DeleteRow soft-deletes one row, stamping who deleted it.
func (d Database) DeleteRow(ctx context.Context, table string, id int) error {
	claims, err := d.CheckClaims(ctx)
	if err != nil {
		return err
	}

	q := d.NewUpdate().
		Table(table).
		Where("deleted_at IS NULL AND id = ?", id).
		Set("deleted_at = ?", time.Now()).
		Set("deleted_by = ?", claims.UserId)

	res, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrapf(err, "deleting from %s", table), http.StatusInternalServerError)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return web.NewRequestError(errors.Errorf("%s: row %d not found", table, id), http.StatusNotFound)
	}

	return nil
}
