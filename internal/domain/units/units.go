// Package units exposes the department unit directory. Units are reference
// data maintained outside the dashboard, so this package is read-only.
package units

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/pneumotrack/pneumotrack/internal/platform/db"
	"github.com/pneumotrack/pneumotrack/internal/platform/httperr"
)

type Unit struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	Specialty    string    `json:"specialty"`
	TotalBeds    int       `json:"total_beds"`
	IsActive     bool      `json:"is_active"`
	UnitPhone    *string   `json:"unit_phone"`
	UnitLocation *string   `json:"unit_location"`
	CreatedAt    time.Time `json:"created_at"`
}

type Repository interface {
	ListActive(ctx context.Context) ([]Unit, error)
}

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) ListActive(ctx context.Context) ([]Unit, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, name, code, specialty, total_beds, is_active,
		       unit_phone, unit_location, created_at
		FROM department_units
		WHERE is_active
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []Unit
	for rows.Next() {
		var u Unit
		if err := rows.Scan(&u.ID, &u.Name, &u.Code, &u.Specialty, &u.TotalBeds,
			&u.IsActive, &u.UnitPhone, &u.UnitLocation, &u.CreatedAt); err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/units", h.ListUnits)
}

func (h *Handler) ListUnits(c echo.Context) error {
	units, err := h.repo.ListActive(c.Request().Context())
	if err != nil {
		return httperr.Store("units.list", err)
	}
	if units == nil {
		units = []Unit{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    units,
		"total":   len(units),
	})
}
