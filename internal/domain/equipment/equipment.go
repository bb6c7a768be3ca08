// Package equipment exposes the medical equipment inventory, read-only.
package equipment

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

type Item struct {
	ID            int64     `json:"id"`
	EquipmentType string    `json:"equipment_type"`
	Model         *string   `json:"model"`
	SerialNumber  *string   `json:"serial_number"`
	Status        string    `json:"status"`
	UnitID        *int64    `json:"unit_id"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

type Repository interface {
	List(ctx context.Context, status string) ([]Item, error)
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

func (r *repoPG) List(ctx context.Context, status string) ([]Item, error) {
	q := `
		SELECT id, equipment_type, model, serial_number, status, unit_id, notes, created_at
		FROM medical_equipment`
	var args []interface{}
	if status != "" {
		q += ` WHERE status = $1`
		args = append(args, status)
	}
	q += ` ORDER BY equipment_type, status`

	rows, err := r.conn(ctx).Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var i Item
		if err := rows.Scan(&i.ID, &i.EquipmentType, &i.Model, &i.SerialNumber,
			&i.Status, &i.UnitID, &i.Notes, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/equipment", h.ListEquipment)
}

func (h *Handler) ListEquipment(c echo.Context) error {
	items, err := h.repo.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return httperr.Store("equipment.list", err)
	}
	if items == nil {
		items = []Item{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    items,
		"total":   len(items),
	})
}
