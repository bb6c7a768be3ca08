// Package alertsfeed serves the stored predictive alerts, read-only. Derived
// capacity alerts live in the analytics package; these are the ones written by
// the prediction pipeline.
package alertsfeed

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

type Alert struct {
	ID        int64     `json:"id"`
	AlertType string    `json:"alert_type"`
	Severity  string    `json:"severity"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Resolved  bool      `json:"resolved"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	ListUnresolved(ctx context.Context) ([]Alert, error)
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

func (r *repoPG) ListUnresolved(ctx context.Context) ([]Alert, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, alert_type, severity, title, message, resolved, created_at
		FROM predictive_alerts
		WHERE NOT resolved
		ORDER BY CASE severity
		    WHEN 'critical' THEN 0
		    WHEN 'high' THEN 1
		    WHEN 'medium' THEN 2
		    ELSE 3
		END, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []Alert
	for rows.Next() {
		var a Alert
		if err := rows.Scan(&a.ID, &a.AlertType, &a.Severity, &a.Title,
			&a.Message, &a.Resolved, &a.CreatedAt); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/alerts", h.ListAlerts)
}

func (h *Handler) ListAlerts(c echo.Context) error {
	alerts, err := h.repo.ListUnresolved(c.Request().Context())
	if err != nil {
		return httperr.Store("alertsfeed.list", err)
	}
	if alerts == nil {
		alerts = []Alert{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    alerts,
		"total":   len(alerts),
	})
}
