package audit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pneumotrack/pneumotrack/internal/platform/httperr"
	"github.com/pneumotrack/pneumotrack/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/audit", h.ListAudit)
	api.GET("/audit/summary", h.AuditSummary)
	api.GET("/beds/:id/audit", h.BedAudit)
}

// filterFromQuery parses the audit filters. Unparseable values are dropped
// rather than rejected, matching the bed list filters.
func filterFromQuery(c echo.Context) Filter {
	var f Filter

	if v := c.QueryParam("bed_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			f.BedID = &id
		}
	}
	f.Room = c.QueryParam("room")
	if v := c.QueryParam("start_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.StartDate = &t
		}
	}
	if v := c.QueryParam("end_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.EndDate = &t
		}
	}
	f.UpdatedBy = c.QueryParam("updated_by")
	if v := c.QueryParam("action_type"); v == ActionStatusChange || v == ActionPatientAssignment {
		f.ActionType = v
	}

	return f
}

func (h *Handler) ListAudit(c echo.Context) error {
	p := pagination.FromContext(c)
	entries, total, err := h.svc.List(c.Request().Context(), filterFromQuery(c), p.Limit, p.Offset)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(entries, total, p.Limit, p.Offset))
}

func (h *Handler) AuditSummary(c echo.Context) error {
	summary, err := h.svc.Summary(c.Request().Context(), filterFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    summary,
	})
}

func (h *Handler) BedAudit(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return httperr.Invalid("invalid bed id %q", c.Param("id"))
	}

	p := pagination.FromContext(c)
	entries, total, err := h.svc.List(c.Request().Context(), Filter{BedID: &id}, p.Limit, p.Offset)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(entries, total, p.Limit, p.Offset))
}
