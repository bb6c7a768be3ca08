package beds

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/pneumotrack/pneumotrack/internal/platform/auth"
	"github.com/pneumotrack/pneumotrack/internal/platform/httperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/beds", h.ListBeds)
	api.GET("/beds/:id", h.GetBed)

	write := api.Group("", auth.RequireRole("admin", "charge_nurse", "nurse"))
	write.PATCH("/beds/:id/status", h.UpdateBedStatus)
	write.PUT("/beds/:id", h.UpdateBed)
	write.POST("/beds/bulk-update", h.BulkUpdateBeds)
	write.DELETE("/beds/:id", h.DeleteBed)
}

func bedID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, httperr.Invalid("invalid bed id %q", c.Param("id"))
	}
	return id, nil
}

func actor(c echo.Context) string {
	if a := auth.ActorFromContext(c.Request().Context()); a != "" {
		return a
	}
	return "system"
}

func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

func (h *Handler) ListBeds(c echo.Context) error {
	f := ListFilter{
		Status:    c.QueryParam("status"),
		Room:      c.QueryParam("room"),
		Equipment: c.QueryParam("equipment"),
	}

	details, err := h.svc.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	if details == nil {
		details = []BedDetail{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    details,
		"total":   len(details),
	})
}

func (h *Handler) GetBed(c echo.Context) error {
	id, err := bedID(c)
	if err != nil {
		return err
	}
	detail, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, detail)
}

type statusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func (h *Handler) UpdateBedStatus(c echo.Context) error {
	id, err := bedID(c)
	if err != nil {
		return err
	}

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return httperr.Invalid("malformed request body")
	}

	detail, err := h.svc.UpdateStatus(c.Request().Context(), id, req.Status, req.Reason, actor(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, detail)
}

func (h *Handler) UpdateBed(c echo.Context) error {
	id, err := bedID(c)
	if err != nil {
		return err
	}

	var fields UpdateFields
	if err := c.Bind(&fields); err != nil {
		return httperr.Invalid("malformed request body")
	}

	detail, err := h.svc.UpdateFields(c.Request().Context(), id, fields, actor(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, detail)
}

type bulkRequest struct {
	BedIDs []int64      `json:"bed_ids"`
	Fields UpdateFields `json:"fields"`
}

func (h *Handler) BulkUpdateBeds(c echo.Context) error {
	var req bulkRequest
	if err := c.Bind(&req); err != nil {
		return httperr.Invalid("malformed request body")
	}

	updated, err := h.svc.BulkUpdate(c.Request().Context(), req.BedIDs, req.Fields, actor(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    updated,
		"updated": len(updated),
	})
}

func (h *Handler) DeleteBed(c echo.Context) error {
	id, err := bedID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id, actor(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "bed deleted",
	})
}
