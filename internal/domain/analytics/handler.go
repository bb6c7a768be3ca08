package analytics

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/analytics/dashboard", h.Dashboard)
	api.GET("/analytics/rooms", h.Rooms)
	api.GET("/rooms/:code/beds", h.Room)
	api.GET("/analytics/activity", h.Activity)
	api.GET("/analytics/capacity-alerts", h.CapacityAlerts)
	api.GET("/system/overview", h.Overview)
	// Alias kept for the dashboard frontend.
	api.GET("/dashboard/summary", h.Overview)
}

func respond(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

func (h *Handler) Dashboard(c echo.Context) error {
	d, err := h.svc.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, d)
}

func (h *Handler) Rooms(c echo.Context) error {
	rooms, err := h.svc.Rooms(c.Request().Context())
	if err != nil {
		return err
	}
	if rooms == nil {
		rooms = []RoomStats{}
	}
	return respond(c, rooms)
}

func (h *Handler) Room(c echo.Context) error {
	stats, err := h.svc.Room(c.Request().Context(), c.Param("code"))
	if err != nil {
		return err
	}
	return respond(c, stats)
}

func (h *Handler) Activity(c echo.Context) error {
	a, err := h.svc.Activity(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, a)
}

func (h *Handler) CapacityAlerts(c echo.Context) error {
	alerts, err := h.svc.CapacityAlerts(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, alerts)
}

func (h *Handler) Overview(c echo.Context) error {
	o, err := h.svc.Overview(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, o)
}
