package staff

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
	api.GET("/staff", h.ListStaff)
	api.GET("/staff/availability", h.Availability)
}

func (h *Handler) ListStaff(c echo.Context) error {
	members, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	if members == nil {
		members = []Member{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    members,
		"total":   len(members),
	})
}

func (h *Handler) Availability(c echo.Context) error {
	a, err := h.svc.Availability(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    a,
	})
}
