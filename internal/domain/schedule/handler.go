package schedule

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/turnos/turnos/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/professionals/:professional_id/availability", h.ListWindows)

	manage := api.Group("", auth.RequireRole(auth.RoleProfessional, auth.RoleAdmin))
	manage.POST("/professionals/:professional_id/availability", h.CreateWindow)
	manage.PUT("/availability/:id", h.UpdateWindow)
	manage.DELETE("/availability/:id", h.DeactivateWindow)
}

// canManage allows a professional to edit only their own schedule.
func canManage(c echo.Context, professionalID uuid.UUID) bool {
	actor, ok := auth.ActorFromContext(c.Request().Context())
	if !ok {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	return actor.IsProfessional() && actor.ID == professionalID
}

func (h *Handler) CreateWindow(c echo.Context) error {
	professionalID, err := uuid.Parse(c.Param("professional_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid professional_id")
	}
	if !canManage(c, professionalID) {
		return echo.NewHTTPError(http.StatusForbidden, "cannot manage another professional's schedule")
	}
	var w WeeklyAvailability
	if err := c.Bind(&w); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	w.ProfessionalID = professionalID
	if err := h.svc.CreateWindow(c.Request().Context(), &w); err != nil {
		if errors.Is(err, ErrWindowOverlap) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return c.JSON(http.StatusCreated, w)
}

func (h *Handler) UpdateWindow(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	current, err := h.svc.GetWindow(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "availability window not found")
	}
	if !canManage(c, current.ProfessionalID) {
		return echo.NewHTTPError(http.StatusForbidden, "cannot manage another professional's schedule")
	}
	var w WeeklyAvailability
	if err := c.Bind(&w); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	w.ID = id
	if err := h.svc.UpdateWindow(c.Request().Context(), &w); err != nil {
		switch {
		case errors.Is(err, ErrWindowNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "availability window not found")
		case errors.Is(err, ErrWindowOverlap):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return c.JSON(http.StatusOK, w)
}

func (h *Handler) DeactivateWindow(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	current, err := h.svc.GetWindow(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "availability window not found")
	}
	if !canManage(c, current.ProfessionalID) {
		return echo.NewHTTPError(http.StatusForbidden, "cannot manage another professional's schedule")
	}
	if err := h.svc.DeactivateWindow(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListWindows(c echo.Context) error {
	professionalID, err := uuid.Parse(c.Param("professional_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid professional_id")
	}
	items, err := h.svc.ListWindows(c.Request().Context(), professionalID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}
