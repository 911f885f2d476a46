package directory

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/turnos/turnos/internal/platform/auth"
	"github.com/turnos/turnos/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// Catalog reads are open to any authenticated actor.
	api.GET("/specialties", h.ListSpecialties)
	api.GET("/specialties/:id", h.GetSpecialty)
	api.GET("/professionals", h.ListProfessionals)
	api.GET("/professionals/:id", h.GetProfessional)

	admin := api.Group("", auth.RequireRole(auth.RoleAdmin))
	admin.POST("/specialties", h.CreateSpecialty)
	admin.PUT("/specialties/:id", h.UpdateSpecialty)
	admin.POST("/professionals", h.CreateProfessional)
	admin.PUT("/professionals/:id", h.UpdateProfessional)
}

func (h *Handler) CreateSpecialty(c echo.Context) error {
	var sp Specialty
	if err := c.Bind(&sp); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateSpecialty(c.Request().Context(), &sp); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, sp)
}

func (h *Handler) GetSpecialty(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	sp, err := h.svc.GetSpecialty(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "specialty not found")
	}
	return c.JSON(http.StatusOK, sp)
}

func (h *Handler) UpdateSpecialty(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var sp Specialty
	if err := c.Bind(&sp); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sp.ID = id
	if err := h.svc.UpdateSpecialty(c.Request().Context(), &sp); err != nil {
		if errors.Is(err, ErrSpecialtyNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "specialty not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, sp)
}

func (h *Handler) ListSpecialties(c echo.Context) error {
	p := pagination.FromContext(c)
	items, total, err := h.svc.ListSpecialties(c.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, p.Limit, p.Offset))
}

func (h *Handler) CreateProfessional(c echo.Context) error {
	var pr Professional
	if err := c.Bind(&pr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	pr.Active = true
	if err := h.svc.CreateProfessional(c.Request().Context(), &pr); err != nil {
		if errors.Is(err, ErrSpecialtyNotFound) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "specialty not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, pr)
}

func (h *Handler) GetProfessional(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	pr, err := h.svc.GetProfessional(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "professional not found")
	}
	return c.JSON(http.StatusOK, pr)
}

func (h *Handler) UpdateProfessional(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var pr Professional
	if err := c.Bind(&pr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	pr.ID = id
	if err := h.svc.UpdateProfessional(c.Request().Context(), &pr); err != nil {
		switch {
		case errors.Is(err, ErrProfessionalNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "professional not found")
		case errors.Is(err, ErrSpecialtyNotFound):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "specialty not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, pr)
}

func (h *Handler) ListProfessionals(c echo.Context) error {
	p := pagination.FromContext(c)
	var specialtyID uuid.UUID
	if raw := c.QueryParam("specialty_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid specialty_id")
		}
		specialtyID = id
	}
	items, total, err := h.svc.ListProfessionals(c.Request().Context(), specialtyID, p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, p.Limit, p.Offset))
}
