package booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/turnos/turnos/internal/domain/directory"
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
	api.GET("/professionals/:professional_id/slots", h.ListSlots)
	api.GET("/appointments/:id", h.GetAppointment)
	api.POST("/appointments/:id/cancel", h.CancelAppointment)

	api.POST("/appointments", h.CreateAppointment, auth.RequireRole(auth.RolePatient, auth.RoleAdmin))

	clinical := api.Group("", auth.RequireRole(auth.RoleProfessional, auth.RoleAdmin))
	clinical.PATCH("/appointments/:id/status", h.UpdateStatus)
	clinical.PATCH("/appointments/:id/notes", h.UpdateNotes)
	clinical.GET("/professionals/:professional_id/agenda", h.ListAgenda)

	mine := api.Group("", auth.RequireRole(auth.RolePatient))
	mine.GET("/my/appointments", h.ListMine)
	mine.GET("/my/appointments/upcoming", h.ListUpcoming)
}

// httpError translates domain errors into transport status codes.
func httpError(err error) error {
	switch {
	case errors.Is(err, directory.ErrProfessionalNotFound), errors.Is(err, ErrAppointmentNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrSlotConflict), errors.Is(err, ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrLeadTime), errors.Is(err, ErrOutsideAvailability):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func actorOr401(c echo.Context) (auth.Actor, error) {
	actor, ok := auth.ActorFromContext(c.Request().Context())
	if !ok {
		return auth.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return actor, nil
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	actor, err := actorOr401(c)
	if err != nil {
		return err
	}
	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.ProfessionalID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "professional_id is required")
	}
	if req.StartTime.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "start_time is required")
	}
	appt, err := h.svc.Book(c.Request().Context(), actor, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, appt)
}

func (h *Handler) ListSlots(c echo.Context) error {
	professionalID, err := uuid.Parse(c.Param("professional_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid professional_id")
	}
	day, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}
	slots, err := h.svc.GenerateSlots(c.Request().Context(), professionalID, day)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"date":  day.Format("2006-01-02"),
		"slots": slots,
	})
}

func (h *Handler) GetAppointment(c echo.Context) error {
	actor, err := actorOr401(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	appt, err := h.svc.Get(c.Request().Context(), actor, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, appt)
}

func (h *Handler) CancelAppointment(c echo.Context) error {
	actor, err := actorOr401(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	appt, err := h.svc.Cancel(c.Request().Context(), actor, id, body.Reason)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, appt)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	actor, err := actorOr401(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Status Status `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	appt, err := h.svc.TransitionStatus(c.Request().Context(), actor, id, body.Status)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, appt)
}

func (h *Handler) UpdateNotes(c echo.Context) error {
	actor, err := actorOr401(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Notes string `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	appt, err := h.svc.UpdateNotes(c.Request().Context(), actor, id, body.Notes)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, appt)
}

func (h *Handler) ListMine(c echo.Context) error {
	actor, err := actorOr401(c)
	if err != nil {
		return err
	}
	p := pagination.FromContext(c)
	items, total, err := h.svc.ListMine(c.Request().Context(), actor, p.Limit, p.Offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, p.Limit, p.Offset))
}

func (h *Handler) ListUpcoming(c echo.Context) error {
	actor, err := actorOr401(c)
	if err != nil {
		return err
	}
	p := pagination.FromContext(c)
	items, err := h.svc.ListUpcoming(c.Request().Context(), actor, p.Limit)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) ListAgenda(c echo.Context) error {
	actor, err := actorOr401(c)
	if err != nil {
		return err
	}
	professionalID, err := uuid.Parse(c.Param("professional_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid professional_id")
	}
	from, err := time.Parse("2006-01-02", c.QueryParam("from"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "from must be YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", c.QueryParam("to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "to must be YYYY-MM-DD")
	}
	p := pagination.FromContext(c)
	items, total, err := h.svc.ListAgenda(c.Request().Context(), actor, professionalID, from, to, p.Limit, p.Offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, p.Limit, p.Offset))
}
