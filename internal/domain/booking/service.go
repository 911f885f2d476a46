package booking

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/turnos/turnos/internal/domain/directory"
	"github.com/turnos/turnos/internal/domain/schedule"
	"github.com/turnos/turnos/internal/domain/timegrid"
	"github.com/turnos/turnos/internal/platform/auth"
	"github.com/turnos/turnos/internal/platform/events"
	"github.com/turnos/turnos/internal/platform/lock"
)

// ProfessionalDirectory resolves active professionals with their
// specialty defaults.
type ProfessionalDirectory interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*directory.ProfessionalProfile, error)
}

// AvailabilityProvider lists the active windows of a professional for
// one weekday.
type AvailabilityProvider interface {
	ListActiveWindows(ctx context.Context, professionalID uuid.UUID, weekday time.Weekday) ([]*schedule.WeeklyAvailability, error)
}

type Service struct {
	ledger    Ledger
	dir       ProfessionalDirectory
	avail     AvailabilityProvider
	locker    lock.Locker
	publisher events.Publisher
	leadTime  time.Duration

	now func() time.Time
}

func NewService(ledger Ledger, dir ProfessionalDirectory, avail AvailabilityProvider, locker lock.Locker, publisher events.Publisher, leadTime time.Duration) *Service {
	return &Service{
		ledger:    ledger,
		dir:       dir,
		avail:     avail,
		locker:    locker,
		publisher: publisher,
		leadTime:  leadTime,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// BookRequest is the input to Book. PatientID is honored only for
// admin actors; patients always book for themselves.
type BookRequest struct {
	PatientID      uuid.UUID `json:"patient_id"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	StartTime      time.Time `json:"start_time"`
	Notes          *string   `json:"notes,omitempty"`
}

// Book places an appointment. Validation runs cheapest first:
// professional lookup, lead time, window fit, then the overlap check
// under the per-professional lock.
func (s *Service) Book(ctx context.Context, actor auth.Actor, req BookRequest) (*Appointment, error) {
	patientID := req.PatientID
	switch {
	case actor.IsPatient():
		patientID = actor.ID
	case actor.IsAdmin():
		if patientID == uuid.Nil {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}

	profile, err := s.dir.GetProfile(ctx, req.ProfessionalID)
	if err != nil {
		return nil, err
	}

	start := req.StartTime.UTC()
	if !start.After(s.now().Add(s.leadTime)) {
		return nil, ErrLeadTime
	}

	iv := timegrid.NewInterval(start, profile.SlotDuration())
	if err := s.checkWindowFit(ctx, req.ProfessionalID, iv); err != nil {
		return nil, err
	}

	release, err := s.locker.Acquire(ctx, req.ProfessionalID.String())
	if err != nil {
		return nil, err
	}
	defer release()

	busy, err := s.ledger.ListOverlapping(ctx, req.ProfessionalID, iv)
	if err != nil {
		return nil, err
	}
	if len(busy) > 0 {
		first := busy[0]
		return nil, &ConflictError{Start: first.StartTime, End: first.End()}
	}

	appt := &Appointment{
		PatientID:       patientID,
		ProfessionalID:  req.ProfessionalID,
		SpecialtyID:     profile.SpecialtyID,
		StartTime:       start,
		DurationMinutes: profile.DurationMinutes,
		Status:          StatusScheduled,
		Notes:           req.Notes,
	}
	if err := s.ledger.Create(ctx, appt); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeAppointmentBooked, appt)
	return appt, nil
}

// checkWindowFit requires the whole interval to sit inside one active
// window of the start day.
func (s *Service) checkWindowFit(ctx context.Context, professionalID uuid.UUID, iv timegrid.Interval) error {
	windows, err := s.avail.ListActiveWindows(ctx, professionalID, iv.Start.Weekday())
	if err != nil {
		return err
	}
	for _, w := range windows {
		day := w.On(iv.Start)
		if !iv.Start.Before(day.Start) && !iv.End.After(day.End) {
			return nil
		}
	}
	return ErrOutsideAvailability
}

// GenerateSlots lists the candidate intervals of a professional for one
// calendar day, one per specialty-duration step inside each window. A
// slot is available only when it starts strictly in the future and
// touches no non-canceled appointment; taken or started slots are kept
// in the result with Available false. Slots come back in ascending
// start order across windows.
func (s *Service) GenerateSlots(ctx context.Context, professionalID uuid.UUID, day time.Time) ([]Slot, error) {
	profile, err := s.dir.GetProfile(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	windows, err := s.avail.ListActiveWindows(ctx, professionalID, day.UTC().Weekday())
	if err != nil {
		return nil, err
	}

	now := s.now()
	duration := profile.SlotDuration()
	slots := []Slot{}
	for _, w := range windows {
		win := w.On(day)
		appts, err := s.ledger.ListOverlapping(ctx, professionalID, win)
		if err != nil {
			return nil, err
		}
		busy := make([]timegrid.Interval, 0, len(appts))
		for _, a := range appts {
			busy = append(busy, a.Interval())
		}
		for _, start := range timegrid.Walk(win.Start, win.End, duration, duration) {
			candidate := timegrid.NewInterval(start, duration)
			slots = append(slots, Slot{
				Start:     candidate.Start,
				End:       candidate.End,
				Available: start.After(now) && !timegrid.OverlapsAny(candidate, busy),
			})
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Start.Before(slots[j].Start) })
	return slots, nil
}

// Get returns an appointment visible to the actor. Patients see their
// own, professionals their agenda, admins everything.
func (s *Service) Get(ctx context.Context, actor auth.Actor, id uuid.UUID) (*Appointment, error) {
	appt, err := s.ledger.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.owns(actor, appt) {
		return nil, ErrForbidden
	}
	return appt, nil
}

func (s *Service) owns(actor auth.Actor, appt *Appointment) bool {
	switch {
	case actor.IsAdmin():
		return true
	case actor.IsPatient():
		return appt.PatientID == actor.ID
	case actor.IsProfessional():
		return appt.ProfessionalID == actor.ID
	}
	return false
}

// Cancel moves an appointment to canceled, recording when and why. Any
// owning actor may cancel while the appointment is not terminal.
func (s *Service) Cancel(ctx context.Context, actor auth.Actor, id uuid.UUID, reason string) (*Appointment, error) {
	appt, err := s.ledger.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.owns(actor, appt) {
		return nil, ErrForbidden
	}
	if !appt.Status.CanTransition(StatusCanceled) {
		return nil, &TransitionError{From: appt.Status, To: StatusCanceled}
	}

	canceledAt := s.now()
	appt.Status = StatusCanceled
	appt.CanceledAt = &canceledAt
	if reason != "" {
		appt.CancelReason = &reason
	}
	if err := s.ledger.UpdateStatus(ctx, appt); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeAppointmentCanceled, appt)
	return appt, nil
}

// TransitionStatus advances the appointment lifecycle. Only the owning
// professional or an admin may drive it; cancellation goes through
// Cancel so a reason can be recorded.
func (s *Service) TransitionStatus(ctx context.Context, actor auth.Actor, id uuid.UUID, next Status) (*Appointment, error) {
	if !actor.IsAdmin() && !actor.IsProfessional() {
		return nil, ErrForbidden
	}
	if !next.Valid() || next == StatusCanceled {
		return nil, &TransitionError{To: next}
	}
	appt, err := s.ledger.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.owns(actor, appt) {
		return nil, ErrForbidden
	}
	if !appt.Status.CanTransition(next) {
		return nil, &TransitionError{From: appt.Status, To: next}
	}

	appt.Status = next
	if err := s.ledger.UpdateStatus(ctx, appt); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TypeAppointmentUpdated, appt)
	return appt, nil
}

// UpdateNotes replaces the clinical notes. Restricted to the owning
// professional or an admin.
func (s *Service) UpdateNotes(ctx context.Context, actor auth.Actor, id uuid.UUID, notes string) (*Appointment, error) {
	if !actor.IsAdmin() && !actor.IsProfessional() {
		return nil, ErrForbidden
	}
	appt, err := s.ledger.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.owns(actor, appt) {
		return nil, ErrForbidden
	}
	if err := s.ledger.UpdateNotes(ctx, id, notes); err != nil {
		return nil, err
	}
	appt.Notes = &notes
	return appt, nil
}

// ListMine returns the actor's own appointment history, newest first.
func (s *Service) ListMine(ctx context.Context, actor auth.Actor, limit, offset int) ([]*Appointment, int, error) {
	if !actor.IsPatient() {
		return nil, 0, ErrForbidden
	}
	return s.ledger.ListByPatient(ctx, actor.ID, limit, offset)
}

// ListAgenda returns a professional's appointments inside [from, to).
// Professionals see only their own agenda.
func (s *Service) ListAgenda(ctx context.Context, actor auth.Actor, professionalID uuid.UUID, from, to time.Time, limit, offset int) ([]*Appointment, int, error) {
	if !actor.IsAdmin() && !(actor.IsProfessional() && actor.ID == professionalID) {
		return nil, 0, ErrForbidden
	}
	return s.ledger.ListByProfessional(ctx, professionalID, from, to, limit, offset)
}

// ListUpcoming returns the patient's next appointments, soonest first.
func (s *Service) ListUpcoming(ctx context.Context, actor auth.Actor, limit int) ([]*Appointment, error) {
	if !actor.IsPatient() {
		return nil, ErrForbidden
	}
	return s.ledger.ListUpcoming(ctx, actor.ID, s.now(), limit)
}

// publish emits a domain event after the write committed. Delivery
// failures are logged, never surfaced to the caller.
func (s *Service) publish(ctx context.Context, eventType string, appt *Appointment) {
	ev, err := events.New(eventType, appt.ProfessionalID.String(), appt)
	if err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("build event failed")
		return
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		log.Error().Err(err).Str("event_type", eventType).Str("appointment_id", appt.ID.String()).Msg("publish event failed")
	}
}
