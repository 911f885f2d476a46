package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/turnos/turnos/internal/domain/timegrid"
)

// Appointment maps to the appointment table. DurationMinutes is copied
// from the specialty at booking time so later catalog edits do not move
// existing appointments.
type Appointment struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	PatientID       uuid.UUID  `db:"patient_id" json:"patient_id"`
	ProfessionalID  uuid.UUID  `db:"professional_id" json:"professional_id"`
	SpecialtyID     uuid.UUID  `db:"specialty_id" json:"specialty_id"`
	StartTime       time.Time  `db:"start_time" json:"start_time"`
	DurationMinutes int        `db:"duration_minutes" json:"duration_minutes"`
	Status          Status     `db:"status" json:"status"`
	Notes           *string    `db:"notes" json:"notes,omitempty"`
	CanceledAt      *time.Time `db:"canceled_at" json:"canceled_at,omitempty"`
	CancelReason    *string    `db:"cancel_reason" json:"cancel_reason,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// End returns the exclusive end instant.
func (a *Appointment) End() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// Interval returns the half-open occupancy of the appointment.
func (a *Appointment) Interval() timegrid.Interval {
	return timegrid.Interval{Start: a.StartTime, End: a.End()}
}

// Blocking reports whether the appointment occupies its slot. Canceled
// appointments free the slot immediately.
func (a *Appointment) Blocking() bool {
	return a.Status != StatusCanceled
}

// Slot is one candidate interval offered to patients. Taken and
// already-started slots are still listed, flagged unavailable, so an
// agenda can render the full grid.
type Slot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}
