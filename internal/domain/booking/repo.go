package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/turnos/turnos/internal/domain/timegrid"
)

// Ledger is the appointment store. Create must reject overlapping
// non-canceled appointments for the same professional with
// ErrSlotConflict even under concurrent callers; implementations
// serialize the check and insert per professional.
type Ledger interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	// ListOverlapping returns the non-canceled appointments of a
	// professional whose occupancy intersects iv, ordered by start.
	// A future reschedule operation revalidating a moved appointment
	// must filter that appointment's own ID out of the result before
	// treating the rest as conflicts.
	ListOverlapping(ctx context.Context, professionalID uuid.UUID, iv timegrid.Interval) ([]*Appointment, error)
	// UpdateStatus persists Status, CanceledAt and CancelReason.
	UpdateStatus(ctx context.Context, a *Appointment) error
	UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
	ListByProfessional(ctx context.Context, professionalID uuid.UUID, from, to time.Time, limit, offset int) ([]*Appointment, int, error)
	// ListUpcoming returns non-canceled appointments of a patient
	// starting after the given instant, soonest first.
	ListUpcoming(ctx context.Context, patientID uuid.UUID, after time.Time, limit int) ([]*Appointment, error)
}
