package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrLeadTime rejects bookings that start at or before now plus the
	// configured lead time.
	ErrLeadTime = errors.New("appointment starts inside the booking lead time")
	// ErrOutsideAvailability rejects bookings that do not fit entirely
	// inside an active availability window.
	ErrOutsideAvailability = errors.New("appointment falls outside the professional's availability")
	ErrSlotConflict        = errors.New("slot already booked")
	ErrInvalidTransition   = errors.New("invalid status transition")
	// ErrForbidden rejects actors operating on appointments they do not
	// own.
	ErrForbidden = errors.New("actor may not operate on this appointment")
)

// ConflictError carries the occupied interval that blocked a booking.
// It unwraps to ErrSlotConflict.
type ConflictError struct {
	Start time.Time
	End   time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot already booked from %s to %s",
		e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

func (e *ConflictError) Unwrap() error { return ErrSlotConflict }

// TransitionError carries the rejected status move. It unwraps to
// ErrInvalidTransition.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition appointment from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
