package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is the envelope published after a booking state change commits.
// Topic name equals Type; Key is the professional id so per-professional
// ordering is preserved by partitioning.
type Event struct {
	ID         uuid.UUID       `json:"id"`
	Type       string          `json:"type"`
	Key        string          `json:"key"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

const (
	TypeAppointmentBooked   = "appointment.booked"
	TypeAppointmentCanceled = "appointment.canceled"
	TypeAppointmentUpdated  = "appointment.updated"
)

// New builds an event envelope, marshaling payload to JSON.
func New(eventType, key string, payload any) (Event, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Payload:    body,
	}, nil
}

// Publisher delivers events to downstream consumers. Publishing happens
// after the database commit; delivery failures must not roll back bookings.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// NopPublisher discards events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
