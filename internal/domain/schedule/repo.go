package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrWindowNotFound = errors.New("availability window not found")

type Repository interface {
	Create(ctx context.Context, w *WeeklyAvailability) error
	GetByID(ctx context.Context, id uuid.UUID) (*WeeklyAvailability, error)
	Update(ctx context.Context, w *WeeklyAvailability) error
	ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*WeeklyAvailability, error)
	// ListActiveWindows returns the active windows for one weekday,
	// ordered by start minute.
	ListActiveWindows(ctx context.Context, professionalID uuid.UUID, weekday time.Weekday) ([]*WeeklyAvailability, error)
}
