package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrWindowOverlap is returned when a window would share time with an
// existing active window on the same weekday.
var ErrWindowOverlap = errors.New("availability window overlaps an existing window")

type Service struct {
	windows Repository
}

func NewService(windows Repository) *Service {
	return &Service{windows: windows}
}

func (s *Service) validate(ctx context.Context, w *WeeklyAvailability) error {
	if w.ProfessionalID == uuid.Nil {
		return fmt.Errorf("professional_id is required")
	}
	if w.Weekday < time.Sunday || w.Weekday > time.Saturday {
		return fmt.Errorf("invalid weekday: %d", w.Weekday)
	}
	if !w.Valid() {
		return fmt.Errorf("window must satisfy 0 <= start < end <= %d", minutesPerDay)
	}
	existing, err := s.windows.ListActiveWindows(ctx, w.ProfessionalID, w.Weekday)
	if err != nil {
		return err
	}
	for _, other := range existing {
		if other.ID == w.ID {
			continue
		}
		if w.OverlapsWindow(other) {
			return ErrWindowOverlap
		}
	}
	return nil
}

func (s *Service) CreateWindow(ctx context.Context, w *WeeklyAvailability) error {
	w.Active = true
	if err := s.validate(ctx, w); err != nil {
		return err
	}
	return s.windows.Create(ctx, w)
}

func (s *Service) GetWindow(ctx context.Context, id uuid.UUID) (*WeeklyAvailability, error) {
	return s.windows.GetByID(ctx, id)
}

func (s *Service) UpdateWindow(ctx context.Context, w *WeeklyAvailability) error {
	current, err := s.windows.GetByID(ctx, w.ID)
	if err != nil {
		return err
	}
	w.ProfessionalID = current.ProfessionalID
	if w.Active {
		if err := s.validate(ctx, w); err != nil {
			return err
		}
	}
	return s.windows.Update(ctx, w)
}

// DeactivateWindow retires a window without deleting it; existing
// appointments inside it are untouched.
func (s *Service) DeactivateWindow(ctx context.Context, id uuid.UUID) error {
	w, err := s.windows.GetByID(ctx, id)
	if err != nil {
		return err
	}
	w.Active = false
	return s.windows.Update(ctx, w)
}

func (s *Service) ListWindows(ctx context.Context, professionalID uuid.UUID) ([]*WeeklyAvailability, error) {
	return s.windows.ListByProfessional(ctx, professionalID)
}

// ActiveWindowsOn returns the active windows covering the weekday of the
// given day.
func (s *Service) ActiveWindowsOn(ctx context.Context, professionalID uuid.UUID, day time.Time) ([]*WeeklyAvailability, error) {
	return s.windows.ListActiveWindows(ctx, professionalID, day.UTC().Weekday())
}
