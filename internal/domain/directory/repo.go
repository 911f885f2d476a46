package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrSpecialtyNotFound    = errors.New("specialty not found")
	ErrProfessionalNotFound = errors.New("professional not found")
)

type SpecialtyRepository interface {
	Create(ctx context.Context, sp *Specialty) error
	GetByID(ctx context.Context, id uuid.UUID) (*Specialty, error)
	Update(ctx context.Context, sp *Specialty) error
	List(ctx context.Context, limit, offset int) ([]*Specialty, int, error)
}

type ProfessionalRepository interface {
	Create(ctx context.Context, p *Professional) error
	GetByID(ctx context.Context, id uuid.UUID) (*Professional, error)
	// GetProfile joins the professional with its specialty; only active
	// professionals are returned.
	GetProfile(ctx context.Context, id uuid.UUID) (*ProfessionalProfile, error)
	Update(ctx context.Context, p *Professional) error
	ListBySpecialty(ctx context.Context, specialtyID uuid.UUID, limit, offset int) ([]*Professional, int, error)
	List(ctx context.Context, limit, offset int) ([]*Professional, int, error)
}
