package directory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	specialties   SpecialtyRepository
	professionals ProfessionalRepository
}

func NewService(specialties SpecialtyRepository, professionals ProfessionalRepository) *Service {
	return &Service{specialties: specialties, professionals: professionals}
}

func (s *Service) CreateSpecialty(ctx context.Context, sp *Specialty) error {
	sp.Name = strings.TrimSpace(sp.Name)
	if sp.Name == "" {
		return fmt.Errorf("name is required")
	}
	if sp.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	return s.specialties.Create(ctx, sp)
}

func (s *Service) GetSpecialty(ctx context.Context, id uuid.UUID) (*Specialty, error) {
	return s.specialties.GetByID(ctx, id)
}

func (s *Service) UpdateSpecialty(ctx context.Context, sp *Specialty) error {
	if sp.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	return s.specialties.Update(ctx, sp)
}

func (s *Service) ListSpecialties(ctx context.Context, limit, offset int) ([]*Specialty, int, error) {
	return s.specialties.List(ctx, limit, offset)
}

func (s *Service) CreateProfessional(ctx context.Context, p *Professional) error {
	p.FullName = strings.TrimSpace(p.FullName)
	if p.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	if p.SpecialtyID == uuid.Nil {
		return fmt.Errorf("specialty_id is required")
	}
	if strings.TrimSpace(p.LicenseNumber) == "" {
		return fmt.Errorf("license_number is required")
	}
	if _, err := s.specialties.GetByID(ctx, p.SpecialtyID); err != nil {
		return err
	}
	return s.professionals.Create(ctx, p)
}

func (s *Service) GetProfessional(ctx context.Context, id uuid.UUID) (*Professional, error) {
	return s.professionals.GetByID(ctx, id)
}

// GetProfile returns the active professional joined with their specialty.
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*ProfessionalProfile, error) {
	return s.professionals.GetProfile(ctx, id)
}

func (s *Service) UpdateProfessional(ctx context.Context, p *Professional) error {
	if p.SpecialtyID != uuid.Nil {
		if _, err := s.specialties.GetByID(ctx, p.SpecialtyID); err != nil {
			return err
		}
	}
	return s.professionals.Update(ctx, p)
}

func (s *Service) ListProfessionals(ctx context.Context, specialtyID uuid.UUID, limit, offset int) ([]*Professional, int, error) {
	if specialtyID != uuid.Nil {
		return s.professionals.ListBySpecialty(ctx, specialtyID, limit, offset)
	}
	return s.professionals.List(ctx, limit, offset)
}
