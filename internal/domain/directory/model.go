package directory

import (
	"time"

	"github.com/google/uuid"
)

// Specialty maps to the specialty table. DurationMinutes is the default
// appointment length copied onto appointments at booking time.
type Specialty struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Description     *string   `db:"description" json:"description,omitempty"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Professional maps to the professional table.
type Professional struct {
	ID            uuid.UUID `db:"id" json:"id"`
	FullName      string    `db:"full_name" json:"full_name"`
	SpecialtyID   uuid.UUID `db:"specialty_id" json:"specialty_id"`
	LicenseNumber string    `db:"license_number" json:"license_number"`
	Active        bool      `db:"active" json:"active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// ProfessionalProfile is a professional joined with their specialty,
// the shape booking needs to derive appointment duration.
type ProfessionalProfile struct {
	Professional
	SpecialtyName   string `db:"specialty_name" json:"specialty_name"`
	DurationMinutes int    `db:"duration_minutes" json:"duration_minutes"`
}

// SlotDuration returns the specialty default as a duration.
func (p *ProfessionalProfile) SlotDuration() time.Duration {
	return time.Duration(p.DurationMinutes) * time.Minute
}
