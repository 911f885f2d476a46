package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type specialtyRepoPG struct{ pool *pgxpool.Pool }

func NewSpecialtyRepoPG(pool *pgxpool.Pool) SpecialtyRepository { return &specialtyRepoPG{pool: pool} }

const specialtyCols = `id, name, description, duration_minutes, created_at, updated_at`

func scanSpecialty(row pgx.Row) (*Specialty, error) {
	var sp Specialty
	err := row.Scan(&sp.ID, &sp.Name, &sp.Description, &sp.DurationMinutes, &sp.CreatedAt, &sp.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSpecialtyNotFound
	}
	return &sp, err
}

func (r *specialtyRepoPG) Create(ctx context.Context, sp *Specialty) error {
	sp.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO specialty (id, name, description, duration_minutes)
		VALUES ($1,$2,$3,$4)`,
		sp.ID, sp.Name, sp.Description, sp.DurationMinutes)
	return err
}

func (r *specialtyRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Specialty, error) {
	return scanSpecialty(r.pool.QueryRow(ctx, `SELECT `+specialtyCols+` FROM specialty WHERE id = $1`, id))
}

func (r *specialtyRepoPG) Update(ctx context.Context, sp *Specialty) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE specialty SET name=$2, description=$3, duration_minutes=$4, updated_at=NOW()
		WHERE id = $1`,
		sp.ID, sp.Name, sp.Description, sp.DurationMinutes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSpecialtyNotFound
	}
	return nil
}

func (r *specialtyRepoPG) List(ctx context.Context, limit, offset int) ([]*Specialty, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM specialty`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+specialtyCols+` FROM specialty ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Specialty
	for rows.Next() {
		sp, err := scanSpecialty(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, sp)
	}
	return items, total, rows.Err()
}

type professionalRepoPG struct{ pool *pgxpool.Pool }

func NewProfessionalRepoPG(pool *pgxpool.Pool) ProfessionalRepository {
	return &professionalRepoPG{pool: pool}
}

const professionalCols = `id, full_name, specialty_id, license_number, active, created_at, updated_at`

func scanProfessional(row pgx.Row) (*Professional, error) {
	var p Professional
	err := row.Scan(&p.ID, &p.FullName, &p.SpecialtyID, &p.LicenseNumber, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfessionalNotFound
	}
	return &p, err
}

func (r *professionalRepoPG) Create(ctx context.Context, p *Professional) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO professional (id, full_name, specialty_id, license_number, active)
		VALUES ($1,$2,$3,$4,$5)`,
		p.ID, p.FullName, p.SpecialtyID, p.LicenseNumber, p.Active)
	return err
}

func (r *professionalRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Professional, error) {
	return scanProfessional(r.pool.QueryRow(ctx, `SELECT `+professionalCols+` FROM professional WHERE id = $1`, id))
}

func (r *professionalRepoPG) GetProfile(ctx context.Context, id uuid.UUID) (*ProfessionalProfile, error) {
	var p ProfessionalProfile
	err := r.pool.QueryRow(ctx, `
		SELECT p.id, p.full_name, p.specialty_id, p.license_number, p.active,
			p.created_at, p.updated_at, s.name, s.duration_minutes
		FROM professional p
		JOIN specialty s ON s.id = p.specialty_id
		WHERE p.id = $1 AND p.active`, id).
		Scan(&p.ID, &p.FullName, &p.SpecialtyID, &p.LicenseNumber, &p.Active,
			&p.CreatedAt, &p.UpdatedAt, &p.SpecialtyName, &p.DurationMinutes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfessionalNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *professionalRepoPG) Update(ctx context.Context, p *Professional) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE professional SET full_name=$2, specialty_id=$3, license_number=$4, active=$5, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.FullName, p.SpecialtyID, p.LicenseNumber, p.Active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProfessionalNotFound
	}
	return nil
}

func (r *professionalRepoPG) ListBySpecialty(ctx context.Context, specialtyID uuid.UUID, limit, offset int) ([]*Professional, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM professional WHERE specialty_id = $1 AND active`, specialtyID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+professionalCols+` FROM professional
		WHERE specialty_id = $1 AND active
		ORDER BY full_name LIMIT $2 OFFSET $3`, specialtyID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectProfessionals(rows, total)
}

func (r *professionalRepoPG) List(ctx context.Context, limit, offset int) ([]*Professional, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM professional`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+professionalCols+` FROM professional ORDER BY full_name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectProfessionals(rows, total)
}

func collectProfessionals(rows pgx.Rows, total int) ([]*Professional, int, error) {
	var items []*Professional
	for rows.Next() {
		p, err := scanProfessional(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}
