package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const windowCols = `id, professional_id, weekday, start_minute, end_minute, active, created_at, updated_at`

func scanWindow(row pgx.Row) (*WeeklyAvailability, error) {
	var w WeeklyAvailability
	err := row.Scan(&w.ID, &w.ProfessionalID, &w.Weekday, &w.StartMinute, &w.EndMinute, &w.Active, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWindowNotFound
	}
	return &w, err
}

func (r *repoPG) Create(ctx context.Context, w *WeeklyAvailability) error {
	w.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO weekly_availability (id, professional_id, weekday, start_minute, end_minute, active)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		w.ID, w.ProfessionalID, w.Weekday, w.StartMinute, w.EndMinute, w.Active)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*WeeklyAvailability, error) {
	return scanWindow(r.pool.QueryRow(ctx, `SELECT `+windowCols+` FROM weekly_availability WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, w *WeeklyAvailability) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE weekly_availability SET weekday=$2, start_minute=$3, end_minute=$4, active=$5, updated_at=NOW()
		WHERE id = $1`,
		w.ID, w.Weekday, w.StartMinute, w.EndMinute, w.Active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWindowNotFound
	}
	return nil
}

func (r *repoPG) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*WeeklyAvailability, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+windowCols+` FROM weekly_availability
		WHERE professional_id = $1
		ORDER BY weekday, start_minute`, professionalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWindows(rows)
}

func (r *repoPG) ListActiveWindows(ctx context.Context, professionalID uuid.UUID, weekday time.Weekday) ([]*WeeklyAvailability, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+windowCols+` FROM weekly_availability
		WHERE professional_id = $1 AND weekday = $2 AND active
		ORDER BY start_minute`, professionalID, weekday)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWindows(rows)
}

func collectWindows(rows pgx.Rows) ([]*WeeklyAvailability, error) {
	var items []*WeeklyAvailability
	for rows.Next() {
		w, err := scanWindow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	return items, rows.Err()
}
