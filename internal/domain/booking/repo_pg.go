package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/turnos/turnos/internal/domain/timegrid"
)

type ledgerPG struct{ pool *pgxpool.Pool }

func NewLedgerPG(pool *pgxpool.Pool) Ledger { return &ledgerPG{pool: pool} }

const apptCols = `id, patient_id, professional_id, specialty_id, start_time, duration_minutes,
	status, notes, canceled_at, cancel_reason, created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.ProfessionalID, &a.SpecialtyID, &a.StartTime, &a.DurationMinutes,
		&a.Status, &a.Notes, &a.CanceledAt, &a.CancelReason, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	return &a, err
}

// Create runs the overlap check and insert inside one transaction under
// a per-professional advisory lock, so two concurrent bookings for the
// same professional serialize at the database even across processes.
// An exclusion or unique violation raised by a constraint maps to the
// same conflict error as the explicit check.
func (r *ledgerPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	end := a.End()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, a.ProfessionalID.String()); err != nil {
		return err
	}

	var busyStart time.Time
	var busyMinutes int
	err = tx.QueryRow(ctx, `
		SELECT start_time, duration_minutes FROM appointment
		WHERE professional_id = $1 AND status <> 'canceled'
			AND start_time < $3
			AND start_time + make_interval(mins => duration_minutes) > $2
		ORDER BY start_time LIMIT 1`,
		a.ProfessionalID, a.StartTime, end).Scan(&busyStart, &busyMinutes)
	if err == nil {
		return &ConflictError{Start: busyStart, End: busyStart.Add(time.Duration(busyMinutes) * time.Minute)}
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO appointment (id, patient_id, professional_id, specialty_id, start_time, duration_minutes, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		a.ID, a.PatientID, a.ProfessionalID, a.SpecialtyID, a.StartTime, a.DurationMinutes, a.Status, a.Notes)
	if err != nil {
		if isConflict(err) {
			return &ConflictError{Start: a.StartTime, End: end}
		}
		return err
	}
	return tx.Commit(ctx)
}

func isConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && (pgErr.Code == "23P01" || pgErr.Code == "23505")
}

func (r *ledgerPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanAppointment(r.pool.QueryRow(ctx, `SELECT `+apptCols+` FROM appointment WHERE id = $1`, id))
}

func (r *ledgerPG) ListOverlapping(ctx context.Context, professionalID uuid.UUID, iv timegrid.Interval) ([]*Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+apptCols+` FROM appointment
		WHERE professional_id = $1 AND status <> 'canceled'
			AND start_time < $3
			AND start_time + make_interval(mins => duration_minutes) > $2
		ORDER BY start_time`,
		professionalID, iv.Start, iv.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func (r *ledgerPG) UpdateStatus(ctx context.Context, a *Appointment) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointment SET status=$2, canceled_at=$3, cancel_reason=$4, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.Status, a.CanceledAt, a.CancelReason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func (r *ledgerPG) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointment SET notes=$2, updated_at=NOW() WHERE id = $1`, id, notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func (r *ledgerPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM appointment WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+apptCols+` FROM appointment
		WHERE patient_id = $1
		ORDER BY start_time DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := collectAppointments(rows)
	return items, total, err
}

func (r *ledgerPG) ListByProfessional(ctx context.Context, professionalID uuid.UUID, from, to time.Time, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM appointment
		WHERE professional_id = $1 AND start_time >= $2 AND start_time < $3`,
		professionalID, from, to).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+apptCols+` FROM appointment
		WHERE professional_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time LIMIT $4 OFFSET $5`,
		professionalID, from, to, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := collectAppointments(rows)
	return items, total, err
}

func (r *ledgerPG) ListUpcoming(ctx context.Context, patientID uuid.UUID, after time.Time, limit int) ([]*Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+apptCols+` FROM appointment
		WHERE patient_id = $1 AND status <> 'canceled' AND start_time > $2
		ORDER BY start_time LIMIT $3`, patientID, after, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func collectAppointments(rows pgx.Rows) ([]*Appointment, error) {
	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
