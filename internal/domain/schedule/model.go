package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/turnos/turnos/internal/domain/timegrid"
)

// WeeklyAvailability maps to the weekly_availability table. A window is a
// recurring daily range expressed in minutes from midnight UTC; a
// professional may hold several disjoint windows on the same weekday.
type WeeklyAvailability struct {
	ID             uuid.UUID    `db:"id" json:"id"`
	ProfessionalID uuid.UUID    `db:"professional_id" json:"professional_id"`
	Weekday        time.Weekday `db:"weekday" json:"weekday"`
	StartMinute    int          `db:"start_minute" json:"start_minute"`
	EndMinute      int          `db:"end_minute" json:"end_minute"`
	Active         bool         `db:"active" json:"active"`
	CreatedAt      time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at" json:"updated_at"`
}

const minutesPerDay = 24 * 60

// Valid reports whether the window sits inside a single day with a
// positive length.
func (w *WeeklyAvailability) Valid() bool {
	return w.StartMinute >= 0 && w.EndMinute <= minutesPerDay && w.StartMinute < w.EndMinute
}

// OverlapsWindow reports whether two windows on the same weekday share
// any time. Touching boundaries do not overlap. Both windows are
// materialized onto the same reference day so the comparison goes
// through the one interval-overlap predicate.
func (w *WeeklyAvailability) OverlapsWindow(other *WeeklyAvailability) bool {
	if w.Weekday != other.Weekday {
		return false
	}
	var day time.Time
	return timegrid.Overlaps(w.On(day), other.On(day))
}

// On materializes the window onto a calendar day. The day's weekday must
// match; the returned interval is in UTC.
func (w *WeeklyAvailability) On(day time.Time) timegrid.Interval {
	day = day.UTC()
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return timegrid.Interval{
		Start: midnight.Add(time.Duration(w.StartMinute) * time.Minute),
		End:   midnight.Add(time.Duration(w.EndMinute) * time.Minute),
	}
}
