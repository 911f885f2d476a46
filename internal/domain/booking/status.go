package booking

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCanceled   Status = "canceled"
	StatusNoShow     Status = "no_show"
)

var validStatuses = map[Status]bool{
	StatusScheduled:  true,
	StatusConfirmed:  true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusCanceled:   true,
	StatusNoShow:     true,
}

func (s Status) Valid() bool { return validStatuses[s] }

// Terminal states admit no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCanceled || s == StatusNoShow
}

var transitions = map[Status][]Status{
	StatusScheduled:  {StatusConfirmed, StatusCanceled, StatusNoShow},
	StatusConfirmed:  {StatusInProgress, StatusCanceled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCanceled},
}

// CanTransition reports whether the move from s to next is allowed.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
