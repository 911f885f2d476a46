package booking

import "testing"

func TestStatus_CanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusScheduled, StatusConfirmed, true},
		{StatusScheduled, StatusCanceled, true},
		{StatusScheduled, StatusNoShow, true},
		{StatusScheduled, StatusCompleted, false},
		{StatusScheduled, StatusInProgress, false},
		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusCanceled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusCompleted, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCanceled, true},
		{StatusInProgress, StatusNoShow, false},
		{StatusCompleted, StatusScheduled, false},
		{StatusCompleted, StatusCanceled, false},
		{StatusCanceled, StatusScheduled, false},
		{StatusCanceled, StatusConfirmed, false},
		{StatusNoShow, StatusScheduled, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.want {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestStatus_Terminal(t *testing.T) {
	terminal := []Status{StatusCompleted, StatusCanceled, StatusNoShow}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
		for next := range validStatuses {
			if s.CanTransition(next) {
				t.Errorf("terminal state %s must not transition to %s", s, next)
			}
		}
	}
	for _, s := range []Status{StatusScheduled, StatusConfirmed, StatusInProgress} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestStatus_Valid(t *testing.T) {
	if !StatusScheduled.Valid() {
		t.Error("scheduled should be valid")
	}
	if Status("bogus").Valid() {
		t.Error("bogus should not be valid")
	}
	if Status("").Valid() {
		t.Error("empty status should not be valid")
	}
}
