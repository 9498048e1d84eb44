package model

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to ClassStatus
		want     bool
	}{
		{StatusScheduled, StatusOngoing, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusScheduled, StatusRescheduled, true},
		{StatusScheduled, StatusCompleted, false},
		{StatusOngoing, StatusCompleted, true},
		{StatusOngoing, StatusCancelled, true},
		{StatusOngoing, StatusScheduled, false},
		{StatusOngoing, StatusRescheduled, false},
		{StatusRescheduled, StatusScheduled, true},
		{StatusRescheduled, StatusOngoing, false},
		{StatusRescheduled, StatusCancelled, false},
		{StatusCompleted, StatusScheduled, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusScheduled, false},
		{StatusCancelled, StatusOngoing, false},
		// Self transitions are never allowed.
		{StatusScheduled, StatusScheduled, false},
		{StatusOngoing, StatusOngoing, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestIsTerminalStatus(t *testing.T) {
	terminal := []ClassStatus{StatusCompleted, StatusCancelled}
	for _, s := range terminal {
		if !IsTerminalStatus(s) {
			t.Errorf("expected %s to be terminal", s)
		}
	}

	open := []ClassStatus{StatusScheduled, StatusOngoing, StatusRescheduled}
	for _, s := range open {
		if IsTerminalStatus(s) {
			t.Errorf("expected %s to be non-terminal", s)
		}
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []ClassStatus{StatusScheduled, StatusOngoing, StatusCompleted, StatusCancelled, StatusRescheduled} {
		if !IsValidStatus(s) {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if IsValidStatus("paused") {
		t.Error("expected unknown status to be invalid")
	}
}
