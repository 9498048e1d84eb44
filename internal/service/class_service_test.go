package service

import (
	"testing"

	"github.com/eduadmin/eduadmin-backend/internal/model"
)

func TestHoursReleasedByTransition(t *testing.T) {
	cases := []struct {
		to       model.ClassStatus
		duration float64
		want     float64
	}{
		{model.StatusCancelled, 1.5, 1.5},
		{model.StatusCancelled, 2.0, 2.0},
		{model.StatusCompleted, 1.5, 0},
		{model.StatusOngoing, 1.5, 0},
		{model.StatusRescheduled, 1.5, 0},
		{model.StatusScheduled, 1.5, 0},
	}

	for _, tc := range cases {
		if got := hoursReleasedByTransition(tc.to, tc.duration); got != tc.want {
			t.Errorf("hoursReleasedByTransition(%s, %.2f) = %.2f, want %.2f", tc.to, tc.duration, got, tc.want)
		}
	}
}

func TestHoursReleasedByDelete(t *testing.T) {
	cases := []struct {
		status   model.ClassStatus
		duration float64
		want     float64
	}{
		// Classes that never ran give back their reservation.
		{model.StatusScheduled, 1.5, 1.5},
		{model.StatusOngoing, 2.0, 2.0},
		{model.StatusRescheduled, 1.0, 1.0},
		// Completed consumed the hours, cancelled already restored them.
		{model.StatusCompleted, 1.5, 0},
		{model.StatusCancelled, 1.5, 0},
	}

	for _, tc := range cases {
		if got := hoursReleasedByDelete(tc.status, tc.duration); got != tc.want {
			t.Errorf("hoursReleasedByDelete(%s, %.2f) = %.2f, want %.2f", tc.status, tc.duration, got, tc.want)
		}
	}
}
