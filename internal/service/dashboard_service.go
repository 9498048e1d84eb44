package service

import (
	"context"
	"time"

	"github.com/eduadmin/eduadmin-backend/internal/model"
	"github.com/eduadmin/eduadmin-backend/internal/repository"
)

// DashboardService computes the admin landing page snapshot.
type DashboardService struct {
	dashboardRepo *repository.DashboardRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(dashboardRepo *repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// GetSummary computes today's metrics. "Today" is the calendar day in the
// given location, so centers away from UTC see their own day boundary.
func (s *DashboardService) GetSummary(ctx context.Context, now time.Time, loc *time.Location) (*model.DashboardSummary, error) {
	dayStart, dayEnd := dayBounds(now, loc)

	totalStudents, totalTeachers, todayClasses, ongoingClasses, err := s.dashboardRepo.GetSummaryCounts(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	return &model.DashboardSummary{
		TotalStudents:  totalStudents,
		TotalTeachers:  totalTeachers,
		TodayClasses:   todayClasses,
		OngoingClasses: ongoingClasses,
	}, nil
}

// dayBounds returns the half-open interval [start of day, start of next day)
// containing now in the given location.
func dayBounds(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
