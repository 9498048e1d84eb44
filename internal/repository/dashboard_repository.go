package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardRepository handles dashboard data access.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetSummaryCounts retrieves the high-level metrics for the dashboard:
// active students, teacher-role users, classes starting within [dayStart,
// dayEnd), and classes currently ongoing. Counts are recomputed on every
// call; there is no cached or materialized view.
func (r *DashboardRepository) GetSummaryCounts(ctx context.Context, dayStart, dayEnd time.Time) (totalStudents, totalTeachers, todayClasses, ongoingClasses int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM students WHERE is_active),
			(SELECT COUNT(*) FROM users WHERE role = 'teacher'),
			(SELECT COUNT(*) FROM classes WHERE start_time >= $1 AND start_time < $2),
			(SELECT COUNT(*) FROM classes WHERE status = 'ongoing')`,
		dayStart, dayEnd,
	).Scan(&totalStudents, &totalTeachers, &todayClasses, &ongoingClasses)
	return
}
