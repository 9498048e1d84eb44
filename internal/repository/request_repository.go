package repository

import (
	"context"
	"errors"
	"time"

	"github.com/eduadmin/eduadmin-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrRequestResolved is returned when resolving a request that is no
	// longer pending.
	ErrRequestResolved = errors.New("schedule change request already resolved")
	// ErrClassNotReschedulable is returned when approval targets a class
	// that has already started, completed, or been cancelled.
	ErrClassNotReschedulable = errors.New("class can no longer be rescheduled")
)

const requestColumns = `id, class_id, requested_by, old_start_time, old_end_time,
	new_start_time, new_end_time, reason, status, teacher_response, created_at, updated_at`

// RequestRepository handles schedule change request data access.
type RequestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository creates a new RequestRepository.
func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

func scanRequest(row interface{ Scan(...any) error }) (*model.ScheduleChangeRequest, error) {
	q := &model.ScheduleChangeRequest{}
	err := row.Scan(
		&q.ID, &q.ClassID, &q.RequestedBy, &q.OldStartTime, &q.OldEndTime,
		&q.NewStartTime, &q.NewEndTime, &q.Reason, &q.Status, &q.TeacherResponse,
		&q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// GetByID retrieves a schedule change request.
func (r *RequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ScheduleChangeRequest, error) {
	return scanRequest(r.pool.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM schedule_change_requests WHERE id = $1`, id))
}

// List retrieves all schedule change requests, newest first.
func (r *RequestRepository) List(ctx context.Context) ([]model.ScheduleChangeRequest, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+requestColumns+` FROM schedule_change_requests ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []model.ScheduleChangeRequest{}
	for rows.Next() {
		q, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *q)
	}
	return requests, rows.Err()
}

// ListByTeacher retrieves requests touching classes taught by the given
// teacher, newest first.
func (r *RequestRepository) ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]model.ScheduleChangeRequest, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT q.id, q.class_id, q.requested_by, q.old_start_time, q.old_end_time,
			q.new_start_time, q.new_end_time, q.reason, q.status, q.teacher_response, q.created_at, q.updated_at
		 FROM schedule_change_requests q
		 JOIN classes c ON c.id = q.class_id
		 WHERE c.teacher_id = $1
		 ORDER BY q.created_at DESC`, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []model.ScheduleChangeRequest{}
	for rows.Next() {
		q, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *q)
	}
	return requests, rows.Err()
}

// Create inserts a new pending request. The old time range is the class's
// current schedule, captured by the caller.
func (r *RequestRepository) Create(ctx context.Context, q *model.ScheduleChangeRequest) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO schedule_change_requests
		   (class_id, requested_by, old_start_time, old_end_time, new_start_time, new_end_time, reason)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, status, created_at, updated_at`,
		q.ClassID, q.RequestedBy, q.OldStartTime, q.OldEndTime, q.NewStartTime, q.NewEndTime, q.Reason,
	).Scan(&q.ID, &q.Status, &q.CreatedAt, &q.UpdatedAt)
}

// Resolve marks a pending request approved or rejected. Approval rewrites the
// class's time range to the requested one and marks the class rescheduled,
// atomically with the request update; a class that has already started or
// ended aborts the whole resolution.
func (r *RequestRepository) Resolve(ctx context.Context, q *model.ScheduleChangeRequest, status model.RequestStatus, teacherResponse *string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE schedule_change_requests
		 SET status = $1, teacher_response = $2, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3 AND status = 'pending'`,
		status, teacherResponse, q.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRequestResolved
	}

	if status == model.RequestApproved {
		var updatedStart, updatedEnd time.Time
		err := tx.QueryRow(ctx,
			`UPDATE classes
			 SET start_time = $1, end_time = $2, status = 'rescheduled', updated_at = CURRENT_TIMESTAMP
			 WHERE id = $3 AND status IN ('scheduled', 'rescheduled')
			 RETURNING start_time, end_time`,
			q.NewStartTime, q.NewEndTime, q.ClassID,
		).Scan(&updatedStart, &updatedEnd)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrClassNotReschedulable
		}
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
