package repository

import (
	"context"
	"time"

	"github.com/eduadmin/eduadmin-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// classJoinQuery resolves the student and teacher with left-outer joins.
const classJoinQuery = `
	SELECT c.id, c.student_id, c.teacher_id, c.subject, c.start_time, c.end_time,
	       c.duration, c.zoom_link, c.status, c.notes, c.created_at, c.updated_at,
	       s.id, s.name, s.email, s.age, s.level, s.package_id, s.assigned_teacher_id,
	       s.total_hours, s.remaining_hours, s.is_active, s.created_at, s.updated_at,
	       u.id, u.email, u.name, u.avatar_url, u.role, u.created_at, u.updated_at
	FROM classes c
	LEFT JOIN students s ON c.student_id = s.id
	LEFT JOIN users u ON c.teacher_id = u.id`

// ClassRepository handles class data access and the student hours ledger.
// Every write that consumes or restores hours runs the class write and the
// balance update in a single transaction; balance updates are always relative
// (`remaining_hours = remaining_hours ± x`) so concurrent writers cannot lose
// an update.
type ClassRepository struct {
	pool *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

func scanClassWithRelations(row interface{ Scan(...any) error }) (*model.ClassWithRelations, error) {
	c := &model.ClassWithRelations{}

	var (
		sID        *uuid.UUID
		sName      *string
		sEmail     *string
		sAge       *int
		sLevel     *model.StudentLevel
		sPackageID *uuid.UUID
		sTeacherID *uuid.UUID
		sTotal     *float64
		sRemaining *float64
		sActive    *bool
		sCreated   *time.Time
		sUpdated   *time.Time

		tID        *uuid.UUID
		tEmail     *string
		tName      *string
		tAvatarURL *string
		tRole      *model.Role
		tCreated   *time.Time
		tUpdated   *time.Time
	)

	err := row.Scan(
		&c.ID, &c.StudentID, &c.TeacherID, &c.Subject, &c.StartTime, &c.EndTime,
		&c.Duration, &c.ZoomLink, &c.Status, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
		&sID, &sName, &sEmail, &sAge, &sLevel, &sPackageID, &sTeacherID,
		&sTotal, &sRemaining, &sActive, &sCreated, &sUpdated,
		&tID, &tEmail, &tName, &tAvatarURL, &tRole, &tCreated, &tUpdated,
	)
	if err != nil {
		return nil, err
	}

	if sID != nil {
		c.Student = &model.Student{
			ID:                *sID,
			Name:              *sName,
			Email:             sEmail,
			Age:               sAge,
			Level:             *sLevel,
			PackageID:         sPackageID,
			AssignedTeacherID: sTeacherID,
			TotalHours:        *sTotal,
			RemainingHours:    *sRemaining,
			IsActive:          *sActive,
			CreatedAt:         *sCreated,
			UpdatedAt:         *sUpdated,
		}
	}
	if tID != nil {
		c.Teacher = &model.User{
			ID:        *tID,
			Email:     *tEmail,
			Name:      *tName,
			AvatarURL: tAvatarURL,
			Role:      *tRole,
			CreatedAt: *tCreated,
			UpdatedAt: *tUpdated,
		}
	}
	return c, nil
}

// GetByID retrieves a class with relations.
func (r *ClassRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ClassWithRelations, error) {
	return scanClassWithRelations(r.pool.QueryRow(ctx, classJoinQuery+` WHERE c.id = $1`, id))
}

// List retrieves classes with relations, newest start first, optionally
// restricted to classes starting within [from, to].
func (r *ClassRepository) List(ctx context.Context, from, to *time.Time) ([]model.ClassWithRelations, error) {
	query := classJoinQuery
	var args []any
	if from != nil && to != nil {
		query += ` WHERE c.start_time >= $1 AND c.start_time <= $2`
		args = append(args, *from, *to)
	}
	query += ` ORDER BY c.start_time DESC`
	return r.listQuery(ctx, query, args...)
}

// ListByTeacher retrieves a single teacher's classes with relations, newest
// start first, optionally restricted to classes starting within [from, to].
func (r *ClassRepository) ListByTeacher(ctx context.Context, teacherID uuid.UUID, from, to *time.Time) ([]model.ClassWithRelations, error) {
	query := classJoinQuery + ` WHERE c.teacher_id = $1`
	args := []any{teacherID}
	if from != nil && to != nil {
		query += ` AND c.start_time >= $2 AND c.start_time <= $3`
		args = append(args, *from, *to)
	}
	query += ` ORDER BY c.start_time DESC`
	return r.listQuery(ctx, query, args...)
}

func (r *ClassRepository) listQuery(ctx context.Context, query string, args ...any) ([]model.ClassWithRelations, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := []model.ClassWithRelations{}
	for rows.Next() {
		c, err := scanClassWithRelations(rows)
		if err != nil {
			return nil, err
		}
		classes = append(classes, *c)
	}
	return classes, rows.Err()
}

// Create inserts the class row and debits the student's remaining hours in
// one transaction. The debit is a guarded relative update: zero rows affected
// means the student is missing, inactive, or has less balance than the class
// duration, and the whole transaction rolls back.
func (r *ClassRepository) Create(ctx context.Context, c *model.Class) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE students
		 SET remaining_hours = remaining_hours - $1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2 AND is_active AND remaining_hours >= $1`,
		c.Duration, c.StudentID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM students WHERE id = $1 AND is_active)`,
			c.StudentID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrInsufficientHours
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO classes (student_id, teacher_id, subject, start_time, end_time, duration, zoom_link, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, status, created_at, updated_at`,
		c.StudentID, c.TeacherID, c.Subject, c.StartTime, c.EndTime, c.Duration, c.ZoomLink, c.Notes,
	).Scan(&c.ID, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// UpdateDetails modifies a class's schedule details. Status and duration are
// immutable here: status goes through UpdateStatus, and reissuing a class
// with a different duration means cancelling and recreating it so the ledger
// stays consistent.
func (r *ClassRepository) UpdateDetails(ctx context.Context, c *model.Class) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE classes SET subject = $1, start_time = $2, end_time = $3, zoom_link = $4, notes = $5, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $6`,
		c.Subject, c.StartTime, c.EndTime, c.ZoomLink, c.Notes, c.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus performs a compare-and-set transition from one status to
// another, crediting restoreHours back to the student (clamped at the granted
// total) when the transition releases the reserved time. Zero restoreHours
// skips the credit.
func (r *ClassRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.ClassStatus, studentID uuid.UUID, restoreHours float64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE classes SET status = $1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2 AND status = $3`,
		to, id, from,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStaleStatus
	}

	if restoreHours > 0 {
		if err := creditHours(ctx, tx, studentID, restoreHours); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Delete hard-deletes a class, crediting restoreHours back to the student in
// the same transaction. The delete is guarded on the status the caller based
// its restore decision on.
func (r *ClassRepository) Delete(ctx context.Context, id uuid.UUID, expectedStatus model.ClassStatus, studentID uuid.UUID, restoreHours float64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`DELETE FROM classes WHERE id = $1 AND status = $2`, id, expectedStatus)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStaleStatus
	}

	if restoreHours > 0 {
		if err := creditHours(ctx, tx, studentID, restoreHours); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// creditHours returns hours to a student's balance, clamped so the balance
// never exceeds the granted total.
func creditHours(ctx context.Context, tx pgx.Tx, studentID uuid.UUID, hours float64) error {
	_, err := tx.Exec(ctx,
		`UPDATE students
		 SET remaining_hours = LEAST(total_hours, remaining_hours + $1), updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2`,
		hours, studentID,
	)
	return err
}
