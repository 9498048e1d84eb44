package repository

import (
	"context"
	"errors"
	"time"

	"github.com/eduadmin/eduadmin-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDuplicateStudentEmail = errors.New("student with this email already exists")

// studentJoinQuery resolves the package and assigned teacher with left-outer
// joins: a missing relation yields NULL columns, never an error.
const studentJoinQuery = `
	SELECT s.id, s.name, s.email, s.age, s.level, s.package_id, s.assigned_teacher_id,
	       s.total_hours, s.remaining_hours, s.is_active, s.created_at, s.updated_at,
	       p.id, p.name, p.hours, p.price, p.description, p.is_active, p.created_at, p.updated_at,
	       u.id, u.email, u.name, u.avatar_url, u.role, u.created_at, u.updated_at
	FROM students s
	LEFT JOIN packages p ON s.package_id = p.id
	LEFT JOIN users u ON s.assigned_teacher_id = u.id`

// StudentRepository handles student data access.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

func scanStudentWithRelations(row interface{ Scan(...any) error }) (*model.StudentWithRelations, error) {
	s := &model.StudentWithRelations{}

	var (
		pkgID          *uuid.UUID
		pkgName        *string
		pkgHours       *int
		pkgPrice       *float64
		pkgDescription *string
		pkgActive      *bool
		pkgCreated     *time.Time
		pkgUpdated     *time.Time

		tID        *uuid.UUID
		tEmail     *string
		tName      *string
		tAvatarURL *string
		tRole      *model.Role
		tCreated   *time.Time
		tUpdated   *time.Time
	)

	err := row.Scan(
		&s.ID, &s.Name, &s.Email, &s.Age, &s.Level, &s.PackageID, &s.AssignedTeacherID,
		&s.TotalHours, &s.RemainingHours, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		&pkgID, &pkgName, &pkgHours, &pkgPrice, &pkgDescription, &pkgActive, &pkgCreated, &pkgUpdated,
		&tID, &tEmail, &tName, &tAvatarURL, &tRole, &tCreated, &tUpdated,
	)
	if err != nil {
		return nil, err
	}

	if pkgID != nil {
		s.Package = &model.Package{
			ID:          *pkgID,
			Name:        *pkgName,
			Hours:       *pkgHours,
			Price:       pkgPrice,
			Description: pkgDescription,
			IsActive:    *pkgActive,
			CreatedAt:   *pkgCreated,
			UpdatedAt:   *pkgUpdated,
		}
	}
	if tID != nil {
		s.AssignedTeacher = &model.User{
			ID:        *tID,
			Email:     *tEmail,
			Name:      *tName,
			AvatarURL: tAvatarURL,
			Role:      *tRole,
			CreatedAt: *tCreated,
			UpdatedAt: *tUpdated,
		}
	}
	return s, nil
}

// GetByID retrieves a student with relations, active or not.
func (r *StudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.StudentWithRelations, error) {
	return scanStudentWithRelations(r.pool.QueryRow(ctx, studentJoinQuery+` WHERE s.id = $1`, id))
}

// ListActive retrieves active students with relations, newest first.
func (r *StudentRepository) ListActive(ctx context.Context) ([]model.StudentWithRelations, error) {
	rows, err := r.pool.Query(ctx, studentJoinQuery+` WHERE s.is_active ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []model.StudentWithRelations{}
	for rows.Next() {
		s, err := scanStudentWithRelations(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *s)
	}
	return students, rows.Err()
}

// Create inserts a new student. Hour balances must already be populated from
// the selected package by the caller; remaining always starts equal to total.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO students (name, email, age, level, package_id, assigned_teacher_id, total_hours, remaining_hours)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		 RETURNING id, is_active, created_at, updated_at`,
		s.Name, s.Email, s.Age, s.Level, s.PackageID, s.AssignedTeacherID, s.TotalHours,
	).Scan(&s.ID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrDuplicateStudentEmail
			case "23503":
				return ErrNotFound // referenced package or teacher does not exist
			}
		}
		return err
	}
	s.RemainingHours = s.TotalHours
	return nil
}

// Update modifies a student's profile. Hour balances are excluded: only the
// ledger mutates them.
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE students SET name = $1, email = $2, age = $3, level = $4, package_id = $5, assigned_teacher_id = $6, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7`,
		s.Name, s.Email, s.Age, s.Level, s.PackageID, s.AssignedTeacherID, s.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrDuplicateStudentEmail
			case "23503":
				return ErrNotFound
			}
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Deactivate soft-deletes a student. Historical classes keep their reference.
func (r *StudentRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE students SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
