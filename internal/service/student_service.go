package service

import (
	"context"
	"errors"

	"github.com/eduadmin/eduadmin-backend/internal/model"
	"github.com/eduadmin/eduadmin-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrPackageInactive is returned when enrolling a student into a deactivated
// package. Existing enrollments are unaffected by deactivation.
var ErrPackageInactive = errors.New("package is no longer active")

// StudentService handles student business logic.
type StudentService struct {
	studentRepo *repository.StudentRepository
	packageRepo *repository.PackageRepository
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentRepo *repository.StudentRepository, packageRepo *repository.PackageRepository) *StudentService {
	return &StudentService{studentRepo: studentRepo, packageRepo: packageRepo}
}

// GetByID retrieves a student with relations.
func (s *StudentService) GetByID(ctx context.Context, id uuid.UUID) (*model.StudentWithRelations, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// ListActive retrieves active students with relations.
func (s *StudentService) ListActive(ctx context.Context) ([]model.StudentWithRelations, error) {
	return s.studentRepo.ListActive(ctx)
}

// Create enrolls a new student. When a package is selected, both hour
// balances are granted from its hour count, so remaining always equals total
// at enrollment.
func (s *StudentService) Create(ctx context.Context, student *model.Student) error {
	if student.Level == "" {
		student.Level = model.LevelBeginner
	}

	if student.PackageID != nil {
		pkg, err := s.packageRepo.GetByID(ctx, *student.PackageID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return repository.ErrNotFound
			}
			return err
		}
		if !pkg.IsActive {
			return ErrPackageInactive
		}
		student.TotalHours = float64(pkg.Hours)
	}
	student.RemainingHours = student.TotalHours

	return s.studentRepo.Create(ctx, student)
}

// Update modifies a student's profile. Switching packages does not re-grant
// hours; balances only move through the class ledger.
func (s *StudentService) Update(ctx context.Context, student *model.Student) error {
	return s.studentRepo.Update(ctx, student)
}

// Deactivate soft-deletes a student.
func (s *StudentService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.studentRepo.Deactivate(ctx, id)
}
