package service

import (
	"context"

	"github.com/eduadmin/eduadmin-backend/internal/model"
	"github.com/eduadmin/eduadmin-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PackageService handles learning package business logic.
type PackageService struct {
	packageRepo *repository.PackageRepository
	log         zerolog.Logger
}

// NewPackageService creates a new PackageService.
func NewPackageService(packageRepo *repository.PackageRepository, log zerolog.Logger) *PackageService {
	return &PackageService{
		packageRepo: packageRepo,
		log:         log.With().Str("component", "package_service").Logger(),
	}
}

// GetByID retrieves a package.
func (s *PackageService) GetByID(ctx context.Context, id uuid.UUID) (*model.Package, error) {
	return s.packageRepo.GetByID(ctx, id)
}

// ListActive retrieves active packages, smallest bundle first.
func (s *PackageService) ListActive(ctx context.Context) ([]model.Package, error) {
	return s.packageRepo.ListActive(ctx)
}

// Create creates a new package.
func (s *PackageService) Create(ctx context.Context, p *model.Package) error {
	return s.packageRepo.Create(ctx, p)
}

// Update modifies an existing package. Changing the hour count does not
// retroactively adjust balances of already-enrolled students.
func (s *PackageService) Update(ctx context.Context, p *model.Package) error {
	return s.packageRepo.Update(ctx, p)
}

// Deactivate soft-deletes a package.
func (s *PackageService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.packageRepo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("package_id", id.String()).Msg("Package deactivated")
	return nil
}
