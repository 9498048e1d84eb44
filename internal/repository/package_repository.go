package repository

import (
	"context"
	"errors"

	"github.com/eduadmin/eduadmin-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrDuplicatePackageName = errors.New("package with this name already exists")

const packageColumns = `id, name, hours, price, description, is_active, created_at, updated_at`

// PackageRepository handles learning package data access.
type PackageRepository struct {
	pool *pgxpool.Pool
}

// NewPackageRepository creates a new PackageRepository.
func NewPackageRepository(pool *pgxpool.Pool) *PackageRepository {
	return &PackageRepository{pool: pool}
}

func scanPackage(row interface{ Scan(...any) error }) (*model.Package, error) {
	p := &model.Package{}
	err := row.Scan(&p.ID, &p.Name, &p.Hours, &p.Price, &p.Description, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID retrieves a package by ID, active or not. Deactivated packages stay
// resolvable as relations on students enrolled while they were active.
func (r *PackageRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Package, error) {
	return scanPackage(r.pool.QueryRow(ctx,
		`SELECT `+packageColumns+` FROM packages WHERE id = $1`, id))
}

// ListActive retrieves active packages ordered by hours ascending.
func (r *PackageRepository) ListActive(ctx context.Context) ([]model.Package, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+packageColumns+` FROM packages WHERE is_active ORDER BY hours`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	packages := []model.Package{}
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		packages = append(packages, *p)
	}
	return packages, rows.Err()
}

// Create inserts a new package.
func (r *PackageRepository) Create(ctx context.Context, p *model.Package) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO packages (name, hours, price, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, is_active, created_at, updated_at`,
		p.Name, p.Hours, p.Price, p.Description,
	).Scan(&p.ID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicatePackageName
		}
		return err
	}
	return nil
}

// Update modifies an existing package.
func (r *PackageRepository) Update(ctx context.Context, p *model.Package) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE packages SET name = $1, hours = $2, price = $3, description = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5`,
		p.Name, p.Hours, p.Price, p.Description, p.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicatePackageName
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Deactivate soft-deletes a package. Students already assigned keep their
// reference and granted hours.
func (r *PackageRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE packages SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
