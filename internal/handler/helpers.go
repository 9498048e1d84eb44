package handler

import (
	"errors"

	"github.com/eduadmin/eduadmin-backend/internal/repository"
	"github.com/jackc/pgx/v5"
)

// isNotFound reports whether err means the row does not exist, whichever
// layer produced it.
func isNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, repository.ErrNotFound)
}
