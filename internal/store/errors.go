package store

import (
	"errors"

	domainerrors "github.com/bookcatalog/catalog-server/internal/errors"
)

// Sentinel errors.
var (
	ErrNotFound      = domainerrors.NotFound("resource not found")
	ErrAlreadyExists = domainerrors.Validation("resource already exists")

	// ErrConditionFailed means a conditional write matched no row: the row is
	// missing or belongs to someone else. Callers re-read to tell which.
	ErrConditionFailed = errors.New("conditional write matched no rows")
)
