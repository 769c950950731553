package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/bookcatalog/catalog-server/internal/domain"
	"github.com/bookcatalog/catalog-server/internal/store"
)

// userColumns must match the scan order in scanUser.
var userColumns = []string{"username", "password_hash", "created_at"}

func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var (
		u         domain.User
		createdAt string
	)
	if err := scanner.Scan(&u.Username, &u.PasswordHash, &createdAt); err != nil {
		return nil, err
	}

	var err error
	u.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a credential row. Usernames are unique.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	_, err := s.exec(ctx, sq.Insert("users").
		Columns(userColumns...).
		Values(u.Username, u.PasswordHash, formatTime(u.CreatedAt)))
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists.WithMessage("user " + u.Username + " already exists")
	}
	if err != nil {
		return storageError(err, "create user")
	}
	return nil
}

// GetUser retrieves a credential row by username.
func (s *Store) GetUser(ctx context.Context, username string) (*domain.User, error) {
	row, err := s.queryRow(ctx, sq.Select(userColumns...).From("users").Where(sq.Eq{"username": username}))
	if err != nil {
		return nil, storageError(err, "get user")
	}

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, storageError(err, "get user")
	}
	return u, nil
}
