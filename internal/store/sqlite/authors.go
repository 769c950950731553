package sqlite

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/bookcatalog/catalog-server/internal/domain"
	domainerrors "github.com/bookcatalog/catalog-server/internal/errors"
	"github.com/bookcatalog/catalog-server/internal/id"
	"github.com/bookcatalog/catalog-server/internal/store"
)

// authorColumns must match the scan order in scanAuthor.
var authorColumns = []string{"id", "name", "bio", "owner"}

func scanAuthor(scanner interface{ Scan(dest ...any) error }) (*domain.Author, error) {
	var a domain.Author
	if err := scanner.Scan(&a.ID, &a.Name, &a.Bio, &a.Owner); err != nil {
		return nil, err
	}
	return &a, nil
}

// InsertAuthor stores a new author under a fresh id.
func (s *Store) InsertAuthor(ctx context.Context, in domain.NewAuthor, owner string) (*domain.Author, error) {
	authorID, err := id.Generate()
	if err != nil {
		return nil, storageError(err, "insert author")
	}

	a := &domain.Author{ID: authorID, Name: in.Name, Bio: in.Bio, Owner: owner}

	_, err = s.exec(ctx, sq.Insert("authors").
		Columns(authorColumns...).
		Values(a.ID, a.Name, a.Bio, a.Owner))
	if err != nil {
		return nil, storageError(err, "insert author")
	}
	return a, nil
}

// GetAuthor retrieves an author by id.
func (s *Store) GetAuthor(ctx context.Context, authorID string) (*domain.Author, error) {
	row, err := s.queryRow(ctx, sq.Select(authorColumns...).From("authors").Where(sq.Eq{"id": authorID}))
	if err != nil {
		return nil, storageError(err, "get author")
	}

	a, err := scanAuthor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound.WithMessage("No author exists with the id " + authorID + ".")
	}
	if err != nil {
		return nil, storageError(err, "get author")
	}
	return a, nil
}

// ListAuthors returns every author in insertion order.
func (s *Store) ListAuthors(ctx context.Context) ([]*domain.Author, error) {
	return s.listAuthors(ctx, "")
}

func (s *Store) listAuthors(ctx context.Context, owner string) ([]*domain.Author, error) {
	b := sq.Select(authorColumns...).From("authors").OrderBy("rowid")
	if owner != "" {
		b = b.Where(sq.Eq{"owner": owner})
	}

	rows, err := s.query(ctx, b)
	if err != nil {
		return nil, storageError(err, "list authors")
	}
	defer rows.Close()

	authors := []*domain.Author{}
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, storageError(err, "list authors")
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err, "list authors")
	}
	return authors, nil
}

// DeleteAuthor deletes the author only if owner owns it. A missing or foreign
// row yields store.ErrConditionFailed.
func (s *Store) DeleteAuthor(ctx context.Context, authorID, owner string) error {
	n, err := s.exec(ctx, sq.Delete("authors").Where(sq.Eq{"id": authorID, "owner": owner}))
	if isForeignKeyViolation(err) {
		return domainerrors.ReferentialIntegrity(
			"Cannot delete author " + authorID + " while books still reference it. Delete those books first.",
		).WithCause(err)
	}
	if err != nil {
		return storageError(err, "delete author")
	}
	if n == 0 {
		return store.ErrConditionFailed
	}
	return nil
}

// DeleteAllAuthors deletes every author. If any book still references an
// author the statement fails as a whole and nothing is deleted.
func (s *Store) DeleteAllAuthors(ctx context.Context) (int64, error) {
	n, err := s.exec(ctx, sq.Delete("authors"))
	if isForeignKeyViolation(err) {
		return 0, domainerrors.ReferentialIntegrity(
			"Cannot delete all authors while books still reference them. Delete those books first.",
		).WithCause(err)
	}
	if err != nil {
		return 0, storageError(err, "delete all authors")
	}
	return n, nil
}
