package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bookcatalog/catalog-server/internal/auth"
	"github.com/bookcatalog/catalog-server/internal/domain"
	domainerrors "github.com/bookcatalog/catalog-server/internal/errors"
	"github.com/bookcatalog/catalog-server/internal/id"
	"github.com/bookcatalog/catalog-server/internal/store"
	"github.com/bookcatalog/catalog-server/internal/validation"
)

// CatalogService runs every catalog operation through validation, then the
// authorization guard, then storage.
type CatalogService struct {
	repo      store.Catalog
	validator *validation.Validator
	guard     *auth.Guard
	logger    *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo store.Catalog, validator *validation.Validator, guard *auth.Guard, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:      repo,
		validator: validator,
		guard:     guard,
		logger:    logger,
	}
}

// GetAuthor returns one author.
func (s *CatalogService) GetAuthor(ctx context.Context, authorID string) (*domain.Author, error) {
	if err := s.validator.ID(authorID); err != nil {
		return nil, err
	}
	return s.repo.GetAuthor(ctx, authorID)
}

// ListAuthors returns every author.
func (s *CatalogService) ListAuthors(ctx context.Context) ([]*domain.Author, error) {
	return s.repo.ListAuthors(ctx)
}

// GetBook returns one book joined with its author's name.
func (s *CatalogService) GetBook(ctx context.Context, bookID string) (*domain.BookView, error) {
	if err := s.validator.ID(bookID); err != nil {
		return nil, err
	}
	return s.repo.GetBook(ctx, bookID)
}

// ListBooks returns every book.
func (s *CatalogService) ListBooks(ctx context.Context) ([]*domain.BookView, error) {
	return s.repo.ListBooks(ctx, domain.BookFilter{})
}

// BooksByGenre returns the books filed under genre. An empty genre is
// rejected like any other value outside the configured set.
func (s *CatalogService) BooksByGenre(ctx context.Context, genre string) ([]*domain.BookView, error) {
	if err := s.validator.Genre(genre); err != nil {
		return nil, err
	}
	return s.repo.ListBooks(ctx, domain.BookFilter{Genre: genre})
}

// UserEntries returns everything username owns.
func (s *CatalogService) UserEntries(ctx context.Context, username string) (*domain.UserEntries, error) {
	if err := s.validator.Username(username); err != nil {
		return nil, err
	}
	return s.repo.ListByOwner(ctx, username)
}

// CreateAuthor inserts an author owned by the session's identity.
func (s *CatalogService) CreateAuthor(ctx context.Context, token string, raw map[string]any) (*domain.Author, error) {
	in, err := s.validator.Author(raw)
	if err != nil {
		return nil, err
	}

	identity, err := s.guard.RequireSession(ctx, token)
	if err != nil {
		return nil, err
	}

	a, err := s.repo.InsertAuthor(ctx, in, identity)
	if err != nil {
		return nil, s.logFailure("create author", err)
	}

	s.logger.Info("author created", "author_id", a.ID, "owner", identity)
	return a, nil
}

// CreateBook inserts a book owned by the session's identity. Any live session
// may file a book under any author.
func (s *CatalogService) CreateBook(ctx context.Context, token string, raw map[string]any) (*domain.Book, error) {
	in, err := s.validator.Book(raw)
	if err != nil {
		return nil, err
	}

	identity, err := s.guard.RequireSession(ctx, token)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.InsertBook(ctx, in, identity)
	if err != nil {
		return nil, s.logFailure("create book", err)
	}

	s.logger.Info("book created", "book_id", b.ID, "author_id", b.AuthorID, "owner", identity)
	return b, nil
}

// UpdateBook applies a partial update to a book the session's identity owns.
func (s *CatalogService) UpdateBook(ctx context.Context, token, bookID string, raw map[string]any) error {
	if err := s.validator.ID(bookID); err != nil {
		return err
	}
	patch, err := s.validator.BookPatch(raw)
	if err != nil {
		return err
	}

	identity, err := s.guard.RequireSession(ctx, token)
	if err != nil {
		return err
	}

	err = s.repo.UpdateBook(ctx, bookID, identity, patch)
	if errors.Is(err, store.ErrConditionFailed) {
		err = s.explainMiss(ctx, identity, func(ctx context.Context) (domain.Owned, error) {
			return s.repo.GetBook(ctx, bookID)
		})
	}
	if err != nil {
		return s.logFailure("update book", err)
	}

	s.logger.Info("book updated", "book_id", bookID, "owner", identity)
	return nil
}

// DeleteAuthor deletes an author the session's identity owns. The all-zero
// id deletes every author instead.
func (s *CatalogService) DeleteAuthor(ctx context.Context, token, authorID string) error {
	if err := s.validator.ID(authorID); err != nil {
		return err
	}
	if id.IsSentinel(authorID) {
		return s.DeleteAllAuthors(ctx, token)
	}

	identity, err := s.guard.RequireSession(ctx, token)
	if err != nil {
		return err
	}

	err = s.repo.DeleteAuthor(ctx, authorID, identity)
	if errors.Is(err, store.ErrConditionFailed) {
		err = s.explainMiss(ctx, identity, func(ctx context.Context) (domain.Owned, error) {
			return s.repo.GetAuthor(ctx, authorID)
		})
	}
	if err != nil {
		return s.logFailure("delete author", err)
	}

	s.logger.Info("author deleted", "author_id", authorID, "owner", identity)
	return nil
}

// DeleteBook deletes a book the session's identity owns. The all-zero id
// deletes every book instead.
func (s *CatalogService) DeleteBook(ctx context.Context, token, bookID string) error {
	if err := s.validator.ID(bookID); err != nil {
		return err
	}
	if id.IsSentinel(bookID) {
		return s.DeleteAllBooks(ctx, token)
	}

	identity, err := s.guard.RequireSession(ctx, token)
	if err != nil {
		return err
	}

	err = s.repo.DeleteBook(ctx, bookID, identity)
	if errors.Is(err, store.ErrConditionFailed) {
		err = s.explainMiss(ctx, identity, func(ctx context.Context) (domain.Owned, error) {
			return s.repo.GetBook(ctx, bookID)
		})
	}
	if err != nil {
		return s.logFailure("delete book", err)
	}

	s.logger.Info("book deleted", "book_id", bookID, "owner", identity)
	return nil
}

// DeleteAllAuthors deletes every author. Fails as a whole while any book
// still references an author.
func (s *CatalogService) DeleteAllAuthors(ctx context.Context, token string) error {
	identity, err := s.guard.RequireBulk(ctx, token, "authors")
	if err != nil {
		return err
	}

	n, err := s.repo.DeleteAllAuthors(ctx)
	if err != nil {
		return s.logFailure("delete all authors", err)
	}

	s.logger.Info("all authors deleted", "count", n, "identity", identity)
	return nil
}

// DeleteAllBooks deletes every book.
func (s *CatalogService) DeleteAllBooks(ctx context.Context, token string) error {
	identity, err := s.guard.RequireBulk(ctx, token, "books")
	if err != nil {
		return err
	}

	n, err := s.repo.DeleteAllBooks(ctx)
	if err != nil {
		return s.logFailure("delete all books", err)
	}

	s.logger.Info("all books deleted", "count", n, "identity", identity)
	return nil
}

// explainMiss turns a conditional write that matched nothing into the error
// the caller should see: NOT_FOUND when the row is gone, AUTHORIZATION when
// someone else owns it.
func (s *CatalogService) explainMiss(ctx context.Context, identity string, load func(context.Context) (domain.Owned, error)) error {
	row, err := load(ctx)
	if err != nil {
		return err
	}
	if err := s.guard.RequireOwnership(identity, row); err != nil {
		return err
	}

	// The row exists and is ours, so it appeared after the write missed it.
	return domainerrors.Storage("entry changed while the request was running, retry the request")
}

// logFailure logs storage failures that carry no more specific code and
// passes err through.
func (s *CatalogService) logFailure(op string, err error) error {
	if domainerrors.CodeOf(err) == domainerrors.CodeStorage {
		s.logger.Error(op+" failed", "error", err)
	}
	return err
}
