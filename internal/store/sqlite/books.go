package sqlite

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/samber/lo"

	"github.com/bookcatalog/catalog-server/internal/domain"
	domainerrors "github.com/bookcatalog/catalog-server/internal/errors"
	"github.com/bookcatalog/catalog-server/internal/id"
	"github.com/bookcatalog/catalog-server/internal/store"
)

// bookColumns must match the insert value order in InsertBook.
var bookColumns = []string{"id", "author_id", "title", "pub_year", "genre", "owner"}

// bookViewColumns must match the scan order in scanBookView.
var bookViewColumns = []string{"b.id", "b.author_id", "b.title", "b.pub_year", "b.genre", "b.owner", "a.name"}

// updatableBookColumns is the only set of columns a partial update may write.
var updatableBookColumns = []string{"author_id", "title", "pub_year", "genre"}

func scanBookView(scanner interface{ Scan(dest ...any) error }) (*domain.BookView, error) {
	var b domain.BookView
	err := scanner.Scan(&b.ID, &b.AuthorID, &b.Title, &b.PubYear, &b.Genre, &b.Owner, &b.AuthorName)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func selectBookViews() sq.SelectBuilder {
	return sq.Select(bookViewColumns...).
		From("books b").
		Join("authors a ON a.id = b.author_id")
}

func missingAuthor(authorID string, cause error) error {
	return domainerrors.ReferentialIntegrity(
		"No author exists with the id " + authorID + ". Add the author before filing books under it.",
	).WithCause(cause)
}

// InsertBook stores a new book under a fresh id. The author must exist.
func (s *Store) InsertBook(ctx context.Context, in domain.NewBook, owner string) (*domain.Book, error) {
	bookID, err := id.Generate()
	if err != nil {
		return nil, storageError(err, "insert book")
	}

	b := &domain.Book{
		ID:       bookID,
		AuthorID: in.AuthorID,
		Title:    in.Title,
		PubYear:  in.PubYear,
		Genre:    in.Genre,
		Owner:    owner,
	}

	_, err = s.exec(ctx, sq.Insert("books").
		Columns(bookColumns...).
		Values(b.ID, b.AuthorID, b.Title, b.PubYear, b.Genre, b.Owner))
	if isForeignKeyViolation(err) {
		return nil, missingAuthor(b.AuthorID, err)
	}
	if err != nil {
		return nil, storageError(err, "insert book")
	}
	return b, nil
}

// GetBook retrieves a book joined with its author's name.
func (s *Store) GetBook(ctx context.Context, bookID string) (*domain.BookView, error) {
	row, err := s.queryRow(ctx, selectBookViews().Where(sq.Eq{"b.id": bookID}))
	if err != nil {
		return nil, storageError(err, "get book")
	}

	b, err := scanBookView(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound.WithMessage("No book exists with the id " + bookID + ".")
	}
	if err != nil {
		return nil, storageError(err, "get book")
	}
	return b, nil
}

// ListBooks returns books matching filter in insertion order.
func (s *Store) ListBooks(ctx context.Context, filter domain.BookFilter) ([]*domain.BookView, error) {
	b := selectBookViews().OrderBy("b.rowid")
	if filter.Genre != "" {
		b = b.Where(sq.Eq{"b.genre": filter.Genre})
	}
	if filter.Owner != "" {
		b = b.Where(sq.Eq{"b.owner": filter.Owner})
	}

	rows, err := s.query(ctx, b)
	if err != nil {
		return nil, storageError(err, "list books")
	}
	defer rows.Close()

	books := []*domain.BookView{}
	for rows.Next() {
		v, err := scanBookView(rows)
		if err != nil {
			return nil, storageError(err, "list books")
		}
		books = append(books, v)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err, "list books")
	}
	return books, nil
}

// patchValues maps the supplied patch fields onto their columns.
func patchValues(p domain.BookPatch) map[string]any {
	values := make(map[string]any, len(updatableBookColumns))
	if p.AuthorID != nil {
		values["author_id"] = *p.AuthorID
	}
	if p.Title != nil {
		values["title"] = *p.Title
	}
	if p.PubYear != nil {
		values["pub_year"] = *p.PubYear
	}
	if p.Genre != nil {
		values["genre"] = *p.Genre
	}
	return lo.PickByKeys(values, updatableBookColumns)
}

// UpdateBook writes the supplied fields in one statement conditioned on
// ownership. A missing or foreign row yields store.ErrConditionFailed.
func (s *Store) UpdateBook(ctx context.Context, bookID, owner string, patch domain.BookPatch) error {
	values := patchValues(patch)
	if len(values) == 0 {
		return domainerrors.Validation("no fields to update")
	}

	n, err := s.exec(ctx, sq.Update("books").
		SetMap(values).
		Where(sq.Eq{"id": bookID, "owner": owner}))
	if isForeignKeyViolation(err) {
		return missingAuthor(lo.FromPtr(patch.AuthorID), err)
	}
	if err != nil {
		return storageError(err, "update book")
	}
	if n == 0 {
		return store.ErrConditionFailed
	}
	return nil
}

// DeleteBook deletes the book only if owner owns it. A missing or foreign row
// yields store.ErrConditionFailed.
func (s *Store) DeleteBook(ctx context.Context, bookID, owner string) error {
	n, err := s.exec(ctx, sq.Delete("books").Where(sq.Eq{"id": bookID, "owner": owner}))
	if err != nil {
		return storageError(err, "delete book")
	}
	if n == 0 {
		return store.ErrConditionFailed
	}
	return nil
}

// DeleteAllBooks deletes every book.
func (s *Store) DeleteAllBooks(ctx context.Context) (int64, error) {
	n, err := s.exec(ctx, sq.Delete("books"))
	if err != nil {
		return 0, storageError(err, "delete all books")
	}
	return n, nil
}

// ListByOwner returns every author and book stamped with owner.
func (s *Store) ListByOwner(ctx context.Context, owner string) (*domain.UserEntries, error) {
	authors, err := s.listAuthors(ctx, owner)
	if err != nil {
		return nil, err
	}

	books, err := s.ListBooks(ctx, domain.BookFilter{Owner: owner})
	if err != nil {
		return nil, err
	}

	return &domain.UserEntries{Authors: authors, Books: books}, nil
}
