// Package store defines the persistence interface for the catalog server.
package store

import (
	"context"

	"github.com/bookcatalog/catalog-server/internal/domain"
)

// Catalog persists authors and books. Every books.author_id names a live
// author; the backing engine enforces it and violations surface as
// REFERENTIAL_INTEGRITY domain errors.
type Catalog interface {
	// Authors
	InsertAuthor(ctx context.Context, author domain.NewAuthor, owner string) (*domain.Author, error)
	GetAuthor(ctx context.Context, id string) (*domain.Author, error)
	ListAuthors(ctx context.Context) ([]*domain.Author, error)
	DeleteAuthor(ctx context.Context, id, owner string) error
	DeleteAllAuthors(ctx context.Context) (int64, error)

	// Books
	InsertBook(ctx context.Context, book domain.NewBook, owner string) (*domain.Book, error)
	GetBook(ctx context.Context, id string) (*domain.BookView, error)
	ListBooks(ctx context.Context, filter domain.BookFilter) ([]*domain.BookView, error)
	UpdateBook(ctx context.Context, id, owner string, patch domain.BookPatch) error
	DeleteBook(ctx context.Context, id, owner string) error
	DeleteAllBooks(ctx context.Context) (int64, error)

	// ListByOwner returns every author and book stamped with owner.
	ListByOwner(ctx context.Context, owner string) (*domain.UserEntries, error)
}

// Credentials persists login credentials.
type Credentials interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, username string) (*domain.User, error)
}

// Store is the full persistence surface.
type Store interface {
	Catalog
	Credentials

	Ping(ctx context.Context) error
	Close() error
}
