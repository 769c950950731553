package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookcatalog/catalog-server/internal/validation"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getBooks",
		Method:      http.MethodGet,
		Path:        "/api/books",
		Summary:     "List books",
		Description: "Returns one book by id, the books of one genre, or every book. Each book carries its author's name.",
		Tags:        []string{"Books"},
	}, s.handleGetBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "createBook",
		Method:      http.MethodPost,
		Path:        "/api/books",
		Summary:     "Create book",
		Description: "Creates a book owned by the logged-in user. The author must exist.",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"cookie": {}}},
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPut,
		Path:        "/api/books/{id}",
		Summary:     "Update book",
		Description: "Changes only the supplied fields of a book owned by the logged-in user",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"cookie": {}}},
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBook",
		Method:      http.MethodDelete,
		Path:        "/api/books/{id}",
		Summary:     "Delete book",
		Description: "Deletes a book owned by the logged-in user. The all-zero id deletes every book.",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"cookie": {}}},
	}, s.handleDeleteBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteAllBooks",
		Method:      http.MethodDelete,
		Path:        "/api/books",
		Summary:     "Delete all books",
		Description: "Deletes every book regardless of owner",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"cookie": {}}},
	}, s.handleDeleteAllBooks)
}

// === DTOs ===

// GetBooksInput selects books. id takes precedence over genre.
type GetBooksInput struct {
	ID    string `query:"id" doc:"Book ID"`
	Genre string `query:"genre" doc:"Only books of this genre"`

	query queryPresence
}

// Resolve records which filters were sent, including empty ones.
func (i *GetBooksInput) Resolve(ctx huma.Context) []error {
	q, err := resolveQuery(ctx, "id", "genre")
	if err != nil {
		return []error{err}
	}
	i.query = q
	return nil
}

// GetBooksOutput carries one book or a list of books.
type GetBooksOutput struct {
	Body any
}

// BookResponse is the API shape of a book joined with its author's name.
type BookResponse struct {
	ID       string `json:"id" doc:"Book ID"`
	AuthorID string `json:"author_id" doc:"Author ID"`
	Name     string `json:"name,omitempty" doc:"Author name"`
	Title    string `json:"title" doc:"Book title"`
	PubYear  int    `json:"pub_year" doc:"Publication year"`
	Genre    string `json:"genre" doc:"Genre"`
	Owner    string `json:"owner" doc:"User who created the book"`
}

// CreateBookInput carries the raw book payload.
type CreateBookInput struct {
	Token   string `cookie:"token" doc:"Session token"`
	RawBody []byte
}

// BookOutput wraps a single book.
type BookOutput struct {
	Body BookResponse
}

// UpdateBookInput carries the raw partial update.
type UpdateBookInput struct {
	Token   string `cookie:"token" doc:"Session token"`
	ID      string `path:"id" doc:"Book ID"`
	RawBody []byte
}

// DeleteBookInput names the book to delete.
type DeleteBookInput struct {
	Token string `cookie:"token" doc:"Session token"`
	ID    string `path:"id" doc:"Book ID"`
}

// === Handlers ===

func (s *Server) handleGetBooks(ctx context.Context, input *GetBooksInput) (*GetBooksOutput, error) {
	switch {
	case input.query["id"]:
		b, err := s.services.Catalog.GetBook(ctx, input.ID)
		if err != nil {
			return nil, s.fail(ctx, "get book", err)
		}
		return &GetBooksOutput{Body: toBookViewResponse(b)}, nil
	case input.query["genre"]:
		books, err := s.services.Catalog.BooksByGenre(ctx, input.Genre)
		if err != nil {
			return nil, s.fail(ctx, "list books by genre", err)
		}
		return &GetBooksOutput{Body: toBookViewResponses(books)}, nil
	}

	books, err := s.services.Catalog.ListBooks(ctx)
	if err != nil {
		return nil, s.fail(ctx, "list books", err)
	}
	return &GetBooksOutput{Body: toBookViewResponses(books)}, nil
}

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*BookOutput, error) {
	raw, err := validation.DecodeJSON(input.RawBody)
	if err != nil {
		return nil, s.fail(ctx, "create book", err)
	}

	b, err := s.services.Catalog.CreateBook(ctx, input.Token, raw)
	if err != nil {
		return nil, s.fail(ctx, "create book", err)
	}

	return &BookOutput{Body: toBookResponse(b)}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*EmptyOutput, error) {
	raw, err := validation.DecodeJSON(input.RawBody)
	if err != nil {
		return nil, s.fail(ctx, "update book", err)
	}

	if err := s.services.Catalog.UpdateBook(ctx, input.Token, input.ID, raw); err != nil {
		return nil, s.fail(ctx, "update book", err)
	}
	return &EmptyOutput{}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *DeleteBookInput) (*EmptyOutput, error) {
	if err := s.services.Catalog.DeleteBook(ctx, input.Token, input.ID); err != nil {
		return nil, s.fail(ctx, "delete book", err)
	}
	return &EmptyOutput{}, nil
}

func (s *Server) handleDeleteAllBooks(ctx context.Context, input *BulkDeleteInput) (*EmptyOutput, error) {
	if err := s.services.Catalog.DeleteAllBooks(ctx, input.Token); err != nil {
		return nil, s.fail(ctx, "delete all books", err)
	}
	return &EmptyOutput{}, nil
}
