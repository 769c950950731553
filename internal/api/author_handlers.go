package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookcatalog/catalog-server/internal/validation"
)

func (s *Server) registerAuthorRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getAuthors",
		Method:      http.MethodGet,
		Path:        "/api/authors",
		Summary:     "List authors",
		Description: "Returns every author, or the single author named by the id query parameter",
		Tags:        []string{"Authors"},
	}, s.handleGetAuthors)

	huma.Register(s.api, huma.Operation{
		OperationID: "createAuthor",
		Method:      http.MethodPost,
		Path:        "/api/authors",
		Summary:     "Create author",
		Description: "Creates an author owned by the logged-in user",
		Tags:        []string{"Authors"},
		Security:    []map[string][]string{{"cookie": {}}},
	}, s.handleCreateAuthor)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteAuthor",
		Method:      http.MethodDelete,
		Path:        "/api/authors/{id}",
		Summary:     "Delete author",
		Description: "Deletes an author owned by the logged-in user. Fails while books reference the author. The all-zero id deletes every author.",
		Tags:        []string{"Authors"},
		Security:    []map[string][]string{{"cookie": {}}},
	}, s.handleDeleteAuthor)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteAllAuthors",
		Method:      http.MethodDelete,
		Path:        "/api/authors",
		Summary:     "Delete all authors",
		Description: "Deletes every author regardless of owner. Fails while any book references an author.",
		Tags:        []string{"Authors"},
		Security:    []map[string][]string{{"cookie": {}}},
	}, s.handleDeleteAllAuthors)
}

// === DTOs ===

// GetAuthorsInput selects one author by id, or all authors when no query is given.
type GetAuthorsInput struct {
	ID string `query:"id" doc:"Author ID"`

	query queryPresence
}

// Resolve records whether id was sent, so that ?id= is checked like any other id.
func (i *GetAuthorsInput) Resolve(ctx huma.Context) []error {
	q, err := resolveQuery(ctx, "id")
	if err != nil {
		return []error{err}
	}
	i.query = q
	return nil
}

// GetAuthorsOutput carries one author or a list of authors.
type GetAuthorsOutput struct {
	Body any
}

// CreateAuthorInput carries the raw author payload.
type CreateAuthorInput struct {
	Token   string `cookie:"token" doc:"Session token"`
	RawBody []byte
}

// AuthorResponse is the API shape of an author.
type AuthorResponse struct {
	ID    string `json:"id" doc:"Author ID"`
	Name  string `json:"name" doc:"Author name"`
	Bio   string `json:"bio" doc:"Short biography"`
	Owner string `json:"owner" doc:"User who created the author"`
}

// AuthorOutput wraps a single author.
type AuthorOutput struct {
	Body AuthorResponse
}

// DeleteAuthorInput names the author to delete.
type DeleteAuthorInput struct {
	Token string `cookie:"token" doc:"Session token"`
	ID    string `path:"id" doc:"Author ID"`
}

// BulkDeleteInput carries only the session.
type BulkDeleteInput struct {
	Token string `cookie:"token" doc:"Session token"`
}

// EmptyOutput is a success with an empty info object.
type EmptyOutput struct {
	Body struct{}
}

// === Handlers ===

func (s *Server) handleGetAuthors(ctx context.Context, input *GetAuthorsInput) (*GetAuthorsOutput, error) {
	if input.query["id"] {
		a, err := s.services.Catalog.GetAuthor(ctx, input.ID)
		if err != nil {
			return nil, s.fail(ctx, "get author", err)
		}
		return &GetAuthorsOutput{Body: toAuthorResponse(a)}, nil
	}

	authors, err := s.services.Catalog.ListAuthors(ctx)
	if err != nil {
		return nil, s.fail(ctx, "list authors", err)
	}
	return &GetAuthorsOutput{Body: toAuthorResponses(authors)}, nil
}

func (s *Server) handleCreateAuthor(ctx context.Context, input *CreateAuthorInput) (*AuthorOutput, error) {
	raw, err := validation.DecodeJSON(input.RawBody)
	if err != nil {
		return nil, s.fail(ctx, "create author", err)
	}

	a, err := s.services.Catalog.CreateAuthor(ctx, input.Token, raw)
	if err != nil {
		return nil, s.fail(ctx, "create author", err)
	}

	return &AuthorOutput{Body: toAuthorResponse(a)}, nil
}

func (s *Server) handleDeleteAuthor(ctx context.Context, input *DeleteAuthorInput) (*EmptyOutput, error) {
	if err := s.services.Catalog.DeleteAuthor(ctx, input.Token, input.ID); err != nil {
		return nil, s.fail(ctx, "delete author", err)
	}
	return &EmptyOutput{}, nil
}

func (s *Server) handleDeleteAllAuthors(ctx context.Context, input *BulkDeleteInput) (*EmptyOutput, error) {
	if err := s.services.Catalog.DeleteAllAuthors(ctx, input.Token); err != nil {
		return nil, s.fail(ctx, "delete all authors", err)
	}
	return &EmptyOutput{}, nil
}
