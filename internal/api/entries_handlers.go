package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerEntriesRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getUserEntries",
		Method:      http.MethodGet,
		Path:        "/api/userEntries/{user}",
		Summary:     "List a user's entries",
		Description: "Returns the authors and books created by one user",
		Tags:        []string{"Users"},
	}, s.handleGetUserEntries)
}

// UserEntriesInput names the owner.
type UserEntriesInput struct {
	User string `path:"user" doc:"Username"`
}

// UserEntriesResponse lists what one user created.
type UserEntriesResponse struct {
	Authors []AuthorResponse `json:"authors"`
	Books   []BookResponse   `json:"books"`
}

// UserEntriesOutput wraps the entries for Huma.
type UserEntriesOutput struct {
	Body UserEntriesResponse
}

func (s *Server) handleGetUserEntries(ctx context.Context, input *UserEntriesInput) (*UserEntriesOutput, error) {
	entries, err := s.services.Catalog.UserEntries(ctx, input.User)
	if err != nil {
		return nil, s.fail(ctx, "user entries", err)
	}

	return &UserEntriesOutput{
		Body: UserEntriesResponse{
			Authors: toAuthorResponses(entries.Authors),
			Books:   toBookViewResponses(entries.Books),
		},
	}, nil
}
