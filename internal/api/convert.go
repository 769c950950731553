package api

import (
	"github.com/samber/lo"

	"github.com/bookcatalog/catalog-server/internal/domain"
)

func toAuthorResponse(a *domain.Author) AuthorResponse {
	return AuthorResponse{
		ID:    a.ID,
		Name:  a.Name,
		Bio:   a.Bio,
		Owner: a.Owner,
	}
}

// toAuthorResponses never returns nil so empty lists encode as [].
func toAuthorResponses(authors []*domain.Author) []AuthorResponse {
	return lo.Map(authors, func(a *domain.Author, _ int) AuthorResponse {
		return toAuthorResponse(a)
	})
}

func toBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		ID:       b.ID,
		AuthorID: b.AuthorID,
		Title:    b.Title,
		PubYear:  b.PubYear,
		Genre:    b.Genre,
		Owner:    b.Owner,
	}
}

func toBookViewResponse(b *domain.BookView) BookResponse {
	resp := toBookResponse(&b.Book)
	resp.Name = b.AuthorName
	return resp
}

func toBookViewResponses(books []*domain.BookView) []BookResponse {
	return lo.Map(books, func(b *domain.BookView, _ int) BookResponse {
		return toBookViewResponse(b)
	})
}
