package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/bookcatalog/catalog-server/internal/domain"
	domainerrors "github.com/bookcatalog/catalog-server/internal/errors"
	"github.com/bookcatalog/catalog-server/internal/store"
)

func stateAndRevolution(authorID string) domain.NewBook {
	return domain.NewBook{
		AuthorID: authorID,
		Title:    "State and Revolution",
		PubYear:  1917,
		Genre:    "diary",
	}
}

func insertBook(t *testing.T, s *Store, in domain.NewBook, owner string) *domain.Book {
	t.Helper()
	b, err := s.InsertBook(context.Background(), in, owner)
	if err != nil {
		t.Fatalf("insert book: %v", err)
	}
	return b
}

func countBooks(t *testing.T, s *Store) int {
	t.Helper()
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM books").Scan(&n); err != nil {
		t.Fatalf("count books: %v", err)
	}
	return n
}

func TestInsertBook_JoinedRead(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := insertAuthor(t, s, lenin, "alice")
	b := insertBook(t, s, stateAndRevolution(a.ID), "alice")

	got, err := s.GetBook(ctx, b.ID)
	if err != nil {
		t.Fatalf("get book: %v", err)
	}
	if got.Book != *b {
		t.Errorf("book mismatch: got %+v, want %+v", got.Book, *b)
	}
	if got.AuthorName != "Vladimir Lenin" {
		t.Errorf("expected author name, got %q", got.AuthorName)
	}
}

func TestInsertBook_UnknownAuthor(t *testing.T) {
	s := newTestStore(t)

	_, err := s.InsertBook(context.Background(), stateAndRevolution(missingID), "alice")
	if !errors.Is(err, domainerrors.ErrReferentialIntegrity) {
		t.Fatalf("expected referential integrity error, got %v", err)
	}
	if n := countBooks(t, s); n != 0 {
		t.Errorf("expected nothing persisted, got %d books", n)
	}
}

func TestGetBook_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetBook(context.Background(), missingID)
	if !errors.Is(err, domainerrors.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestListBooks_Filters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := insertAuthor(t, s, lenin, "alice")
	first := insertBook(t, s, stateAndRevolution(a.ID), "alice")
	second := insertBook(t, s, domain.NewBook{
		AuthorID: a.ID, Title: "What Is to Be Done?", PubYear: 1902, Genre: "history-and-politics",
	}, "bob")
	third := insertBook(t, s, domain.NewBook{
		AuthorID: a.ID, Title: "Imperialism", PubYear: 1917, Genre: "history-and-politics",
	}, "alice")

	tests := []struct {
		name   string
		filter domain.BookFilter
		want   []string
	}{
		{"all", domain.BookFilter{}, []string{first.ID, second.ID, third.ID}},
		{"genre", domain.BookFilter{Genre: "history-and-politics"}, []string{second.ID, third.ID}},
		{"owner", domain.BookFilter{Owner: "alice"}, []string{first.ID, third.ID}},
		{"genre and owner", domain.BookFilter{Genre: "diary", Owner: "bob"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, err := s.ListBooks(ctx, tt.filter)
			if err != nil {
				t.Fatalf("list books: %v", err)
			}
			if len(books) != len(tt.want) {
				t.Fatalf("expected %d books, got %d", len(tt.want), len(books))
			}
			for i, b := range books {
				if b.ID != tt.want[i] {
					t.Errorf("position %d: expected %s, got %s", i, tt.want[i], b.ID)
				}
				if b.AuthorName != "Vladimir Lenin" {
					t.Errorf("expected joined author name, got %q", b.AuthorName)
				}
			}
		})
	}
}

func TestUpdateBook_PartialUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := insertAuthor(t, s, lenin, "alice")
	b := insertBook(t, s, stateAndRevolution(a.ID), "alice")

	title := "The State and Revolution"
	if err := s.UpdateBook(ctx, b.ID, "alice", domain.BookPatch{Title: &title}); err != nil {
		t.Fatalf("update book: %v", err)
	}

	got, err := s.GetBook(ctx, b.ID)
	if err != nil {
		t.Fatalf("get book: %v", err)
	}
	want := *b
	want.Title = title
	if got.Book != want {
		t.Errorf("only title should change: got %+v, want %+v", got.Book, want)
	}
}

func TestUpdateBook_AllFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := insertAuthor(t, s, lenin, "alice")
	other := insertAuthor(t, s, domain.NewAuthor{Name: "Rosa Luxemburg", Bio: "Revolutionary writer"}, "alice")
	b := insertBook(t, s, stateAndRevolution(a.ID), "alice")

	title, year, genre := "Reform or Revolution", 1900, "history-and-politics"
	patch := domain.BookPatch{AuthorID: &other.ID, Title: &title, PubYear: &year, Genre: &genre}
	if err := s.UpdateBook(ctx, b.ID, "alice", patch); err != nil {
		t.Fatalf("update book: %v", err)
	}

	got, _ := s.GetBook(ctx, b.ID)
	if got.AuthorID != other.ID || got.Title != title || got.PubYear != year || got.Genre != genre {
		t.Errorf("unexpected book after update: %+v", got)
	}
	if got.AuthorName != "Rosa Luxemburg" || got.Owner != "alice" {
		t.Errorf("unexpected join after update: %+v", got)
	}
}

func TestUpdateBook_UnknownAuthor(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := insertAuthor(t, s, lenin, "alice")
	b := insertBook(t, s, stateAndRevolution(a.ID), "alice")

	missing := missingID
	err := s.UpdateBook(ctx, b.ID, "alice", domain.BookPatch{AuthorID: &missing})
	if !errors.Is(err, domainerrors.ErrReferentialIntegrity) {
		t.Fatalf("expected referential integrity error, got %v", err)
	}

	got, _ := s.GetBook(ctx, b.ID)
	if got.AuthorID != a.ID {
		t.Errorf("author_id should be unchanged, got %s", got.AuthorID)
	}
}

func TestUpdateBook_Conditional(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := insertAuthor(t, s, lenin, "alice")
	b := insertBook(t, s, stateAndRevolution(a.ID), "alice")
	title := "Stolen Title"

	if err := s.UpdateBook(ctx, b.ID, "bob", domain.BookPatch{Title: &title}); !errors.Is(err, store.ErrConditionFailed) {
		t.Errorf("expected condition failed for foreign owner, got %v", err)
	}
	if err := s.UpdateBook(ctx, missingID, "alice", domain.BookPatch{Title: &title}); !errors.Is(err, store.ErrConditionFailed) {
		t.Errorf("expected condition failed for missing row, got %v", err)
	}
	if err := s.UpdateBook(ctx, b.ID, "alice", domain.BookPatch{}); !errors.Is(err, domainerrors.ErrValidation) {
		t.Errorf("expected validation error for empty patch, got %v", err)
	}

	got, _ := s.GetBook(ctx, b.ID)
	if got.Title != "State and Revolution" {
		t.Errorf("title should be unchanged, got %q", got.Title)
	}
}

func TestDeleteBook_Conditional(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := insertAuthor(t, s, lenin, "alice")
	b := insertBook(t, s, stateAndRevolution(a.ID), "alice")

	if err := s.DeleteBook(ctx, b.ID, "bob"); !errors.Is(err, store.ErrConditionFailed) {
		t.Fatalf("expected condition failed, got %v", err)
	}
	if err := s.DeleteBook(ctx, b.ID, "alice"); err != nil {
		t.Fatalf("delete book: %v", err)
	}
	if _, err := s.GetBook(ctx, b.ID); !errors.Is(err, domainerrors.ErrNotFound) {
		t.Errorf("expected book gone, got %v", err)
	}
}

func TestDeleteAllBooks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := insertAuthor(t, s, lenin, "alice")
	insertBook(t, s, stateAndRevolution(a.ID), "alice")
	insertBook(t, s, stateAndRevolution(a.ID), "bob")

	n, err := s.DeleteAllBooks(ctx)
	if err != nil {
		t.Fatalf("delete all books: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 deleted, got %d", n)
	}
	if c := countBooks(t, s); c != 0 {
		t.Errorf("expected empty table, got %d", c)
	}
}

func TestListByOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := insertAuthor(t, s, lenin, "alice")
	insertAuthor(t, s, domain.NewAuthor{Name: "Rosa Luxemburg", Bio: "Revolutionary writer"}, "bob")
	mine := insertBook(t, s, stateAndRevolution(a.ID), "alice")
	insertBook(t, s, stateAndRevolution(a.ID), "bob")

	entries, err := s.ListByOwner(ctx, "alice")
	if err != nil {
		t.Fatalf("list by owner: %v", err)
	}
	if len(entries.Authors) != 1 || entries.Authors[0].ID != a.ID {
		t.Errorf("unexpected authors: %+v", entries.Authors)
	}
	if len(entries.Books) != 1 || entries.Books[0].ID != mine.ID {
		t.Errorf("unexpected books: %+v", entries.Books)
	}

	none, err := s.ListByOwner(ctx, "carol")
	if err != nil {
		t.Fatalf("list by owner: %v", err)
	}
	if len(none.Authors) != 0 || len(none.Books) != 0 {
		t.Errorf("expected no entries, got %+v", none)
	}
}
