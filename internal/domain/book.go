package domain

// Book is a row of the books table. AuthorID always names a live Author.
type Book struct {
	ID       string `json:"id"`
	AuthorID string `json:"author_id"`
	Title    string `json:"title"`
	PubYear  int    `json:"pub_year"`
	Genre    string `json:"genre"`
	Owner    string `json:"owner"`
}

// OwnerID implements Owned.
func (b *Book) OwnerID() string { return b.Owner }

// BookView is a book joined with its author's name, the shape every book read returns.
type BookView struct {
	Book
	AuthorName string `json:"name"`
}

// NewBook is a validated book payload awaiting insert.
type NewBook struct {
	AuthorID string `json:"author_id" validate:"uuidshape"`
	Title    string `json:"title" validate:"min=5,max=50"`
	PubYear  int    `json:"pub_year" validate:"gte=0,notfuture"`
	Genre    string `json:"genre" validate:"genre"`
}

// BookPatch carries the fields of a partial book update. Nil fields are left untouched.
type BookPatch struct {
	AuthorID *string `json:"author_id,omitempty" validate:"omitnil,uuidshape"`
	Title    *string `json:"title,omitempty" validate:"omitnil,min=5,max=50"`
	PubYear  *int    `json:"pub_year,omitempty" validate:"omitnil,gte=0,notfuture"`
	Genre    *string `json:"genre,omitempty" validate:"omitnil,genre"`
}

// BookFilter narrows a book scan. Zero values match everything.
type BookFilter struct {
	Genre string
	Owner string
}
