package domain

// Author is a catalog author. Authors are never mutated after insert.
type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Bio   string `json:"bio"`
	Owner string `json:"owner"`
}

// OwnerID implements Owned.
func (a *Author) OwnerID() string { return a.Owner }

// NewAuthor is a validated author payload awaiting insert.
type NewAuthor struct {
	Name string `json:"name" validate:"min=5,max=50"`
	Bio  string `json:"bio" validate:"min=10,max=250"`
}
