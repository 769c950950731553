package domain

// Owned is any row carrying an owner identity.
type Owned interface {
	OwnerID() string
}

// UserEntries is everything a single identity owns.
type UserEntries struct {
	Authors []*Author   `json:"authors"`
	Books   []*BookView `json:"books"`
}
