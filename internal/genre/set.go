package genre

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Set is the immutable collection of genres a book may carry.
type Set struct {
	members map[string]struct{}
	ordered []string
}

// NewSet builds a Set from the configured values, taken verbatim. Duplicates
// are dropped; an empty list or an empty entry is rejected.
func NewSet(genres []string) (*Set, error) {
	if len(genres) == 0 {
		return nil, fmt.Errorf("genre set is empty")
	}

	for i, g := range genres {
		if g == "" {
			return nil, fmt.Errorf("genre %d is empty", i)
		}
	}

	ordered := lo.Uniq(genres)
	members := lo.SliceToMap(ordered, func(g string) (string, struct{}) {
		return g, struct{}{}
	})

	return &Set{members: members, ordered: ordered}, nil
}

// Default returns the built-in genre set.
func Default() *Set {
	s, err := NewSet(DefaultGenres)
	if err != nil {
		panic(err)
	}
	return s
}

// Contains reports whether g is a member. Matching is exact.
func (s *Set) Contains(g string) bool {
	_, ok := s.members[g]
	return ok
}

// List returns the members in configuration order.
func (s *Set) List() []string {
	return slices.Clone(s.ordered)
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.ordered)
}
