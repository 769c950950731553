package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOwned(t *testing.T) {
	var resources = []Owned{
		&Author{ID: "a", Owner: "alice"},
		&Book{ID: "b", Owner: "alice"},
		&BookView{Book: Book{ID: "c", Owner: "alice"}, AuthorName: "Vladimir Lenin"},
	}

	for _, r := range resources {
		assert.Equal(t, "alice", r.OwnerID())
	}
}
