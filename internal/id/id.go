// Package id generates and recognizes catalog row identifiers.
package id

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// Sentinel is the all-zero identifier. In delete requests it stands for every row of a kind.
var Sentinel = uuid.Nil.String()

// shape is the textual form every row identifier must match exactly.
var shape = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// Generate returns a fresh version-4 UUID in canonical lowercase form.
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return u.String(), nil
}

// Valid reports whether s has the exact shape of a row identifier.
func Valid(s string) bool {
	return len(s) == 36 && shape.MatchString(s)
}

// IsSentinel reports whether s is the bulk-delete identifier.
func IsSentinel(s string) bool {
	return s == Sentinel
}
