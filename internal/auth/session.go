package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
)

// tokenBytes is the entropy of a session token before hex encoding.
const tokenBytes = 32

// maxTokenAttempts bounds collision retries when minting a token.
const maxTokenAttempts = 3

// ErrTokenCollision is returned when every minted token was already in use.
var ErrTokenCollision = errors.New("session token collision")

// SessionStore maps opaque session tokens to the identity that logged in.
// Tokens never expire; they live until revoked or the store is discarded.
type SessionStore interface {
	// Create mints a fresh token bound to identity.
	Create(ctx context.Context, identity string) (string, error)
	// Lookup resolves a token. ok is false for unknown tokens.
	Lookup(ctx context.Context, token string) (identity string, ok bool, err error)
	// Revoke removes a token. Unknown tokens are not an error.
	Revoke(ctx context.Context, token string) error
	// Seed binds a caller-chosen token, used for development bootstrap tokens.
	Seed(ctx context.Context, token, identity string) error
}

// NewToken returns 32 random bytes, hex encoded.
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// MemorySessionStore is a process-local SessionStore. Sessions are lost on restart.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]string
	newToken func() (string, error)
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]string),
		newToken: NewToken,
	}
}

// Create implements SessionStore.
func (s *MemorySessionStore) Create(_ context.Context, identity string) (string, error) {
	for range maxTokenAttempts {
		token, err := s.newToken()
		if err != nil {
			return "", err
		}

		s.mu.Lock()
		if _, taken := s.sessions[token]; !taken {
			s.sessions[token] = identity
			s.mu.Unlock()
			return token, nil
		}
		s.mu.Unlock()
	}
	return "", ErrTokenCollision
}

// Lookup implements SessionStore.
func (s *MemorySessionStore) Lookup(_ context.Context, token string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	identity, ok := s.sessions[token]
	return identity, ok, nil
}

// Revoke implements SessionStore.
func (s *MemorySessionStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

// Seed implements SessionStore.
func (s *MemorySessionStore) Seed(_ context.Context, token, identity string) error {
	if token == "" {
		return errors.New("seed token cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[token] = identity
	return nil
}
