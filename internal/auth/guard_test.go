package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookcatalog/catalog-server/internal/domain"
	domainerrors "github.com/bookcatalog/catalog-server/internal/errors"
)

func newGuard(t *testing.T) (*Guard, *MemorySessionStore) {
	t.Helper()

	sessions := NewMemorySessionStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewGuard(sessions, logger), sessions
}

func TestGuard_RequireSession(t *testing.T) {
	ctx := context.Background()
	g, sessions := newGuard(t)

	token, err := sessions.Create(ctx, "alice")
	require.NoError(t, err)

	identity, err := g.RequireSession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity)

	for _, bad := range []string{"", "unknown"} {
		_, err := g.RequireSession(ctx, bad)
		assert.True(t, domainerrors.Is(err, domainerrors.ErrAuthentication), "token %q", bad)
		assert.EqualError(t, err, UnauthenticatedMessage)
	}
}

type failingStore struct{ MemorySessionStore }

func (*failingStore) Lookup(context.Context, string) (string, bool, error) {
	return "", false, errors.New("connection refused")
}

func TestGuard_RequireSessionStoreFailure(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	g := NewGuard(&failingStore{}, logger)

	_, err := g.RequireSession(context.Background(), "token")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrStorage))
}

func TestGuard_RequireOwnership(t *testing.T) {
	g, _ := newGuard(t)

	book := &domain.Book{ID: "b", Owner: "alice"}

	assert.NoError(t, g.RequireOwnership("alice", book))

	err := g.RequireOwnership("bob", book)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrAuthorization))
	assert.Equal(t, 401, domainerrors.CodeOf(err).HTTPStatus())
}

func TestGuard_RequireBulkNeedsOnlySession(t *testing.T) {
	ctx := context.Background()
	g, sessions := newGuard(t)

	token, err := sessions.Create(ctx, "bob")
	require.NoError(t, err)

	identity, err := g.RequireBulk(ctx, token, "authors")
	require.NoError(t, err)
	assert.Equal(t, "bob", identity)

	_, err = g.RequireBulk(ctx, "", "authors")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrAuthentication))
}
