package auth

import (
	"context"
	"log/slog"

	"github.com/bookcatalog/catalog-server/internal/domain"
	domainerrors "github.com/bookcatalog/catalog-server/internal/errors"
)

// UnauthenticatedMessage is returned for missing or unknown session tokens.
const UnauthenticatedMessage = "You are unauthorized to perform this action. Please login with valid credentials."

// Guard gates mutating operations on a live session and row ownership.
type Guard struct {
	sessions SessionStore
	logger   *slog.Logger
}

// NewGuard creates a guard over the given session store.
func NewGuard(sessions SessionStore, logger *slog.Logger) *Guard {
	return &Guard{sessions: sessions, logger: logger}
}

// RequireSession resolves token to the identity that owns it.
func (g *Guard) RequireSession(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domainerrors.Authentication(UnauthenticatedMessage)
	}

	identity, ok, err := g.sessions.Lookup(ctx, token)
	if err != nil {
		return "", domainerrors.Wrap(err, domainerrors.CodeStorage, "session lookup failed")
	}
	if !ok {
		return "", domainerrors.Authentication(UnauthenticatedMessage)
	}
	return identity, nil
}

// RequireOwnership fails unless identity owns resource.
func (g *Guard) RequireOwnership(identity string, resource domain.Owned) error {
	if resource.OwnerID() != identity {
		return domainerrors.Authorization("You cannot modify an entry created by another user.")
	}
	return nil
}

// RequireBulk authorizes a delete of every row of a kind. A live session is
// enough since no single owner applies to the whole table.
func (g *Guard) RequireBulk(ctx context.Context, token, kind string) (string, error) {
	identity, err := g.RequireSession(ctx, token)
	if err != nil {
		return "", err
	}

	g.logger.Warn("bulk delete authorized", "identity", identity, "kind", kind)
	return identity, nil
}
