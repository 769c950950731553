package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bookcatalog/catalog-server/internal/auth"
	"github.com/bookcatalog/catalog-server/internal/genre"
	"github.com/bookcatalog/catalog-server/internal/store/sqlite"
	"github.com/bookcatalog/catalog-server/internal/validation"
)

// missingID is well formed but names no row.
const missingID = "3f6c2a1e-8b4d-4c7a-9e2f-5d1b0a9c8e7f"

// countingSessions counts minted sessions.
type countingSessions struct {
	*auth.MemorySessionStore
	created atomic.Int32
}

func (c *countingSessions) Create(ctx context.Context, identity string) (string, error) {
	c.created.Add(1)
	return c.MemorySessionStore.Create(ctx, identity)
}

type testEnv struct {
	store    *sqlite.Store
	sessions *countingSessions
	catalog  *CatalogService
	auth     *AuthService
}

// setupTest creates services over a temporary database.
func setupTest(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	genres, err := genre.NewSet([]string{"diary", "history-and-politics"})
	require.NoError(t, err)
	v := validation.New(genres, validation.WithClock(func() time.Time {
		return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	}))

	sessions := &countingSessions{MemorySessionStore: auth.NewMemorySessionStore()}
	guard := auth.NewGuard(sessions, logger)

	return &testEnv{
		store:    s,
		sessions: sessions,
		catalog:  NewCatalogService(s, v, guard, logger),
		auth:     NewAuthService(s, sessions, v, logger),
	}
}

// login opens a session for identity without going through credentials.
func (e *testEnv) login(t *testing.T, identity string) string {
	t.Helper()
	token, err := e.sessions.Create(context.Background(), identity)
	require.NoError(t, err)
	return token
}
