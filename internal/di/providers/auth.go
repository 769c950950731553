package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/do/v2"

	"github.com/bookcatalog/catalog-server/internal/auth"
	"github.com/bookcatalog/catalog-server/internal/config"
	"github.com/bookcatalog/catalog-server/internal/genre"
	"github.com/bookcatalog/catalog-server/internal/logger"
	"github.com/bookcatalog/catalog-server/internal/validation"
)

// SessionStoreHandle wraps the configured session store with shutdown capability.
type SessionStoreHandle struct {
	auth.SessionStore
	close func() error
	ping  func(ctx context.Context) error
}

// Shutdown implements do.Shutdownable.
func (h *SessionStoreHandle) Shutdown() error {
	if h.close == nil {
		return nil
	}
	return h.close()
}

// Ping reports whether the backing store is reachable. In-memory stores always are.
func (h *SessionStoreHandle) Ping(ctx context.Context) error {
	if h.ping == nil {
		return nil
	}
	return h.ping(ctx)
}

// ProvideSessionStore provides the session store selected by SESSION_BACKEND.
func ProvideSessionStore(i do.Injector) (*SessionStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	switch cfg.Sessions.Backend {
	case config.SessionBackendRedis:
		store := auth.NewRedisSessionStore(cfg.Sessions.RedisAddr, cfg.Sessions.RedisPassword)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Sessions.RedisAddr, err)
		}

		log.Info("Session store ready", "backend", "redis", "addr", cfg.Sessions.RedisAddr)
		return &SessionStoreHandle{SessionStore: store, close: store.Close, ping: store.Ping}, nil

	default:
		log.Info("Session store ready", "backend", "memory")
		return &SessionStoreHandle{SessionStore: auth.NewMemorySessionStore()}, nil
	}
}

// ProvideValidator provides the payload validator over the configured genres.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	genres := genre.Default()
	if len(cfg.Catalog.Genres) > 0 {
		set, err := genre.NewSet(cfg.Catalog.Genres)
		if err != nil {
			return nil, fmt.Errorf("genres file %s: %w", cfg.Catalog.GenresFile, err)
		}
		genres = set
	}

	log.Info("Genres loaded", "count", genres.Len(), "file", cfg.Catalog.GenresFile)
	log.Debug("Accepted genres", "genres", genres.List())

	return validation.New(genres), nil
}

// ProvideGuard provides the authorization guard.
func ProvideGuard(i do.Injector) (*auth.Guard, error) {
	sessions := do.MustInvoke[*SessionStoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return auth.NewGuard(sessions.SessionStore, log.WithComponent("guard")), nil
}
