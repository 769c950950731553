package providers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/bookcatalog/catalog-server/internal/api"
	"github.com/bookcatalog/catalog-server/internal/config"
	"github.com/bookcatalog/catalog-server/internal/logger"
	"github.com/bookcatalog/catalog-server/internal/service"
)

// Version is reported by the health endpoint. Set with -ldflags at build time.
var Version = "dev"

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	shutdownTimeout time.Duration
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server and starts it in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sessions := do.MustInvoke[*SessionStoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Catalog: do.MustInvoke[*service.CatalogService](i),
		Auth:    do.MustInvoke[*service.AuthService](i),
	}

	checks := map[string]api.HealthCheck{
		"database": storeHandle.Ping,
		"sessions": sessions.Ping,
	}

	handler := api.NewServer(services, checks, api.Options{
		CookieSecure: cfg.Server.CookieSecure,
		CORSOrigins:  cfg.Server.CORSOrigins,
		Version:      Version,
	}, log.WithComponent("http"))

	if !cfg.Server.CookieSecure {
		log.Warn("Session cookie is not marked Secure; use only behind plain-HTTP development setups")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv, shutdownTimeout: cfg.Server.ShutdownTimeout}, nil
}
