// Package di provides dependency injection configuration for the catalog server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/bookcatalog/catalog-server/internal/auth"
	"github.com/bookcatalog/catalog-server/internal/config"
	"github.com/bookcatalog/catalog-server/internal/di/providers"
	"github.com/bookcatalog/catalog-server/internal/logger"
	"github.com/bookcatalog/catalog-server/internal/service"
	"github.com/bookcatalog/catalog-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSessionStore)

	// Request pipeline
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideGuard)

	// Business services
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideAuthService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and starts the HTTP server. Providers
// run in dependency order; the first failure stops the sequence.
func Bootstrap(injector *do.RootScope) error {
	steps := []func(do.Injector) error{
		invoke[*config.Config],
		invoke[*logger.Logger],
		invoke[*providers.StoreHandle],
		invoke[*providers.SessionStoreHandle],
		invoke[*validation.Validator],
		invoke[*auth.Guard],
		invoke[*service.CatalogService],
		invoke[*service.AuthService],
		invoke[*providers.HTTPServerHandle],
	}

	for _, step := range steps {
		if err := step(injector); err != nil {
			return err
		}
	}

	return nil
}

func invoke[T any](i do.Injector) error {
	_, err := do.Invoke[T](i)
	return err
}
