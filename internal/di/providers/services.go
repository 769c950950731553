package providers

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"

	"github.com/bookcatalog/catalog-server/internal/auth"
	"github.com/bookcatalog/catalog-server/internal/config"
	"github.com/bookcatalog/catalog-server/internal/logger"
	"github.com/bookcatalog/catalog-server/internal/service"
	"github.com/bookcatalog/catalog-server/internal/validation"
)

// ProvideCatalogService provides the catalog service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	guard := do.MustInvoke[*auth.Guard](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(storeHandle.Store, validator, guard, log.WithComponent("catalog")), nil
}

// ProvideAuthService provides the authentication service and seeds bootstrap
// tokens outside production.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	sessions := do.MustInvoke[*SessionStoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewAuthService(storeHandle.Store, sessions.SessionStore, validator, log.WithComponent("auth"))

	switch {
	case len(cfg.Sessions.BootstrapTokens) == 0:
	case cfg.App.IsProduction():
		log.Warn("Ignoring bootstrap tokens in production", "file", cfg.Sessions.TokensFile)
	default:
		if err := svc.SeedSessions(context.Background(), cfg.Sessions.BootstrapTokens, cfg.Sessions.BootstrapUser); err != nil {
			return nil, fmt.Errorf("seed bootstrap tokens for %q: %w", cfg.Sessions.BootstrapUser, err)
		}
	}

	return svc, nil
}
