package api

import (
	"context"

	"github.com/bookcatalog/catalog-server/internal/service"
)

// Services groups the business logic services used by the API server.
type Services struct {
	Catalog *service.CatalogService
	Auth    *service.AuthService
}

// HealthCheck probes one backing component.
type HealthCheck func(ctx context.Context) error
