package repository

import (
	"context"

	"github.com/google/uuid"

	"hotel-backend/internal/domains/catalog/model"
)

// CatalogReader is the read-only view of service definitions the pricing engine needs.
type CatalogReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.ServiceDefinition, error)
	// FindByIDs returns only the definitions that exist; callers check for gaps.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.ServiceDefinition, error)
}
