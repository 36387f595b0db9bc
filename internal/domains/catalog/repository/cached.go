package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hotel-backend/internal/domains/catalog/model"
	"hotel-backend/pkg/cache"
	"hotel-backend/pkg/logger"
)

type cachedCatalog struct {
	inner CatalogReader
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedCatalog wraps inner with a read-through cache keyed by service id.
// Cache failures are logged and the inner reader answers instead. Cached entries
// that no longer validate are evicted and reloaded.
func NewCachedCatalog(inner CatalogReader, c cache.Cache, ttl time.Duration) CatalogReader {
	return &cachedCatalog{inner: inner, cache: c, ttl: ttl}
}

func ServiceCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("catalog:service:%s", id)
}

func (r *cachedCatalog) FindByID(ctx context.Context, id uuid.UUID) (*model.ServiceDefinition, error) {
	if def, ok := r.lookup(ctx, id); ok {
		return def, nil
	}

	def, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, def)
	return def, nil
}

func (r *cachedCatalog) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.ServiceDefinition, error) {
	result := make(map[uuid.UUID]*model.ServiceDefinition, len(ids))
	var misses []uuid.UUID

	for _, id := range ids {
		if def, ok := r.lookup(ctx, id); ok {
			result[id] = def
			continue
		}
		misses = append(misses, id)
	}

	if len(misses) == 0 {
		return result, nil
	}

	loaded, err := r.inner.FindByIDs(ctx, misses)
	if err != nil {
		return nil, err
	}
	for id, def := range loaded {
		result[id] = def
		r.store(ctx, def)
	}

	return result, nil
}

func (r *cachedCatalog) lookup(ctx context.Context, id uuid.UUID) (*model.ServiceDefinition, bool) {
	var def model.ServiceDefinition
	found, err := r.cache.Get(ctx, ServiceCacheKey(id), &def)
	if err != nil {
		logger.Warn("catalog cache read failed", map[string]interface{}{
			"service_id": id.String(),
			"error":      err.Error(),
		})
		return nil, false
	}
	if !found {
		return nil, false
	}
	if err := def.Validate(); err != nil {
		logger.Warn("evicting malformed cached service", map[string]interface{}{
			"service_id": id.String(),
			"error":      err.Error(),
		})
		r.evict(ctx, id)
		return nil, false
	}
	return &def, true
}

func (r *cachedCatalog) store(ctx context.Context, def *model.ServiceDefinition) {
	if err := r.cache.Set(ctx, ServiceCacheKey(def.ID), def, r.ttl); err != nil {
		logger.Warn("catalog cache write failed", map[string]interface{}{
			"service_id": def.ID.String(),
			"error":      err.Error(),
		})
	}
}

func (r *cachedCatalog) evict(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, ServiceCacheKey(id)); err != nil {
		logger.Warn("catalog cache delete failed", map[string]interface{}{
			"service_id": id.String(),
			"error":      err.Error(),
		})
	}
}
