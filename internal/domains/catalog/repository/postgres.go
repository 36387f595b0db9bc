package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hotel-backend/internal/domains/catalog/model"
	"hotel-backend/internal/shared/apperror"
	"hotel-backend/pkg/logger"
)

type postgresCatalogRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCatalogRepository(pool *pgxpool.Pool) CatalogReader {
	return &postgresCatalogRepository{pool: pool}
}

const selectServiceColumns = `
	SELECT id, name, pricing_variant, base_price, COALESCE(unit_label, ''), options, created_at, updated_at
	FROM services
`

func (r *postgresCatalogRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ServiceDefinition, error) {
	row := r.pool.QueryRow(ctx, selectServiceColumns+` WHERE id = $1`, id)

	def, err := scanService(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrServiceNotFound
		}
		if errors.Is(err, model.ErrMalformedService) {
			logger.Warn("refusing malformed service", map[string]interface{}{"error": err.Error()})
			return nil, apperror.Internal("service definition is malformed", err)
		}
		return nil, fmt.Errorf("find service by id: %w", err)
	}
	return def, nil
}

// FindByIDs leaves malformed rows out of the result, so callers see them as unknown.
func (r *postgresCatalogRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.ServiceDefinition, error) {
	result := make(map[uuid.UUID]*model.ServiceDefinition, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.pool.Query(ctx, selectServiceColumns+` WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("query services: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		def, err := scanService(rows)
		if err != nil {
			if errors.Is(err, model.ErrMalformedService) {
				logger.Warn("skipping malformed service", map[string]interface{}{"error": err.Error()})
				continue
			}
			return nil, fmt.Errorf("scan service: %w", err)
		}
		result[def.ID] = def
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate services: %w", err)
	}

	return result, nil
}

func scanService(row pgx.Row) (*model.ServiceDefinition, error) {
	var (
		def        model.ServiceDefinition
		variant    string
		optionsRaw []byte
	)

	if err := row.Scan(
		&def.ID,
		&def.Name,
		&variant,
		&def.BasePrice,
		&def.UnitLabel,
		&optionsRaw,
		&def.CreatedAt,
		&def.UpdatedAt,
	); err != nil {
		return nil, err
	}

	def.Variant = model.PricingVariant(variant)
	if len(optionsRaw) > 0 {
		if err := json.Unmarshal(optionsRaw, &def.Options); err != nil {
			return nil, fmt.Errorf("service %s: %w: options: %v", def.ID, model.ErrMalformedService, err)
		}
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("service %s: %w: %v", def.ID, model.ErrMalformedService, err)
	}

	return &def, nil
}
