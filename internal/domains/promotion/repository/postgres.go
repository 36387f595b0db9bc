package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"hotel-backend/internal/domains/promotion/model"
	"hotel-backend/pkg/logger"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) PromotionRepository {
	return &PostgresRepository{db: db}
}

const selectPromotionColumns = `
	SELECT
		id, name,
		kind, kind_days_before, kind_tier,
		action, action_percent, action_amount, action_service_id, action_quantity,
		scope_service_ids, is_active,
		created_at, updated_at
	FROM promotions
`

func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Promotion, error) {
	p, err := scanPromotion(r.db.QueryRow(ctx, selectPromotionColumns+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPromotionNotFound
		}
		return nil, fmt.Errorf("find promotion by id: %w", err)
	}
	return p, nil
}

// ListActive skips rows whose kind or action cannot be decoded, logging each one,
// so one bad back-office edit does not take eligibility down.
func (r *PostgresRepository) ListActive(ctx context.Context) ([]*model.Promotion, error) {
	rows, err := r.db.Query(ctx, selectPromotionColumns+` WHERE is_active = TRUE ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list active promotions: %w", err)
	}
	defer rows.Close()

	var promotions []*model.Promotion
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			if errors.Is(err, model.ErrMalformedPromotion) {
				logger.Warn("skipping malformed promotion", map[string]interface{}{"error": err.Error()})
				continue
			}
			return nil, fmt.Errorf("scan promotion: %w", err)
		}
		promotions = append(promotions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate promotions: %w", err)
	}

	return promotions, nil
}

func scanPromotion(row pgx.Row) (*model.Promotion, error) {
	var (
		p            model.Promotion
		kind, action string
		daysBefore   *int32
		tier         *string
		percent      *int32
		amount       *decimal.Decimal
		serviceID    *uuid.UUID
		quantity     *int32
	)

	if err := row.Scan(
		&p.ID, &p.Name,
		&kind, &daysBefore, &tier,
		&action, &percent, &amount, &serviceID, &quantity,
		&p.Scope, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	k, err := model.KindFromColumns(kind, daysBefore, tier)
	if err != nil {
		return nil, fmt.Errorf("promotion %s: %w: %v", p.ID, model.ErrMalformedPromotion, err)
	}
	a, err := model.ActionFromColumns(action, percent, amount, serviceID, quantity)
	if err != nil {
		return nil, fmt.Errorf("promotion %s: %w: %v", p.ID, model.ErrMalformedPromotion, err)
	}

	p.Kind = k
	p.Action = a
	return &p, nil
}

func (r *PostgresRepository) CreateUsage(ctx context.Context, tx pgx.Tx, usage *model.PromotionUsage) error {
	snapshot, err := json.Marshal(usage.Snapshot)
	if err != nil {
		return fmt.Errorf("marshal usage snapshot: %w", err)
	}

	query := `
		INSERT INTO promotion_usage (
			id, order_id, promotion_id, customer_id,
			discount_applied, free_service_id, free_service_qty,
			snapshot, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = tx.Exec(ctx, query,
		usage.ID,
		usage.OrderID,
		usage.PromotionID,
		usage.CustomerID,
		usage.DiscountApplied,
		usage.FreeServiceID,
		usage.FreeServiceQty,
		snapshot,
		usage.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert promotion usage: %w", err)
	}

	return nil
}

// Usage rows are never deleted, so a cancelled order keeps its row and is
// filtered out here instead.
const countUsagesSinceQuery = `
	SELECT COUNT(*)
	FROM promotion_usage u
	JOIN orders o ON o.id = u.order_id
	WHERE u.customer_id = $1 AND u.promotion_id = $2 AND u.created_at >= $3
	  AND o.status <> 'cancelled'
`

func (r *PostgresRepository) CountUsagesSince(ctx context.Context, customerID, promotionID uuid.UUID, since time.Time) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, countUsagesSinceQuery, customerID, promotionID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("count promotion usage: %w", err)
	}
	return count, nil
}
