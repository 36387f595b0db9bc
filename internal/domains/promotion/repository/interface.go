package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"hotel-backend/internal/domains/promotion/model"
)

type PromotionRepository interface {
	// ListActive returns active promotions in registry order (created_at, id).
	ListActive(ctx context.Context) ([]*model.Promotion, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Promotion, error)

	CreateUsage(ctx context.Context, tx pgx.Tx, usage *model.PromotionUsage) error
	// CountUsagesSince ignores usages whose order was cancelled.
	CountUsagesSince(ctx context.Context, customerID, promotionID uuid.UUID, since time.Time) (int, error)
}
