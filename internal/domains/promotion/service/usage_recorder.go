package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	customer "hotel-backend/internal/domains/customer/model"
	"hotel-backend/internal/domains/promotion/model"
)

// UsageWriter is the write side UsageRecorder needs.
type UsageWriter interface {
	CreateUsage(ctx context.Context, tx pgx.Tx, usage *model.PromotionUsage) error
}

// UsageRecorder persists the audit row of an applied promotion.
type UsageRecorder struct {
	writer UsageWriter
}

func NewUsageRecorder(writer UsageWriter) *UsageRecorder {
	return &UsageRecorder{writer: writer}
}

// BuildUsage assembles the immutable usage row for an order about to commit.
func BuildUsage(
	orderID uuid.UUID,
	cust customer.Snapshot,
	chosen model.EligiblePromotion,
	alloc model.Allocation,
	asOf time.Time,
	now time.Time,
) *model.PromotionUsage {
	usage := &model.PromotionUsage{
		ID:              uuid.New(),
		OrderID:         orderID,
		PromotionID:     chosen.PromotionID,
		CustomerID:      cust.ID,
		DiscountApplied: alloc.DiscountTotal,
		Snapshot: model.UsageSnapshot{
			Subtotal:          alloc.Subtotal,
			EligibleSubtotal:  alloc.EligibleSubtotal,
			CustomerTier:      cust.Tier(),
			AsOfDate:          asOf.Format(model.DateLayout),
			Kind:              model.ViewKind(chosen.Kind),
			Action:            model.ViewAction(chosen.Action),
			AppliesServiceIDs: append([]uuid.UUID(nil), chosen.AppliesServiceIDs...),
		},
		CreatedAt: now,
	}

	if alloc.FreeService != nil {
		id := alloc.FreeService.ServiceID
		qty := alloc.FreeService.Quantity
		usage.FreeServiceID = &id
		usage.FreeServiceQty = &qty
	}

	return usage
}

// Record inserts usage inside the caller's transaction. Usage rows have no update path.
func (r *UsageRecorder) Record(ctx context.Context, tx pgx.Tx, usage *model.PromotionUsage) error {
	if err := r.writer.CreateUsage(ctx, tx, usage); err != nil {
		return fmt.Errorf("record promotion usage: %w", err)
	}
	return nil
}
