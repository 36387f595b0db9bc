package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"hotel-backend/internal/domains/promotion/model"
	"hotel-backend/internal/domains/promotion/repository"
	"hotel-backend/internal/shared"
	"hotel-backend/internal/shared/utils"
	"hotel-backend/pkg/clock"
	"hotel-backend/pkg/logger"
)

const auditWindow = 365 * 24 * time.Hour

// AuditUsageHandler flags customers who used a one-off promotion more often
// than allowed in the trailing year. It only reads and logs; usage rows stay untouched.
type AuditUsageHandler struct {
	repo           repository.PromotionRepository
	clock          clock.Clock
	maxUsesPerYear int
}

func NewAuditUsageHandler(repo repository.PromotionRepository, clk clock.Clock, maxUsesPerYear int) *AuditUsageHandler {
	if maxUsesPerYear < 1 {
		maxUsesPerYear = 1
	}
	return &AuditUsageHandler{
		repo:           repo,
		clock:          clk,
		maxUsesPerYear: maxUsesPerYear,
	}
}

func (h *AuditUsageHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.AuditUsagePayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return err
	}

	customerID, err := uuid.Parse(payload.CustomerID)
	if err != nil {
		return fmt.Errorf("invalid customer_id %q: %v: %w", payload.CustomerID, err, asynq.SkipRetry)
	}
	promotionID, err := uuid.Parse(payload.PromotionID)
	if err != nil {
		return fmt.Errorf("invalid promotion_id %q: %v: %w", payload.PromotionID, err, asynq.SkipRetry)
	}

	promo, err := h.repo.FindByID(ctx, promotionID)
	if err != nil {
		if errors.Is(err, model.ErrPromotionNotFound) {
			logger.Warn("audited promotion no longer exists", map[string]interface{}{
				"promotion_id": payload.PromotionID,
				"usage_id":     payload.UsageID,
			})
			return nil
		}
		return fmt.Errorf("load promotion: %w", err)
	}

	// Membership discounts are meant to repeat.
	if promo.Kind.Type() == model.KindMembership {
		return nil
	}

	since := h.clock.Now().Add(-auditWindow)
	count, err := h.repo.CountUsagesSince(ctx, customerID, promotionID, since)
	if err != nil {
		return fmt.Errorf("count usages: %w", err)
	}

	if count > h.maxUsesPerYear {
		logger.Warn("promotion usage flagged", map[string]interface{}{
			"usage_id":     payload.UsageID,
			"order_id":     payload.OrderID,
			"customer_id":  payload.CustomerID,
			"promotion_id": payload.PromotionID,
			"kind":         string(promo.Kind.Type()),
			"uses":         count,
			"max_uses":     h.maxUsesPerYear,
			"client_ip":    payload.ClientIP,
		})
		return nil
	}

	logger.Debug("promotion usage audited", map[string]interface{}{
		"usage_id": payload.UsageID,
		"uses":     count,
	})
	return nil
}
