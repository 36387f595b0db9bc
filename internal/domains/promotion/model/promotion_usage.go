package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PromotionUsage is written once when an order with a promotion commits and never updated.
type PromotionUsage struct {
	ID              uuid.UUID       `json:"id"`
	OrderID         uuid.UUID       `json:"order_id"`
	PromotionID     uuid.UUID       `json:"promotion_id"`
	CustomerID      uuid.UUID       `json:"customer_id"`
	DiscountApplied decimal.Decimal `json:"discount_applied"`
	FreeServiceID   *uuid.UUID      `json:"free_service_id,omitempty"`
	FreeServiceQty  *int            `json:"free_service_qty,omitempty"`
	Snapshot        UsageSnapshot   `json:"snapshot"`
	CreatedAt       time.Time       `json:"created_at"`
}

// UsageSnapshot freezes the context the discount was computed in.
type UsageSnapshot struct {
	Subtotal          decimal.Decimal `json:"subtotal"`
	EligibleSubtotal  decimal.Decimal `json:"eligible_subtotal"`
	CustomerTier      string          `json:"customer_tier,omitempty"`
	AsOfDate          string          `json:"as_of_date"`
	Kind              KindView        `json:"kind"`
	Action            ActionView      `json:"action"`
	AppliesServiceIDs []uuid.UUID     `json:"applies_service_ids"`
}
