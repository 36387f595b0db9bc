package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	promotion "hotel-backend/internal/domains/promotion/model"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

var allowedTransitions = map[Status][]Status{
	StatusPending: {StatusPaid, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Order is priced once, at creation. After it leaves pending only the status
// and timestamps ever change.
type Order struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID
	Lines         []OrderLine
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	GrandTotal    decimal.Decimal
	PromotionID   *uuid.UUID
	FreeService   *promotion.FreeServiceGrant
	Status        Status
	AsOfDate      time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TransitionTo moves the order along pending -> paid|cancelled.
func (o *Order) TransitionTo(next Status, now time.Time) error {
	if !CanTransition(o.Status, next) {
		return NewTransitionError(o.Status, next)
	}
	o.Status = next
	o.UpdatedAt = now
	return nil
}

type OrderLine struct {
	ID               uuid.UUID
	OrderID          uuid.UUID
	ServiceID        uuid.UUID
	Quantity         decimal.Decimal
	SelectedOptions  []string
	UnitPrice        decimal.Decimal
	LineSubtotal     decimal.Decimal
	LineDiscount     decimal.Decimal
	LineTotal        decimal.Decimal
	IsPromotionGrant bool
	Details          LineDetails
	Answers          json.RawMessage
}

// LineDetails is the denormalised service info stored with each line,
// so later catalog edits do not change how a past order reads.
type LineDetails struct {
	ServiceName  string          `json:"service_name"`
	Variant      string          `json:"pricing_variant"`
	UnitLabel    string          `json:"unit_label,omitempty"`
	OptionKeys   []uuid.UUID     `json:"option_keys,omitempty"`
	LineSubtotal decimal.Decimal `json:"line_subtotal"`
}
