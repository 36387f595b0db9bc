package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Promotion is a back-office managed rule. The engine only reads it.
type Promotion struct {
	ID       uuid.UUID
	Name     string
	Kind     Kind
	Action   Action
	Scope    []uuid.UUID // empty means every requested service
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Promotion) HasScope() bool {
	return len(p.Scope) > 0
}

func (p *Promotion) Covers(serviceID uuid.UUID) bool {
	for _, id := range p.Scope {
		if id == serviceID {
			return true
		}
	}
	return false
}

// EligiblePromotion is a promotion that qualified for a candidate order,
// narrowed to the requested services it applies to.
type EligiblePromotion struct {
	PromotionID       uuid.UUID
	Name              string
	Kind              Kind
	Action            Action
	AppliesServiceIDs []uuid.UUID
}

func (e *EligiblePromotion) Applies(serviceID uuid.UUID) bool {
	for _, id := range e.AppliesServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// LineAmount is one priced line fed to the allocator.
type LineAmount struct {
	ServiceID    uuid.UUID
	LineSubtotal decimal.Decimal
}

type AllocationLine struct {
	ServiceID    uuid.UUID
	LineSubtotal decimal.Decimal
	LineDiscount decimal.Decimal
	LineTotal    decimal.Decimal
	Eligible     bool
}

type FreeServiceGrant struct {
	ServiceID uuid.UUID `json:"service_id"`
	Quantity  int       `json:"quantity"`
}

// Allocation is the discount split across an order's lines.
// Sum of LineDiscount always equals DiscountTotal.
type Allocation struct {
	Lines            []AllocationLine
	Subtotal         decimal.Decimal
	EligibleSubtotal decimal.Decimal
	DiscountTotal    decimal.Decimal
	GrandTotal       decimal.Decimal
	FreeService      *FreeServiceGrant
}
