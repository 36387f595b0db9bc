package model

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ActionType string

const (
	ActionPercentOff  ActionType = "percent_off"
	ActionAmountOff   ActionType = "amount_off"
	ActionFreeService ActionType = "free_service"
)

// Action is what a promotion gives. Exactly one variant is ever populated.
type Action interface {
	Type() ActionType
	isAction()
}

type PercentOff struct {
	Percent int // 1..100
}

type AmountOff struct {
	Amount decimal.Decimal
}

type FreeService struct {
	ServiceID uuid.UUID
	Quantity  int
}

func (PercentOff) Type() ActionType  { return ActionPercentOff }
func (AmountOff) Type() ActionType   { return ActionAmountOff }
func (FreeService) Type() ActionType { return ActionFreeService }

func (PercentOff) isAction()  {}
func (AmountOff) isAction()   {}
func (FreeService) isAction() {}

func NewPercentOff(percent int) (Action, error) {
	if percent < 1 || percent > 100 {
		return nil, ErrInvalidPercent
	}
	return PercentOff{Percent: percent}, nil
}

func NewAmountOff(amount decimal.Decimal) (Action, error) {
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	return AmountOff{Amount: amount}, nil
}

func NewFreeService(serviceID uuid.UUID, quantity int) (Action, error) {
	if serviceID == uuid.Nil {
		return nil, ErrMissingFreeService
	}
	if quantity < 1 {
		return nil, ErrInvalidFreeQuantity
	}
	return FreeService{ServiceID: serviceID, Quantity: quantity}, nil
}

type ActionView struct {
	Type      ActionType       `json:"type"`
	Percent   int              `json:"percent,omitempty"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	ServiceID *uuid.UUID       `json:"service_id,omitempty"`
	Quantity  int              `json:"quantity,omitempty"`
}

func ViewAction(a Action) ActionView {
	switch v := a.(type) {
	case PercentOff:
		return ActionView{Type: ActionPercentOff, Percent: v.Percent}
	case AmountOff:
		amount := v.Amount
		return ActionView{Type: ActionAmountOff, Amount: &amount}
	case FreeService:
		id := v.ServiceID
		return ActionView{Type: ActionFreeService, ServiceID: &id, Quantity: v.Quantity}
	default:
		return ActionView{}
	}
}

// ActionFromColumns rebuilds an Action from its discriminator and parameter columns.
func ActionFromColumns(action string, percent *int32, amount *decimal.Decimal, serviceID *uuid.UUID, quantity *int32) (Action, error) {
	switch ActionType(action) {
	case ActionPercentOff:
		if percent == nil {
			return nil, fmt.Errorf("%w: percent_off needs a percent", ErrMalformedPromotion)
		}
		return NewPercentOff(int(*percent))
	case ActionAmountOff:
		if amount == nil {
			return nil, fmt.Errorf("%w: amount_off needs an amount", ErrMalformedPromotion)
		}
		return NewAmountOff(*amount)
	case ActionFreeService:
		if serviceID == nil || quantity == nil {
			return nil, fmt.Errorf("%w: free_service needs a service and quantity", ErrMalformedPromotion)
		}
		return NewFreeService(*serviceID, int(*quantity))
	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrMalformedPromotion, action)
	}
}
