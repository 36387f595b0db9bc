package service

import (
	"github.com/shopspring/decimal"

	"hotel-backend/internal/domains/promotion/model"
	"hotel-backend/pkg/logger"
)

var hundred = decimal.NewFromInt(100)

// DiscountAllocator splits one promotion's discount across order lines.
//
// Percent and amount discounts are shared in proportion to each eligible
// line's subtotal, rounded to cents. Whatever rounding leaves over goes to the
// last eligible line, so line discounts always add up to the total exactly.
type DiscountAllocator struct {
	capAmountOff bool
}

// NewDiscountAllocator: with capAmountOff an AmountOff never exceeds the eligible subtotal.
func NewDiscountAllocator(capAmountOff bool) *DiscountAllocator {
	return &DiscountAllocator{capAmountOff: capAmountOff}
}

// Allocate applies chosen (nil for none) to lines.
func (a *DiscountAllocator) Allocate(lines []model.LineAmount, chosen *model.EligiblePromotion) model.Allocation {
	out := model.Allocation{
		Lines:            make([]model.AllocationLine, len(lines)),
		Subtotal:         decimal.Zero,
		EligibleSubtotal: decimal.Zero,
		DiscountTotal:    decimal.Zero,
	}

	lastEligible := -1
	for i, line := range lines {
		eligible := chosen != nil && chosen.Applies(line.ServiceID)
		out.Lines[i] = model.AllocationLine{
			ServiceID:    line.ServiceID,
			LineSubtotal: line.LineSubtotal,
			LineDiscount: decimal.Zero,
			Eligible:     eligible,
		}
		out.Subtotal = out.Subtotal.Add(line.LineSubtotal)
		if eligible {
			out.EligibleSubtotal = out.EligibleSubtotal.Add(line.LineSubtotal)
			lastEligible = i
		}
	}

	if chosen != nil {
		a.apply(&out, chosen, lastEligible)
	}

	for i := range out.Lines {
		l := &out.Lines[i]
		l.LineTotal = l.LineSubtotal.Sub(l.LineDiscount)
		out.DiscountTotal = out.DiscountTotal.Add(l.LineDiscount)
	}
	out.GrandTotal = out.Subtotal.Sub(out.DiscountTotal)

	return out
}

func (a *DiscountAllocator) apply(out *model.Allocation, chosen *model.EligiblePromotion, lastEligible int) {
	var total decimal.Decimal

	if err := recheckAction(chosen.Action); err != nil {
		logger.Warn("promotion action out of range, no discount allocated", map[string]interface{}{
			"promotion_id": chosen.PromotionID.String(),
			"error":        err.Error(),
		})
		return
	}

	switch action := chosen.Action.(type) {
	case model.FreeService:
		out.FreeService = &model.FreeServiceGrant{
			ServiceID: action.ServiceID,
			Quantity:  action.Quantity,
		}
		return

	case model.PercentOff:
		total = out.EligibleSubtotal.
			Mul(decimal.NewFromInt(int64(action.Percent))).
			Div(hundred).
			Round(2)

	case model.AmountOff:
		total = action.Amount
		if a.capAmountOff && total.GreaterThan(out.EligibleSubtotal) {
			total = out.EligibleSubtotal
		}

	default:
		return
	}

	if lastEligible < 0 || !out.EligibleSubtotal.IsPositive() {
		logger.Debug("eligible subtotal is zero, no discount allocated", map[string]interface{}{
			"promotion_id": chosen.PromotionID.String(),
		})
		return
	}

	allocated := decimal.Zero
	for i := range out.Lines {
		l := &out.Lines[i]
		if !l.Eligible {
			continue
		}
		l.LineDiscount = total.Mul(l.LineSubtotal).Div(out.EligibleSubtotal).Round(2)
		allocated = allocated.Add(l.LineDiscount)
	}

	remainder := total.Sub(allocated)
	last := &out.Lines[lastEligible]
	last.LineDiscount = last.LineDiscount.Add(remainder)
}

// recheckAction applies the constructor checks to an action built as a literal.
func recheckAction(action model.Action) error {
	var err error
	switch v := action.(type) {
	case model.PercentOff:
		_, err = model.NewPercentOff(v.Percent)
	case model.AmountOff:
		_, err = model.NewAmountOff(v.Amount)
	case model.FreeService:
		_, err = model.NewFreeService(v.ServiceID, v.Quantity)
	}
	return err
}
