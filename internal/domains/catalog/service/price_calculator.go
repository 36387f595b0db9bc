package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hotel-backend/internal/domains/catalog/model"
	"hotel-backend/pkg/logger"
)

// LineRequest is what the caller asked for on one order line.
type LineRequest struct {
	ServiceID           uuid.UUID
	Quantity            *decimal.Decimal // defaults to 1
	Weight              *decimal.Decimal // PerUnit amount
	SelectedOptionName  string
	SelectedOptionNames []string
}

// LinePrice is the priced line before any promotion is applied.
type LinePrice struct {
	ServiceID       uuid.UUID
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	LineSubtotal    decimal.Decimal
	SelectedOptions []string
	OptionKeys      []uuid.UUID
}

// PriceCalculator turns a service definition plus a line request into a unit
// price and a line subtotal. It is stateless; one instance serves quotes and commits.
type PriceCalculator struct{}

func NewPriceCalculator() *PriceCalculator {
	return &PriceCalculator{}
}

func (c *PriceCalculator) Price(def *model.ServiceDefinition, req LineRequest) (LinePrice, error) {
	out := LinePrice{
		ServiceID:    def.ID,
		Quantity:     decimal.NewFromInt(1),
		UnitPrice:    decimal.Zero,
		LineSubtotal: decimal.Zero,
	}

	switch def.Variant {
	case model.VariantFree:
		if req.Quantity != nil && req.Quantity.IsPositive() {
			out.Quantity = *req.Quantity
		}
		return out, nil

	case model.VariantPerUnit:
		if req.Weight == nil {
			return LinePrice{}, model.ErrAmountRequired.WithDetail("service_id", def.ID.String())
		}
		if !req.Weight.IsPositive() {
			return LinePrice{}, model.ErrInvalidQuantity.WithDetail("service_id", def.ID.String())
		}
		out.Quantity = *req.Weight
		out.UnitPrice = def.BasePrice
		out.LineSubtotal = def.BasePrice.Mul(out.Quantity)
		return out, nil
	}

	qty, err := quantityOf(def, req)
	if err != nil {
		return LinePrice{}, err
	}
	out.Quantity = qty

	switch def.Variant {
	case model.VariantFixed:
		out.UnitPrice = def.BasePrice

	case model.VariantSelectable:
		name := strings.TrimSpace(req.SelectedOptionName)
		if name == "" {
			return LinePrice{}, model.ErrOptionRequired.WithDetail("service_id", def.ID.String())
		}
		out.SelectedOptions = []string{name}
		if opt, ok := def.FindOption(name); ok {
			out.UnitPrice = opt.Price
			out.OptionKeys = []uuid.UUID{opt.Key}
		} else {
			logger.Warn("selected option not found, falling back to base price", map[string]interface{}{
				"service_id": def.ID.String(),
				"option":     name,
			})
			out.UnitPrice = def.BasePrice
		}

	case model.VariantMultipleOptions:
		// Each option counts once, however often its name is repeated.
		selected := make(map[string]struct{}, len(req.SelectedOptionNames))
		for _, name := range req.SelectedOptionNames {
			name = strings.TrimSpace(name)
			if _, dup := selected[name]; dup {
				continue
			}
			selected[name] = struct{}{}
			out.SelectedOptions = append(out.SelectedOptions, name)
		}

		sum := decimal.Zero
		for _, opt := range def.Options {
			if _, ok := selected[strings.TrimSpace(opt.Name)]; ok {
				sum = sum.Add(opt.Price)
				out.OptionKeys = append(out.OptionKeys, opt.Key)
			}
		}
		out.UnitPrice = sum

	default:
		return LinePrice{}, model.ErrUnknownService.WithDetail("pricing_variant", string(def.Variant))
	}

	out.LineSubtotal = out.UnitPrice.Mul(out.Quantity)
	return out, nil
}

func quantityOf(def *model.ServiceDefinition, req LineRequest) (decimal.Decimal, error) {
	if req.Quantity == nil {
		return decimal.NewFromInt(1), nil
	}
	if !req.Quantity.IsPositive() {
		return decimal.Zero, model.ErrInvalidQuantity.WithDetail("service_id", def.ID.String())
	}
	return *req.Quantity, nil
}
