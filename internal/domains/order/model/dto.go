package model

import (
	"encoding/json"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"

	promotion "hotel-backend/internal/domains/promotion/model"
)

type OrderLineRequest struct {
	ServiceID           string           `json:"service_id"`
	Quantity            *decimal.Decimal `json:"quantity,omitempty"`
	Weight              *decimal.Decimal `json:"weight,omitempty"`
	SelectedOptionName  string           `json:"selected_option_name,omitempty"`
	SelectedOptionNames []string         `json:"selected_option_names,omitempty"`
	Answers             json.RawMessage  `json:"answers,omitempty"`
}

func (l OrderLineRequest) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.ServiceID, validation.Required, is.UUID),
		validation.Field(&l.SelectedOptionNames, validation.Length(0, 50)),
		validation.Field(&l.Answers, validation.By(func(interface{}) error {
			if len(l.Answers) > 0 && !json.Valid(l.Answers) {
				return errors.New("must be valid JSON")
			}
			return nil
		})),
	)
}

// PriceOrderRequest is shared by quote and create.
type PriceOrderRequest struct {
	CustomerID        string             `json:"customer_id"`
	Lines             []OrderLineRequest `json:"lines"`
	ChosenPromotionID string             `json:"chosen_promotion_id,omitempty"`
	AsOfDate          string             `json:"as_of_date,omitempty"`
}

func (r PriceOrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CustomerID, validation.Required, is.UUID),
		validation.Field(&r.Lines, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.ChosenPromotionID, is.UUID),
		validation.Field(&r.AsOfDate, validation.Date(promotion.DateLayout)),
	)
}

type OrderLineResponse struct {
	ServiceID        string          `json:"service_id"`
	ServiceName      string          `json:"service_name"`
	Quantity         decimal.Decimal `json:"quantity"`
	SelectedOptions  []string        `json:"selected_options,omitempty"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	LineSubtotal     decimal.Decimal `json:"line_subtotal"`
	LineDiscount     decimal.Decimal `json:"line_discount"`
	LineTotal        decimal.Decimal `json:"line_total"`
	IsPromotionGrant bool            `json:"is_promotion_grant,omitempty"`
}

type OrderResponse struct {
	OrderID       string                      `json:"order_id,omitempty"`
	CustomerID    string                      `json:"customer_id"`
	Status        Status                      `json:"status"`
	Lines         []OrderLineResponse         `json:"lines"`
	Subtotal      decimal.Decimal             `json:"subtotal"`
	DiscountTotal decimal.Decimal             `json:"discount_total"`
	GrandTotal    decimal.Decimal             `json:"grand_total"`
	PromotionID   *string                     `json:"promotion_id,omitempty"`
	FreeService   *promotion.FreeServiceGrant `json:"free_service,omitempty"`
	AsOfDate      string                      `json:"as_of_date"`
	CreatedAt     *time.Time                  `json:"created_at,omitempty"`
}

// ToOrderResponse renders o. persisted=false omits the id and timestamps (quotes).
func ToOrderResponse(o *Order, persisted bool) *OrderResponse {
	resp := &OrderResponse{
		CustomerID:    o.CustomerID.String(),
		Status:        o.Status,
		Lines:         make([]OrderLineResponse, 0, len(o.Lines)),
		Subtotal:      o.Subtotal,
		DiscountTotal: o.DiscountTotal,
		GrandTotal:    o.GrandTotal,
		FreeService:   o.FreeService,
		AsOfDate:      o.AsOfDate.Format(promotion.DateLayout),
	}
	if persisted {
		resp.OrderID = o.ID.String()
		createdAt := o.CreatedAt
		resp.CreatedAt = &createdAt
	}
	if o.PromotionID != nil {
		id := o.PromotionID.String()
		resp.PromotionID = &id
	}

	for _, l := range o.Lines {
		resp.Lines = append(resp.Lines, OrderLineResponse{
			ServiceID:        l.ServiceID.String(),
			ServiceName:      l.Details.ServiceName,
			Quantity:         l.Quantity,
			SelectedOptions:  l.SelectedOptions,
			UnitPrice:        l.UnitPrice,
			LineSubtotal:     l.LineSubtotal,
			LineDiscount:     l.LineDiscount,
			LineTotal:        l.LineTotal,
			IsPromotionGrant: l.IsPromotionGrant,
		})
	}
	return resp
}
