package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

type CheckEligibilityRequest struct {
	CustomerID string   `json:"customer_id"`
	ServiceIDs []string `json:"service_ids"`
	AsOfDate   string   `json:"as_of_date,omitempty"`
}

func (r CheckEligibilityRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CustomerID, validation.Required, is.UUID),
		validation.Field(&r.ServiceIDs,
			validation.Required,
			validation.Length(1, 100),
			validation.Each(validation.Required, is.UUID),
		),
		validation.Field(&r.AsOfDate, validation.Date(DateLayout)),
	)
}

type EligiblePromotionResponse struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Kind              KindView   `json:"kind"`
	Action            ActionView `json:"action"`
	AppliesServiceIDs []string   `json:"applies_service_ids"`
}

type CheckEligibilityResponse struct {
	Promotions []EligiblePromotionResponse `json:"promotions"`
}

func ToEligiblePromotionResponse(e EligiblePromotion) EligiblePromotionResponse {
	ids := make([]string, 0, len(e.AppliesServiceIDs))
	for _, id := range e.AppliesServiceIDs {
		ids = append(ids, id.String())
	}
	return EligiblePromotionResponse{
		ID:                e.PromotionID.String(),
		Name:              e.Name,
		Kind:              ViewKind(e.Kind),
		Action:            ViewAction(e.Action),
		AppliesServiceIDs: ids,
	}
}
