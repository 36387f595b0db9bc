package service

import (
	"context"

	"hotel-backend/internal/domains/promotion/model"
)

type ServiceInterface interface {
	// CheckEligibility lists the promotions a customer could use for the given services.
	// It is read-only and the result is advisory: orders re-check at commit.
	CheckEligibility(ctx context.Context, req *model.CheckEligibilityRequest) (*model.CheckEligibilityResponse, error)
}
