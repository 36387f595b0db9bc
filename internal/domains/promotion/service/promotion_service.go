package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	catalogModel "hotel-backend/internal/domains/catalog/model"
	catalogRepo "hotel-backend/internal/domains/catalog/repository"
	customerRepo "hotel-backend/internal/domains/customer/repository"
	"hotel-backend/internal/domains/promotion/model"
	"hotel-backend/internal/domains/promotion/repository"
	"hotel-backend/internal/shared/apperror"
	"hotel-backend/internal/shared/utils"
	"hotel-backend/pkg/clock"
	"hotel-backend/pkg/logger"
)

type promotionService struct {
	repo      repository.PromotionRepository
	customers customerRepo.CustomerReader
	catalog   catalogRepo.CatalogReader
	evaluator *EligibilityEvaluator
	clock     clock.Clock
	loc       *time.Location
}

func NewPromotionService(
	repo repository.PromotionRepository,
	customers customerRepo.CustomerReader,
	catalog catalogRepo.CatalogReader,
	evaluator *EligibilityEvaluator,
	clk clock.Clock,
	loc *time.Location,
) ServiceInterface {
	return &promotionService{
		repo:      repo,
		customers: customers,
		catalog:   catalog,
		evaluator: evaluator,
		clock:     clk,
		loc:       loc,
	}
}

func (s *promotionService) CheckEligibility(ctx context.Context, req *model.CheckEligibilityRequest) (*model.CheckEligibilityResponse, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, apperror.Validation(apperror.CodeValidationFailed, "customer_id must be a UUID")
	}

	serviceIDs, err := ParseIDs(req.ServiceIDs)
	if err != nil {
		return nil, err
	}
	serviceIDs = DedupeIDs(serviceIDs)

	asOf, err := ResolveAsOf(req.AsOfDate, s.clock, s.loc)
	if err != nil {
		return nil, err
	}

	if err := EnsureServicesExist(ctx, s.catalog, serviceIDs); err != nil {
		return nil, err
	}

	cust, err := s.customers.FindSnapshot(ctx, customerID)
	if err != nil {
		return nil, err
	}

	promotions, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, apperror.Internal("load active promotions", err)
	}

	eligible := s.evaluator.Evaluate(*cust, serviceIDs, asOf, promotions)

	logger.Debug("eligibility checked", map[string]interface{}{
		"customer_id": customerID.String(),
		"as_of":       asOf.Format(model.DateLayout),
		"candidates":  len(promotions),
		"eligible":    len(eligible),
	})

	resp := &model.CheckEligibilityResponse{
		Promotions: make([]model.EligiblePromotionResponse, 0, len(eligible)),
	}
	for _, e := range eligible {
		resp.Promotions = append(resp.Promotions, model.ToEligiblePromotionResponse(e))
	}
	return resp, nil
}

// ResolveAsOf returns the as-of instant: the given YYYY-MM-DD at midnight in loc,
// or the clock's now when raw is empty.
func ResolveAsOf(raw string, clk clock.Clock, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if raw == "" {
		return clk.Now().In(loc), nil
	}

	d, err := utils.ParseDate(raw)
	if err != nil {
		return time.Time{}, apperror.Validation(apperror.CodeValidationFailed, "as_of_date must be YYYY-MM-DD").
			WithDetail("as_of_date", raw)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc), nil
}

func ParseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, apperror.Validation(apperror.CodeValidationFailed, "service ids must be UUIDs").
				WithDetail("service_id", r)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// EnsureServicesExist rejects requests naming a service the catalog does not know.
func EnsureServicesExist(ctx context.Context, catalog catalogRepo.CatalogReader, ids []uuid.UUID) error {
	defs, err := catalog.FindByIDs(ctx, ids)
	if err != nil {
		return apperror.Internal("load services", err)
	}
	for _, id := range ids {
		if _, ok := defs[id]; !ok {
			return catalogModel.ErrUnknownService.WithDetail("service_id", id.String())
		}
	}
	return nil
}
