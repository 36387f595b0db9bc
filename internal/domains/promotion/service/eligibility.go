package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	customer "hotel-backend/internal/domains/customer/model"
	"hotel-backend/internal/domains/promotion/model"
	"hotel-backend/internal/shared/utils"
)

// EligibilityEvaluator decides which promotions apply to a candidate order.
// It has no I/O; callers load the customer and the active promotions.
type EligibilityEvaluator struct {
	loc *time.Location
}

// NewEligibilityEvaluator evaluates calendar dates in loc.
func NewEligibilityEvaluator(loc *time.Location) *EligibilityEvaluator {
	if loc == nil {
		loc = time.UTC
	}
	return &EligibilityEvaluator{loc: loc}
}

// Evaluate returns every qualifying promotion in the order given.
func (e *EligibilityEvaluator) Evaluate(
	cust customer.Snapshot,
	requested []uuid.UUID,
	asOf time.Time,
	promotions []*model.Promotion,
) []model.EligiblePromotion {
	requested = DedupeIDs(requested)

	result := make([]model.EligiblePromotion, 0, len(promotions))
	for _, promo := range promotions {
		eligible, err := e.EvaluateOne(cust, requested, asOf, promo)
		if err != nil {
			continue
		}
		result = append(result, *eligible)
	}
	return result
}

// EvaluateOne checks a single promotion and returns the reason when it does not apply.
func (e *EligibilityEvaluator) EvaluateOne(
	cust customer.Snapshot,
	requested []uuid.UUID,
	asOf time.Time,
	promo *model.Promotion,
) (*model.EligiblePromotion, error) {
	if !promo.IsActive {
		return nil, model.ErrInactive
	}

	applies := intersectScope(promo, DedupeIDs(requested))
	if len(applies) == 0 {
		return nil, model.ErrNoScopeOverlap
	}

	if err := e.checkKind(cust, asOf, promo.Kind); err != nil {
		return nil, err
	}

	return &model.EligiblePromotion{
		PromotionID:       promo.ID,
		Name:              promo.Name,
		Kind:              promo.Kind,
		Action:            promo.Action,
		AppliesServiceIDs: applies,
	}, nil
}

func (e *EligibilityEvaluator) checkKind(cust customer.Snapshot, asOf time.Time, kind model.Kind) error {
	switch k := kind.(type) {
	case model.Birthday:
		if cust.BirthDate == nil {
			return model.ErrNoBirthDate
		}
		if !e.inBirthdayWindow(*cust.BirthDate, asOf, k.DaysBefore) {
			return model.ErrOutsideBirthday
		}
		return nil

	case model.Membership:
		if cust.MembershipTier == nil || strings.TrimSpace(*cust.MembershipTier) == "" {
			return model.ErrNoMembership
		}
		if !strings.EqualFold(strings.TrimSpace(*cust.MembershipTier), strings.TrimSpace(k.Tier)) {
			return model.ErrTierMismatch
		}
		return nil

	case model.Event:
		return nil

	default:
		return model.ErrUnsupportedKind
	}
}

// inBirthdayWindow compares asOf with this year's birthday only, so a window
// reaching back across Jan 1 does not match a birthday early next year.
// Feb 29 birthdays fall on Mar 1 in common years.
func (e *EligibilityEvaluator) inBirthdayWindow(birthDate, asOf time.Time, daysBefore uint) bool {
	today := utils.CalendarDate(asOf, e.loc)
	_, month, day := birthDate.Date()
	birthdayThisYear := time.Date(today.Year(), month, day, 0, 0, 0, 0, time.UTC)

	d := utils.DaysBetween(birthdayThisYear, today)
	return d <= 0 && -d <= int(daysBefore)
}

func intersectScope(promo *model.Promotion, requested []uuid.UUID) []uuid.UUID {
	if !promo.HasScope() {
		out := make([]uuid.UUID, len(requested))
		copy(out, requested)
		return out
	}

	var out []uuid.UUID
	for _, id := range requested {
		if promo.Covers(id) {
			out = append(out, id)
		}
	}
	return out
}

// DedupeIDs keeps the first occurrence of each id.
func DedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
