package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customer "hotel-backend/internal/domains/customer/model"
	"hotel-backend/internal/domains/promotion/model"
)

func TestBuildUsage_SnapshotsContext(t *testing.T) {
	x, y := uuid.New(), uuid.New()
	pct, _ := model.NewPercentOff(10)
	gold, _ := model.NewMembership("gold")
	promo := model.EligiblePromotion{
		PromotionID:       uuid.New(),
		Kind:              gold,
		Action:            pct,
		AppliesServiceIDs: []uuid.UUID{x},
	}
	alloc := NewDiscountAllocator(false).Allocate([]model.LineAmount{
		{ServiceID: x, LineSubtotal: d("100000")},
		{ServiceID: y, LineSubtotal: d("50000")},
	}, &promo)

	tier := "Gold"
	cust := customer.Snapshot{ID: uuid.New(), MembershipTier: &tier}
	orderID := uuid.New()
	asOf := time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC)
	now := asOf.Add(9 * time.Hour)

	usage := BuildUsage(orderID, cust, promo, alloc, asOf, now)

	assert.NotEqual(t, uuid.Nil, usage.ID)
	assert.Equal(t, orderID, usage.OrderID)
	assert.Equal(t, cust.ID, usage.CustomerID)
	assert.True(t, usage.DiscountApplied.Equal(d("10000")))
	assert.Nil(t, usage.FreeServiceID)
	assert.Equal(t, "2025-03-07", usage.Snapshot.AsOfDate)
	assert.Equal(t, "Gold", usage.Snapshot.CustomerTier)
	assert.True(t, usage.Snapshot.Subtotal.Equal(d("150000")))
	assert.True(t, usage.Snapshot.EligibleSubtotal.Equal(d("100000")))
	assert.Equal(t, model.KindMembership, usage.Snapshot.Kind.Type)
	assert.Equal(t, 10, usage.Snapshot.Action.Percent)
	assert.Equal(t, []uuid.UUID{x}, usage.Snapshot.AppliesServiceIDs)
	assert.Equal(t, now, usage.CreatedAt)
}

func TestBuildUsage_FreeServiceGrant(t *testing.T) {
	x, spa := uuid.New(), uuid.New()
	free, _ := model.NewFreeService(spa, 1)
	promo := model.EligiblePromotion{PromotionID: uuid.New(), Kind: model.NewEvent(), Action: free, AppliesServiceIDs: []uuid.UUID{x}}
	alloc := NewDiscountAllocator(false).Allocate([]model.LineAmount{{ServiceID: x, LineSubtotal: d("10")}}, &promo)

	usage := BuildUsage(uuid.New(), customer.Snapshot{ID: uuid.New()}, promo, alloc, time.Now(), time.Now())

	require.NotNil(t, usage.FreeServiceID)
	assert.Equal(t, spa, *usage.FreeServiceID)
	require.NotNil(t, usage.FreeServiceQty)
	assert.Equal(t, 1, *usage.FreeServiceQty)
	assert.True(t, usage.DiscountApplied.IsZero())
}

func TestUsageRecorder_Record(t *testing.T) {
	ctx := context.Background()
	repo := new(mockPromotionRepo)
	usage := &model.PromotionUsage{ID: uuid.New()}
	repo.On("CreateUsage", ctx, mock.Anything, usage).Return(nil).Once()

	require.NoError(t, NewUsageRecorder(repo).Record(ctx, nil, usage))
	repo.AssertExpectations(t)
}

func TestUsageRecorder_RecordWrapsError(t *testing.T) {
	ctx := context.Background()
	repo := new(mockPromotionRepo)
	cause := errors.New("duplicate key")
	repo.On("CreateUsage", ctx, mock.Anything, mock.Anything).Return(cause)

	err := NewUsageRecorder(repo).Record(ctx, nil, &model.PromotionUsage{})
	assert.ErrorIs(t, err, cause)
}
