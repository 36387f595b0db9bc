package model

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int32Ptr(v int32) *int32 { return &v }
func strPtr(v string) *string { return &v }

func TestKindFromColumns(t *testing.T) {
	k, err := KindFromColumns("birthday", int32Ptr(3), nil)
	require.NoError(t, err)
	assert.Equal(t, Birthday{DaysBefore: 3}, k)

	k, err = KindFromColumns("membership", nil, strPtr(" Gold "))
	require.NoError(t, err)
	assert.Equal(t, Membership{Tier: "Gold"}, k)

	k, err = KindFromColumns("event", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, KindEvent, k.Type())

	_, err = KindFromColumns("birthday", nil, nil)
	assert.True(t, errors.Is(err, ErrMalformedPromotion))

	_, err = KindFromColumns("anniversary", nil, nil)
	assert.True(t, errors.Is(err, ErrMalformedPromotion))
}

func TestActionConstructors(t *testing.T) {
	_, err := NewPercentOff(0)
	assert.ErrorIs(t, err, ErrInvalidPercent)
	_, err = NewPercentOff(101)
	assert.ErrorIs(t, err, ErrInvalidPercent)

	a, err := NewPercentOff(100)
	require.NoError(t, err)
	assert.Equal(t, ActionPercentOff, a.Type())

	_, err = NewAmountOff(decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = NewFreeService(uuid.New(), 0)
	assert.ErrorIs(t, err, ErrInvalidFreeQuantity)
	_, err = NewFreeService(uuid.Nil, 1)
	assert.ErrorIs(t, err, ErrMissingFreeService)
}

func TestActionFromColumns(t *testing.T) {
	amount := decimal.RequireFromString("50000")
	a, err := ActionFromColumns("amount_off", nil, &amount, nil, nil)
	require.NoError(t, err)
	assert.True(t, a.(AmountOff).Amount.Equal(amount))

	svc := uuid.New()
	a, err = ActionFromColumns("free_service", nil, nil, &svc, int32Ptr(2))
	require.NoError(t, err)
	assert.Equal(t, FreeService{ServiceID: svc, Quantity: 2}, a)

	_, err = ActionFromColumns("percent_off", nil, nil, nil, nil)
	assert.ErrorIs(t, err, ErrMalformedPromotion)
}

func TestViews(t *testing.T) {
	kv := ViewKind(NewBirthday(5))
	require.NotNil(t, kv.DaysBefore)
	assert.Equal(t, uint(5), *kv.DaysBefore)

	svc := uuid.New()
	av := ViewAction(FreeService{ServiceID: svc, Quantity: 1})
	assert.Equal(t, ActionFreeService, av.Type)
	require.NotNil(t, av.ServiceID)
	assert.Equal(t, svc, *av.ServiceID)
}

func TestCheckEligibilityRequest_Validate(t *testing.T) {
	valid := CheckEligibilityRequest{
		CustomerID: uuid.NewString(),
		ServiceIDs: []string{uuid.NewString()},
		AsOfDate:   "2025-03-07",
	}
	assert.NoError(t, valid.Validate())

	noServices := valid
	noServices.ServiceIDs = nil
	assert.Error(t, noServices.Validate())

	badDate := valid
	badDate.AsOfDate = "07/03/2025"
	assert.Error(t, badDate.Validate())

	badID := valid
	badID.ServiceIDs = []string{"room-service"}
	assert.Error(t, badID.Validate())
}
