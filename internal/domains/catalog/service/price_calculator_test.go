package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-backend/internal/domains/catalog/model"
	"hotel-backend/internal/shared/apperror"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func selectable() *model.ServiceDefinition {
	return &model.ServiceDefinition{
		ID:        uuid.New(),
		Name:      "Room upgrade",
		Variant:   model.VariantSelectable,
		BasePrice: dec("80"),
		Options: []model.Option{
			model.NewOption("A", dec("100")),
			model.NewOption("B", dec("200")),
		},
	}
}

func TestPrice_Fixed(t *testing.T) {
	def := &model.ServiceDefinition{ID: uuid.New(), Variant: model.VariantFixed, BasePrice: dec("120000")}

	got, err := NewPriceCalculator().Price(def, LineRequest{ServiceID: def.ID, Quantity: decPtr("3")})
	require.NoError(t, err)

	assert.True(t, got.UnitPrice.Equal(dec("120000")))
	assert.True(t, got.LineSubtotal.Equal(dec("360000")))
}

func TestPrice_FixedDefaultsQuantityToOne(t *testing.T) {
	def := &model.ServiceDefinition{ID: uuid.New(), Variant: model.VariantFixed, BasePrice: dec("99.50")}

	got, err := NewPriceCalculator().Price(def, LineRequest{ServiceID: def.ID})
	require.NoError(t, err)

	assert.True(t, got.Quantity.Equal(dec("1")))
	assert.True(t, got.LineSubtotal.Equal(dec("99.50")))
}

func TestPrice_PerUnit(t *testing.T) {
	def := &model.ServiceDefinition{ID: uuid.New(), Variant: model.VariantPerUnit, BasePrice: dec("30000"), UnitLabel: "kg"}
	calc := NewPriceCalculator()

	got, err := calc.Price(def, LineRequest{ServiceID: def.ID, Weight: decPtr("2.5")})
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(dec("2.5")))
	assert.True(t, got.LineSubtotal.Equal(dec("75000")))

	_, err = calc.Price(def, LineRequest{ServiceID: def.ID})
	assert.True(t, apperror.IsKind(err, apperror.KindMissingSelection))

	_, err = calc.Price(def, LineRequest{ServiceID: def.ID, Weight: decPtr("0")})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestPrice_SelectableMatch(t *testing.T) {
	def := selectable()

	got, err := NewPriceCalculator().Price(def, LineRequest{ServiceID: def.ID, SelectedOptionName: "B", Quantity: decPtr("2")})
	require.NoError(t, err)

	assert.True(t, got.UnitPrice.Equal(dec("200")))
	assert.True(t, got.LineSubtotal.Equal(dec("400")))
	assert.Equal(t, []uuid.UUID{def.Options[1].Key}, got.OptionKeys)
}

func TestPrice_SelectableFallsBackToBasePrice(t *testing.T) {
	def := selectable()

	got, err := NewPriceCalculator().Price(def, LineRequest{ServiceID: def.ID, SelectedOptionName: "C"})
	require.NoError(t, err)

	assert.True(t, got.UnitPrice.Equal(dec("80")))
	assert.Empty(t, got.OptionKeys)
	assert.Equal(t, []string{"C"}, got.SelectedOptions)
}

func TestPrice_SelectableRequiresOption(t *testing.T) {
	def := selectable()

	_, err := NewPriceCalculator().Price(def, LineRequest{ServiceID: def.ID, SelectedOptionName: "  "})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindMissingSelection))
}

func TestPrice_MultipleOptionsSum(t *testing.T) {
	def := &model.ServiceDefinition{
		ID:      uuid.New(),
		Variant: model.VariantMultipleOptions,
		Options: []model.Option{
			model.NewOption("A", dec("50000")),
			model.NewOption("B", dec("75000")),
			model.NewOption("C", dec("10000")),
		},
	}
	calc := NewPriceCalculator()

	got, err := calc.Price(def, LineRequest{ServiceID: def.ID, SelectedOptionNames: []string{"A", "B"}, Quantity: decPtr("1")})
	require.NoError(t, err)
	assert.True(t, got.UnitPrice.Equal(dec("125000")))
	assert.True(t, got.LineSubtotal.Equal(dec("125000")))
	assert.Len(t, got.OptionKeys, 2)

	repeated, err := calc.Price(def, LineRequest{ServiceID: def.ID, SelectedOptionNames: []string{"A", " A ", "B"}})
	require.NoError(t, err)
	assert.True(t, repeated.UnitPrice.Equal(dec("125000")))
	assert.Len(t, repeated.OptionKeys, 2)
	assert.Equal(t, []string{"A", "B"}, repeated.SelectedOptions)

	none, err := calc.Price(def, LineRequest{ServiceID: def.ID, SelectedOptionNames: []string{"Z"}})
	require.NoError(t, err)
	assert.True(t, none.UnitPrice.IsZero())
}

func TestPrice_FreeIgnoresInput(t *testing.T) {
	def := &model.ServiceDefinition{ID: uuid.New(), Variant: model.VariantFree}
	calc := NewPriceCalculator()

	for _, qty := range []string{"1", "7", "0", "-3"} {
		got, err := calc.Price(def, LineRequest{ServiceID: def.ID, Quantity: decPtr(qty), SelectedOptionName: "anything"})
		require.NoError(t, err)
		assert.True(t, got.UnitPrice.IsZero())
		assert.True(t, got.LineSubtotal.IsZero())
	}
}

func TestPrice_InvalidQuantity(t *testing.T) {
	def := &model.ServiceDefinition{ID: uuid.New(), Variant: model.VariantFixed, BasePrice: dec("10")}

	_, err := NewPriceCalculator().Price(def, LineRequest{ServiceID: def.ID, Quantity: decPtr("-1")})
	require.Error(t, err)

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidQuantity, appErr.Code)
}

func TestPrice_Idempotent(t *testing.T) {
	def := selectable()
	calc := NewPriceCalculator()
	req := LineRequest{ServiceID: def.ID, SelectedOptionName: "A", Quantity: decPtr("3")}

	first, err := calc.Price(def, req)
	require.NoError(t, err)
	second, err := calc.Price(def, req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
