package model

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricingVariant decides how a line price is derived from a service definition.
type PricingVariant string

const (
	VariantFixed           PricingVariant = "fixed"
	VariantPerUnit         PricingVariant = "per_unit"
	VariantSelectable      PricingVariant = "selectable"
	VariantMultipleOptions PricingVariant = "multiple_options"
	VariantFree            PricingVariant = "free"
)

func (v PricingVariant) IsValid() bool {
	switch v {
	case VariantFixed, VariantPerUnit, VariantSelectable, VariantMultipleOptions, VariantFree:
		return true
	}
	return false
}

// Option is one choice of a Selectable or MultipleOptions service.
// Key is assigned once by NewOption and survives renames and price edits.
type Option struct {
	Key   uuid.UUID       `json:"key"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

func NewOption(name string, price decimal.Decimal) Option {
	return Option{
		Key:   uuid.New(),
		Name:  strings.TrimSpace(name),
		Price: price,
	}
}

// Rename keeps the key.
func (o Option) Rename(name string) Option {
	o.Name = strings.TrimSpace(name)
	return o
}

func (o Option) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Key, validation.By(func(interface{}) error {
			if o.Key == uuid.Nil {
				return errors.New("must be assigned")
			}
			return nil
		})),
		validation.Field(&o.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&o.Price, validation.By(nonNegative)),
	)
}

// ServiceDefinition is a bookable hotel service as configured by back office.
type ServiceDefinition struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Variant   PricingVariant  `json:"pricing_variant"`
	BasePrice decimal.Decimal `json:"base_price"`
	UnitLabel string          `json:"unit_label,omitempty"`
	Options   []Option        `json:"options,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (s ServiceDefinition) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&s.Variant, validation.Required, validation.By(func(interface{}) error {
			if !s.Variant.IsValid() {
				return errors.New("unknown pricing variant")
			}
			return nil
		})),
		validation.Field(&s.BasePrice, validation.By(nonNegative), validation.By(func(interface{}) error {
			if s.Variant == VariantFree && !s.BasePrice.IsZero() {
				return errors.New("must be zero for free services")
			}
			return nil
		})),
		validation.Field(&s.UnitLabel, validation.When(s.Variant == VariantPerUnit, validation.Required)),
		validation.Field(&s.Options,
			validation.When(s.Variant == VariantSelectable || s.Variant == VariantMultipleOptions, validation.Required),
		),
	)
}

// FindOption matches on the trimmed display name.
func (s ServiceDefinition) FindOption(name string) (Option, bool) {
	name = strings.TrimSpace(name)
	for _, opt := range s.Options {
		if opt.Name == name {
			return opt, true
		}
	}
	return Option{}, false
}

func nonNegative(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return errors.New("must be a decimal")
	}
	if d.IsNegative() {
		return errors.New("must be no less than 0")
	}
	return nil
}
