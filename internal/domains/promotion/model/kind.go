package model

import (
	"fmt"
	"strings"
)

type KindType string

const (
	KindBirthday   KindType = "birthday"
	KindMembership KindType = "membership"
	KindEvent      KindType = "event"
)

// Kind is the eligibility rule of a promotion. The set of kinds is closed:
// only Birthday, Membership and Event implement it.
type Kind interface {
	Type() KindType
	isKind()
}

// Birthday applies from DaysBefore days before the customer's birthday up to the day itself.
type Birthday struct {
	DaysBefore uint
}

// Membership applies to customers holding Tier (case-insensitive).
type Membership struct {
	Tier string
}

// Event applies to anyone ordering an in-scope service while the promotion is active.
type Event struct{}

func (Birthday) Type() KindType   { return KindBirthday }
func (Membership) Type() KindType { return KindMembership }
func (Event) Type() KindType      { return KindEvent }

func (Birthday) isKind()   {}
func (Membership) isKind() {}
func (Event) isKind()      {}

func NewBirthday(daysBefore uint) Kind {
	return Birthday{DaysBefore: daysBefore}
}

func NewMembership(tier string) (Kind, error) {
	tier = strings.TrimSpace(tier)
	if tier == "" {
		return nil, ErrEmptyTier
	}
	return Membership{Tier: tier}, nil
}

func NewEvent() Kind {
	return Event{}
}

// KindView is the wire and snapshot form of a Kind.
type KindView struct {
	Type       KindType `json:"type"`
	DaysBefore *uint    `json:"days_before,omitempty"`
	Tier       string   `json:"tier,omitempty"`
}

func ViewKind(k Kind) KindView {
	switch v := k.(type) {
	case Birthday:
		days := v.DaysBefore
		return KindView{Type: KindBirthday, DaysBefore: &days}
	case Membership:
		return KindView{Type: KindMembership, Tier: v.Tier}
	default:
		return KindView{Type: KindEvent}
	}
}

// KindFromColumns rebuilds a Kind from its discriminator and parameter columns.
func KindFromColumns(kind string, daysBefore *int32, tier *string) (Kind, error) {
	switch KindType(kind) {
	case KindBirthday:
		if daysBefore == nil || *daysBefore < 0 {
			return nil, fmt.Errorf("%w: birthday promotion needs a non-negative days_before", ErrMalformedPromotion)
		}
		return NewBirthday(uint(*daysBefore)), nil
	case KindMembership:
		if tier == nil {
			return nil, fmt.Errorf("%w: membership promotion needs a tier", ErrMalformedPromotion)
		}
		return NewMembership(*tier)
	case KindEvent:
		return NewEvent(), nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrMalformedPromotion, kind)
	}
}
