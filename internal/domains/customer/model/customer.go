package model

import (
	"time"

	"github.com/google/uuid"

	"hotel-backend/internal/shared/apperror"
)

var ErrCustomerNotFound = apperror.NotFound(apperror.CodeCustomerNotFound, "customer not found")

// Snapshot is the slice of a customer record that promotions look at.
// The customer record itself is owned by the front-desk system.
type Snapshot struct {
	ID             uuid.UUID  `json:"id"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	MembershipTier *string    `json:"membership_tier,omitempty"`
}

// Tier returns "" for customers without a membership.
func (s Snapshot) Tier() string {
	if s.MembershipTier == nil {
		return ""
	}
	return *s.MembershipTier
}
