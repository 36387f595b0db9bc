package model

import (
	"errors"

	"hotel-backend/internal/shared/apperror"
)

var ErrPromotionNotFound = apperror.NotFound(apperror.CodePromotionNotFound, "promotion not found")

// Reasons a promotion does not apply to a candidate order.
var (
	ErrInactive        = errors.New("promotion is not active")
	ErrNoScopeOverlap  = errors.New("no requested service is covered by the promotion")
	ErrNoBirthDate     = errors.New("customer has no birth date on file")
	ErrOutsideBirthday = errors.New("outside the birthday window")
	ErrNoMembership    = errors.New("customer has no membership")
	ErrTierMismatch    = errors.New("membership tier does not match")
	ErrUnsupportedKind = errors.New("unsupported promotion kind")
)

// Construction errors.
var (
	ErrEmptyTier           = errors.New("membership tier must not be empty")
	ErrInvalidPercent      = errors.New("percent off must be between 1 and 100")
	ErrNegativeAmount      = errors.New("amount off must not be negative")
	ErrMissingFreeService  = errors.New("free service id is required")
	ErrInvalidFreeQuantity = errors.New("free service quantity must be at least 1")
	ErrMalformedPromotion  = errors.New("malformed promotion")
)
