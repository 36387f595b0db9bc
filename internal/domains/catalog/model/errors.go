package model

import (
	"errors"

	"hotel-backend/internal/shared/apperror"
)

var (
	ErrServiceNotFound = apperror.NotFound(apperror.CodeServiceNotFound, "service not found")
	ErrUnknownService  = apperror.Validation(apperror.CodeUnknownService, "order references an unknown service")
	ErrInvalidQuantity = apperror.Validation(apperror.CodeInvalidQuantity, "quantity must be greater than zero")
	ErrOptionRequired  = apperror.MissingSelection("an option must be selected for this service")
	ErrAmountRequired  = apperror.MissingSelection("a weight or amount is required for this service")

	// ErrMalformedService marks a stored definition that breaks its variant rules.
	ErrMalformedService = errors.New("malformed service definition")
)
