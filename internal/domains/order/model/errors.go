package model

import (
	"errors"

	"hotel-backend/internal/shared/apperror"
)

var (
	ErrOrderNotFound     = apperror.NotFound(apperror.CodeOrderNotFound, "order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// NewTransitionError reports a status change the state machine does not allow.
func NewTransitionError(from, to Status) *apperror.AppError {
	return &apperror.AppError{
		Kind:    apperror.KindValidation,
		Code:    apperror.CodeInvalidTransition,
		Message: "order can only be paid or cancelled while pending",
		Details: map[string]interface{}{
			"from": string(from),
			"to":   string(to),
		},
		Err: ErrInvalidTransition,
	}
}
