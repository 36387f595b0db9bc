package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the HTTP layer.
type Kind string

const (
	KindValidation          Kind = "validation"
	KindNotFound            Kind = "not_found"
	KindMissingSelection    Kind = "missing_selection"
	KindIneligiblePromotion Kind = "ineligible_promotion"
	KindInternal            Kind = "internal"
)

// Error codes returned to clients.
const (
	CodeValidationFailed    = "VAL_INVALID_INPUT"
	CodeInvalidQuantity     = "VAL_INVALID_QUANTITY"
	CodeUnknownService      = "VAL_UNKNOWN_SERVICE"
	CodeInvalidTransition   = "ORD_INVALID_TRANSITION"
	CodeCustomerNotFound    = "CUS_NOT_FOUND"
	CodePromotionNotFound   = "PROMO_NOT_FOUND"
	CodeOrderNotFound       = "ORD_NOT_FOUND"
	CodeServiceNotFound     = "SVC_NOT_FOUND"
	CodeMissingSelection    = "PRICE_MISSING_SELECTION"
	CodeIneligiblePromotion = "PROMO_INELIGIBLE"
	CodeInternal            = "SYS_INTERNAL_ERROR"
)

type AppError struct {
	Kind    Kind                   `json:"-"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail returns a copy of e carrying one more detail entry.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	cp := *e
	cp.Details = make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		cp.Details[k] = v
	}
	cp.Details[key] = value
	return &cp
}

// HTTPStatus maps the kind to a response status.
func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindMissingSelection:
		return http.StatusUnprocessableEntity
	case KindIneligiblePromotion:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Validation(code, message string) *AppError {
	return &AppError{Kind: KindValidation, Code: code, Message: message}
}

func NotFound(code, message string) *AppError {
	return &AppError{Kind: KindNotFound, Code: code, Message: message}
}

func MissingSelection(message string) *AppError {
	return &AppError{Kind: KindMissingSelection, Code: CodeMissingSelection, Message: message}
}

func IneligiblePromotion(message string, cause error) *AppError {
	return &AppError{Kind: KindIneligiblePromotion, Code: CodeIneligiblePromotion, Message: message, Err: cause}
}

func Internal(message string, cause error) *AppError {
	return &AppError{Kind: KindInternal, Code: CodeInternal, Message: message, Err: cause}
}

// As extracts an *AppError from anywhere in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err carries an AppError of kind k.
func IsKind(err error, k Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == k
}
