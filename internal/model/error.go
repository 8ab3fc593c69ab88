package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON             = "INVALID_JSON"
	ErrCodeValidationFailed        = "VALIDATION_FAILED"
	ErrCodeEmptyOrder              = "EMPTY_ORDER"
	ErrCodeInvalidQuantity         = "INVALID_QUANTITY"
	ErrCodeInvalidPrice            = "INVALID_PRICE"
	ErrCodeInvalidStatus           = "INVALID_STATUS"
	ErrCodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	ErrCodeUnknownReference        = "UNKNOWN_REFERENCE"
	ErrCodeDuplicate               = "DUPLICATE"
	ErrCodeNotFound                = "NOT_FOUND"
	ErrCodeNoFieldsToUpdate        = "NO_FIELDS_TO_UPDATE"
	ErrCodeEmptyCart               = "EMPTY_CART"
	ErrCodeOrderTimeout            = "ORDER_TIMEOUT"
	ErrCodeInvalidCredentials      = "INVALID_CREDENTIALS"
	ErrCodeUnauthorised            = "UNAUTHORIZED"
	ErrCodeForbidden               = "FORBIDDEN"
	ErrCodeInternalError           = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrEmptyOrder              = NewDomainError(ErrCodeEmptyOrder, "Order must contain at least one item")
	ErrInvalidQuantity         = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidPrice            = NewDomainError(ErrCodeInvalidPrice, "Unit price must be a non-negative amount with at most two decimal places")
	ErrInvalidStatus           = NewDomainError(ErrCodeInvalidStatus, "Status is not a recognised value")
	ErrInvalidStatusTransition = NewDomainError(ErrCodeInvalidStatusTransition, "Order is in a terminal status")
	ErrUnknownReference        = NewDomainError(ErrCodeUnknownReference, "A referenced customer, part or payment method does not exist")
	ErrDuplicate               = NewDomainError(ErrCodeDuplicate, "Resource already exists")
	ErrNotFound                = NewDomainError(ErrCodeNotFound, "Resource not found")
	ErrNoFieldsToUpdate        = NewDomainError(ErrCodeNoFieldsToUpdate, "No fields to update")
	ErrEmptyCart               = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrOrderTimeout            = NewDomainError(ErrCodeOrderTimeout, "Order placement timed out, it is safe to retry")
	ErrInvalidCredentials      = NewDomainError(ErrCodeInvalidCredentials, "Invalid credentials")
	ErrForbidden               = NewDomainError(ErrCodeForbidden, "Forbidden")
)

// NewValidationError creates a validation error carrying a field-specific message.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidationFailed, message)
}

// ErrorCode returns the domain error code wrapped in err, or ErrCodeInternalError.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrCodeInternalError
}
