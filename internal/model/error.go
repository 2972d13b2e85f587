package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeInvalidParameter = "INVALID_PARAMETER"
	ErrCodeMissingField     = "MISSING_FIELD"
	ErrCodeCouponRejected   = "COUPON_REJECTED"
	ErrCodeCouponNotFound   = "COUPON_NOT_FOUND"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodeCartItemNotFound = "CART_ITEM_NOT_FOUND"
	ErrCodeCartEmpty        = "CART_EMPTY"
	ErrCodeInvalidQuantity  = "INVALID_QUANTITY"
	ErrCodeInvalidDistance  = "INVALID_DISTANCE"
	ErrCodeInvalidBirthday  = "INVALID_BIRTHDAY"
	ErrCodeBirthdayLocked   = "BIRTHDAY_LOCKED"
	ErrCodeOrderNotFound    = "ORDER_NOT_FOUND"
	ErrCodeMissingIdentity  = "MISSING_IDENTITY"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeInternalError    = "INTERNAL_ERROR"
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
	ErrProductNotFound  = NewDomainError(ErrCodeProductNotFound, "One or more products not found")
	ErrCartItemNotFound = NewDomainError(ErrCodeCartItemNotFound, "Cart item not found")
	ErrCartEmpty        = NewDomainError(ErrCodeCartEmpty, "Cart is empty")
	ErrInvalidQuantity  = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidDistance  = NewDomainError(ErrCodeInvalidDistance, "Delivery distance must be greater than zero")
	ErrInvalidBirthday  = NewDomainError(ErrCodeInvalidBirthday, "Birthday must be a date in YYYY-MM-DD format")
	ErrBirthdayLocked   = NewDomainError(ErrCodeBirthdayLocked, "Birthday has already been set and cannot be changed")
	ErrCouponNotFound   = NewDomainError(ErrCodeCouponNotFound, "Coupon code not found")
	ErrOrderNotFound    = NewDomainError(ErrCodeOrderNotFound, "Order not found")
)

// NewCouponRejectedError reports a coupon that blocks an order.
func NewCouponRejectedError(message string) *DomainError {
	return NewDomainError(ErrCodeCouponRejected, message)
}

// NewMissingFieldError reports a required request field left empty.
func NewMissingFieldError(field string) *DomainError {
	return NewDomainError(ErrCodeMissingField, field+" is required")
}
