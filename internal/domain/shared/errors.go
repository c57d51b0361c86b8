package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
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
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrStateConflict       = NewDomainError("STATE_CONFLICT", "Operation not allowed in current state")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")

	// ErrActiveLeaseExists surfaces a violation of the partial unique
	// index on (unit_id) WHERE status='ACTIVE'.
	ErrActiveLeaseExists = NewDomainError("CONSTRAINT_VIOLATION", "Only one active lease can exist against a unit")

	// ErrCoverPhotoExists surfaces a violation of the partial unique
	// index on (parent_property_id) WHERE is_cover=TRUE.
	ErrCoverPhotoExists = NewDomainError("CONSTRAINT_VIOLATION", "Property already has a cover photo")
)

// NewSubscriptionMismatchError returns the error used when a record
// exists but belongs to another subscription. It is indistinguishable
// from NOT_FOUND so record existence never leaks across tenants.
func NewSubscriptionMismatchError() *DomainError {
	return NewDomainError("NOT_FOUND", "Resource not found")
}

// NewValidationError creates a field-level validation error
func NewValidationError(message string) *DomainError {
	return NewDomainError("VALIDATION_ERROR", message)
}
