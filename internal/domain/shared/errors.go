package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches any DomainError carrying the same code, so errors.Is works
// against the sentinels below regardless of the message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes raised by the audit pipeline
const (
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeConfiguration   = "CONFIGURATION_ERROR"
	CodeDegenerateInput = "DEGENERATE_INPUT"
	CodeRendering       = "RENDERING_ERROR"
	CodeInvalidRecord   = "INVALID_RECORD"
)

// Common domain errors
var (
	ErrNotFound        = NewDomainError(CodeNotFound, "Resource not found")
	ErrInvalidInput    = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrConfiguration   = NewDomainError(CodeConfiguration, "Invalid generation parameters")
	ErrDegenerateInput = NewDomainError(CodeDegenerateInput, "Grand total of current liabilities is zero")
	ErrRendering       = NewDomainError(CodeRendering, "Document cannot be rendered")
	ErrInvalidRecord   = NewDomainError(CodeInvalidRecord, "Ledger record violates its invariants")
)

// NewConfigurationError reports invalid generation parameters such as a
// non-positive size or an unknown domain.
func NewConfigurationError(format string, args ...any) *DomainError {
	return NewDomainError(CodeConfiguration, fmt.Sprintf(format, args...))
}

// NewRenderingError reports a document that cannot be produced.
func NewRenderingError(format string, args ...any) *DomainError {
	return NewDomainError(CodeRendering, fmt.Sprintf(format, args...))
}

// NewInvalidRecordError reports a ledger record that breaks an invariant.
func NewInvalidRecordError(format string, args ...any) *DomainError {
	return NewDomainError(CodeInvalidRecord, fmt.Sprintf(format, args...))
}
