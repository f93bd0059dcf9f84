package dto

import (
	"net/http"

	"github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"
)

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed query parameters
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeNotFound is used for unknown resources
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeTimeout is used when the request context expired mid-pipeline
	ErrCodeTimeout = "ERR_TIMEOUT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:            http.StatusInternalServerError,
	ErrCodeBadRequest:          http.StatusBadRequest,
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeTimeout:             http.StatusGatewayTimeout,
	shared.CodeConfiguration:   http.StatusBadRequest,
	shared.CodeInvalidInput:    http.StatusBadRequest,
	shared.CodeNotFound:        http.StatusNotFound,
	shared.CodeDegenerateInput: http.StatusUnprocessableEntity,
	shared.CodeRendering:       http.StatusInternalServerError,
	shared.CodeInvalidRecord:   http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
