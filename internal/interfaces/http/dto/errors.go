package dto

import "net/http"

// Error code constants
// Format: ERR_<CATEGORY>_<DESCRIPTION>

const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeValidation is used when request binding or validation fails
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeConflict is used when a concurrent sync run holds the shop lock
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConnectionDisabled is used when the shop's POS connection is
	// configured but switched off
	ErrCodeConnectionDisabled = "ERR_CONNECTION_DISABLED"
	// ErrCodePreconditionUnmet is used when an operation depends on entities
	// that have not synced yet
	ErrCodePreconditionUnmet = "ERR_PRECONDITION_UNMET"
	// ErrCodePOSRejected is used when the POS rejected the pushed payload
	ErrCodePOSRejected = "ERR_POS_REJECTED"
	// ErrCodePOSUnavailable is used when the POS cannot be reached
	ErrCodePOSUnavailable = "ERR_POS_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeConnectionDisabled: http.StatusUnprocessableEntity,
	ErrCodePreconditionUnmet:  http.StatusUnprocessableEntity,
	ErrCodePOSRejected:        http.StatusUnprocessableEntity,
	ErrCodePOSUnavailable:     http.StatusBadGateway,
}

// HTTPStatusForCode returns the HTTP status for an error code, defaulting to
// 500 for unknown codes
func HTTPStatusForCode(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
