package dto

import (
	"net/http"
	"strings"
)

// General error codes used by the HTTP layer itself
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInvalidJSON is used when request body parsing fails
	ErrCodeInvalidJSON = "INVALID_JSON"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Validation failures map to 400, missing resources to 404,
// duplicates and lock conflicts to 409, and business rule
// violations to 422.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:    http.StatusInternalServerError,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	"NOT_FOUND": http.StatusNotFound,

	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"CATEGORY_IN_USE":      http.StatusConflict,

	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,
	"INACTIVE_PARTNER":   http.StatusUnprocessableEntity,
	"INACTIVE_PRODUCT":   http.StatusUnprocessableEntity,
	"CORRUPT_LEDGER":     http.StatusUnprocessableEntity,
	"INVALID_MOVEMENT":   http.StatusUnprocessableEntity,

	"NO_LINES": http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unmapped INVALID_* codes are treated as bad input; anything else
// unmapped is an internal error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
