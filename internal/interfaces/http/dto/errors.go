package dto

import "net/http"

// Transport-level error codes, used when the request never reaches the
// domain layer.
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. Domain codes
// come from the finance and report packages; anything unmapped is treated
// as an internal error.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:    http.StatusInternalServerError,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,
	ErrCodeNotFound:    http.StatusNotFound,

	// Input validation -> 400 Bad Request
	"INVALID_AMOUNT":                 http.StatusBadRequest,
	"INVALID_BALANCE":                http.StatusBadRequest,
	"INVALID_COUNTERPARTY":           http.StatusBadRequest,
	"INVALID_DATE_RANGE":             http.StatusBadRequest,
	"INVALID_QUANTITY":               http.StatusBadRequest,
	"INVALID_RECONCILIATION_REQUEST": http.StatusBadRequest,
	"INVALID_INPUT":                  http.StatusBadRequest,

	// Business rule violations -> 422 Unprocessable Entity
	"UNSUPPORTED_TAX_TYPE": http.StatusUnprocessableEntity,

	"NOT_FOUND": http.StatusNotFound,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
