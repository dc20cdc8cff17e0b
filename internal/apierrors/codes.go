// Package apierrors provides structured API error codes and responses.
// All codes are namespaced (e.g., "ticket:not_found", "captcha:failed").
// The wire format is a single-key JSON object {"error": <message>}.
package apierrors

import "net/http"

// Error codes - registered automatically at init
const (
	// Request errors
	CodeMissingFields = "ticket:missing_fields"

	// Verification failure
	CodeCaptchaFailed = "captcha:failed"

	// Resource errors
	CodeNotFound       = "core:not_found"
	CodeTicketNotFound = "ticket:not_found"
	CodeFlightNotFound = "flight:not_found"

	// Server errors
	CodeInternalError = "core:internal_error"
)

// coreErrors defines all error codes with their wire messages and HTTP status.
// The messages are part of the public API contract and must stay stable.
var coreErrors = []ErrorCode{
	{Code: CodeMissingFields, Message: "missing fields", HTTPStatus: http.StatusBadRequest},

	{Code: CodeCaptchaFailed, Message: "captcha_failed", HTTPStatus: http.StatusForbidden},

	{Code: CodeNotFound, Message: "not found", HTTPStatus: http.StatusNotFound},
	{Code: CodeTicketNotFound, Message: "ticket_not_found", HTTPStatus: http.StatusNotFound},
	{Code: CodeFlightNotFound, Message: "flight_not_found", HTTPStatus: http.StatusNotFound},

	{Code: CodeInternalError, Message: "internal error", HTTPStatus: http.StatusInternalServerError},
}

func init() {
	// Register all error codes
	for _, e := range coreErrors {
		Registry.Register(e)
	}
}
