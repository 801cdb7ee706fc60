// Package errors provides custom error types and definitions for the application.
//
//nolint:lll
package errors

import (
	"fmt"
	"net/http"
)

// The custom Error type satisfies the error interface.
// Error() returns a human-readable description of the error.
//
// Error codes in the 40001-49999 range are the caller's fault,
// and they return HTTP Status 400, 401 or 404, whatever is most appropriate.
//
// Error codes 50001-59999 are the server's or the upstream provider's fault
// and they return HTTP Status 500 or 503.
//
// NEVER change any of the current error codes, only append new errors after the current last 4XXX or 5XXX.
// If you notice there's a gap, that code was used in the past for some error (not anymore) and shouldn't be reused.
var (
	// Authentication errors (401)
	ErrUnauthorized     = Error{Code: 40001, HTTPstatus: http.StatusUnauthorized, Err: fmt.Errorf("Unauthorized"), Message: "Missing or invalid Authorization header. Expected: Bearer sk_...", LogLevel: "info"}
	ErrInvalidKeyFormat = Error{Code: 40002, HTTPstatus: http.StatusUnauthorized, Err: fmt.Errorf("Unauthorized"), Message: "Invalid API key format. Stripe secret keys start with sk_", LogLevel: "info"}

	// Processing errors (500)
	ErrPaymentLinksProcessing     = Error{Code: 50001, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("Failed to process payment links"), Message: "Unknown error"}
	ErrGenericInternalServerError = Error{Code: 50002, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("Internal server error"), Message: "Unknown error"}
)
