package stripe

import (
	"fmt"
)

// StripeError represents a Stripe-specific error
type StripeError struct {
	Code    string
	Message string
	Err     error
}

func (e *StripeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("stripe error [%s]: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("stripe error [%s]: %s", e.Code, e.Message)
}

func (e *StripeError) Unwrap() error {
	return e.Err
}

// Error codes used across the package. upstream_status covers any non-2xx
// answer from the Stripe API; request_failed covers transport-level failures;
// invalid_response covers payloads that don't decode into the expected schema.
const (
	ErrCodeUpstreamStatus  = "upstream_status"
	ErrCodeRequestFailed   = "request_failed"
	ErrCodeInvalidResponse = "invalid_response"
)

// NewStripeError creates a new StripeError with the given code, message, and underlying error
func NewStripeError(code, message string, err error) *StripeError {
	return &StripeError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
