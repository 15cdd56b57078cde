package agent

import (
	"errors"
	"net/http"
)

// QuotaExceededMessage is shown verbatim when the agent reports HTTP 402.
const QuotaExceededMessage = "You've reached the Kith API usage limit. Please upgrade your plan to continue."

// APIError is a non-2xx response from the agent service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func newAPIError(status int) *APIError {
	if status == http.StatusPaymentRequired {
		return &APIError{Status: status, Message: QuotaExceededMessage}
	}
	return &APIError{Status: status, Message: "API request failed: " + http.StatusText(status)}
}

// IsQuotaExceeded reports whether err is the agent's usage-limit response.
func IsQuotaExceeded(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusPaymentRequired
}

// IsAPIError reports whether err came from a non-2xx agent response.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
