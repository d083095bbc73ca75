package perplexity

import (
	"fmt"
	"net/http"

	"pplxgo/internal/utils"
)

// AuthError reports a missing API key or a 401 response from the API.
type AuthError struct {
	msg string
}

func (e *AuthError) Error() string { return e.msg }

// ConfigError reports an invalid client or request configuration: a missing
// model or system role, an unknown configuration key, a value of the wrong
// type, or a 400 response from the API (e.g. a bad model name).
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string { return e.msg }

// APIError reports a failed HTTP exchange that is neither an authentication
// nor a configuration problem. StatusCode is zero when the request never
// produced a response (timeout, connection failure); in that case the
// underlying transport error is available via [errors.Unwrap]. Body carries
// the response payload when one arrived.
type APIError struct {
	StatusCode int
	Body       string

	msg   string
	cause error
}

func (e *APIError) Error() string { return e.msg }

func (e *APIError) Unwrap() error { return e.cause }

// errorFromStatus classifies a non-2xx response by status code. 400 is
// treated as a configuration problem, 401 as an authentication failure, and
// everything else becomes an [*APIError] carrying the status and body.
func errorFromStatus(statusCode int, body []byte) error {
	msg := fmt.Sprintf("request failed: status %d: %s", statusCode, utils.TruncateStringDefault(string(body)))
	switch statusCode {
	case http.StatusBadRequest:
		return &ConfigError{msg: msg}
	case http.StatusUnauthorized:
		return &AuthError{msg: msg}
	default:
		return &APIError{StatusCode: statusCode, Body: string(body), msg: msg}
	}
}

// transportError wraps a failure that happened before any response arrived.
func transportError(err error) error {
	return &APIError{msg: fmt.Sprintf("request failed: %v", err), cause: err}
}
