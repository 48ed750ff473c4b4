package gitlab

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrAPIEndpointRequired = errors.New("API endpoint is required")
	ErrInvalidConfig       = errors.New("invalid config")
	ErrInvalidPage         = errors.New("invalid page")
	ErrMaxPagesExceeded    = errors.New("no match within the page limit")
	ErrUnknownEnumValue    = errors.New("unknown value")
	ErrCircuitOpen         = errors.New("circuit breaker is open")
	ErrSkipTLSOnlyInDev    = errors.New("skipTLS is only allowed in development environments")
)

// ResponseError is a non-2xx response from the API.
type ResponseError struct {
	StatusCode int    `json:"status_code" yaml:"status_code"`
	Method     string `json:"method"      yaml:"method"`
	URL        string `json:"url"         yaml:"url"`
	Message    string `json:"message"     yaml:"message"`
	Body       []byte `json:"-"           yaml:"-"`
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}

	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, e.Message)
}

// errorBody covers the error shapes GitLab returns:
// {"message": "..."}, {"message": {"field": ["..."]}} and
// {"error": "...", "error_description": "..."}.
type errorBody struct {
	Message          json.RawMessage `json:"message"`
	Error            string          `json:"error"`
	ErrorDescription string          `json:"error_description"`
}

// ParseResponseError builds a ResponseError from a status code and body.
// Bodies that are not JSON are kept verbatim in Body with an empty Message.
func ParseResponseError(statusCode int, body []byte) *ResponseError {
	respErr := &ResponseError{
		StatusCode: statusCode,
		Body:       body,
	}

	var parsed errorBody

	err := json.Unmarshal(body, &parsed)
	if err != nil {
		return respErr
	}

	switch {
	case len(parsed.Message) > 0:
		respErr.Message = flattenMessage(parsed.Message)
	case parsed.ErrorDescription != "":
		respErr.Message = parsed.Error + ": " + parsed.ErrorDescription
	default:
		respErr.Message = parsed.Error
	}

	return respErr
}

func flattenMessage(raw json.RawMessage) string {
	var text string
	if json.Unmarshal(raw, &text) == nil {
		return text
	}

	var fields map[string][]string
	if json.Unmarshal(raw, &fields) == nil {
		keys := make([]string, 0, len(fields))
		for key := range fields {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			parts = append(parts, key+" "+strings.Join(fields[key], ", "))
		}

		return strings.Join(parts, "; ")
	}

	return string(raw)
}

func hasStatus(err error, status int) bool {
	respErr := &ResponseError{}
	if errors.As(err, &respErr) {
		return respErr.StatusCode == status
	}

	return false
}

// IsNotFound reports an HTTP 404 from the API. It is unrelated to a
// resolution that found no match, which is not an error.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports an HTTP 401.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden reports an HTTP 403.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsRateLimited reports an HTTP 429.
func IsRateLimited(err error) bool {
	return hasStatus(err, http.StatusTooManyRequests)
}
