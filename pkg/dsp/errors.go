package dsp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Status sentinels for failures that carry no HTTP status.
const (
	// StatusNetworkFailure marks a request that never produced a response.
	StatusNetworkFailure = 0
	// StatusDecodeFailure marks a response whose body could not be decoded.
	StatusDecodeFailure = -1
)

// Common static errors that can be wrapped with context.
var (
	ErrHTTPStatus         = errors.New("unexpected HTTP status")
	ErrDecode             = errors.New("malformed response body")
	ErrValidation         = errors.New("invalid request")
	ErrUnknownValueType   = errors.New("unknown value type")
	ErrMissingField       = errors.New("missing required field")
	ErrClassNotFound      = errors.New("class definition not found in response")
	ErrUnsupportedValue   = errors.New("unsupported value variant")
	ErrCacheMiss          = errors.New("key not found")
	ErrCacheEntryExpired  = errors.New("entry expired")
	ErrUnknownCacheType   = errors.New("unknown cache type")
	ErrNATSURLRequired    = errors.New("NATS URL is required")
	ErrIRIRequired        = errors.New("IRI is required")
	ErrNoResourceReturned = errors.New("response contains no resource")
)

// ResponseError is the error envelope of every endpoint operation. It is built
// from any non-2xx response, network failure or undecodable body.
type ResponseError struct {
	// Status is the HTTP status code, StatusNetworkFailure or StatusDecodeFailure.
	Status int
	Method string
	URL    string
	// Body is the raw response body, if any was received.
	Body []byte
	// Err is the underlying transport or decode error.
	Err error
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	switch e.Status {
	case StatusNetworkFailure:
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	case StatusDecodeFailure:
		return fmt.Sprintf("%s %s: decoding response: %v", e.Method, e.URL, e.Err)
	}

	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.URL, e.Status, http.StatusText(e.Status), msg)
	}

	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Status, http.StatusText(e.Status))
}

// Unwrap returns the underlying error.
func (e *ResponseError) Unwrap() error {
	return e.Err
}

// Message extracts the server's error text from a knora-api:error or
// {"message": ...} body. It returns "" when none is present.
func (e *ResponseError) Message() string {
	if len(e.Body) == 0 {
		return ""
	}

	var body map[string]interface{}
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return ""
	}

	for _, key := range []string{"http://api.knora.org/ontology/knora-api/v2#error", "knora-api:error", "message", "error"} {
		if s, ok := body[key].(string); ok {
			return strings.TrimSpace(s)
		}
	}

	return ""
}

// ValidationError is returned synchronously, before any request is sent,
// when a request model cannot be encoded.
type ValidationError struct {
	Message string
	// Err is the failed rule, if any.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap makes errors.Is(err, ErrValidation) hold, along with any check
// against the failed rule.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValidation}
	}

	return []error{ErrValidation, e.Err}
}

// ValidationErrorOf wraps a failed rule, using its text as the message.
func ValidationErrorOf(err error) *ValidationError {
	return &ValidationError{Message: err.Error(), Err: err}
}

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// StatusCode returns the envelope status of err, or StatusNetworkFailure when
// err is not a ResponseError.
func StatusCode(err error) int {
	respErr := &ResponseError{}
	if errors.As(err, &respErr) {
		return respErr.Status
	}

	return StatusNetworkFailure
}

func hasStatus(err error, status int) bool {
	respErr := &ResponseError{}
	if errors.As(err, &respErr) {
		return respErr.Status == status
	}

	return false
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsBadRequest checks if the error is a bad request error.
func IsBadRequest(err error) bool {
	return hasStatus(err, http.StatusBadRequest)
}

// IsDecodeError checks if the error came from an undecodable response body.
func IsDecodeError(err error) bool {
	return hasStatus(err, StatusDecodeFailure) || errors.Is(err, ErrDecode)
}

// IsValidationError checks if the error was raised before any request was sent.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
