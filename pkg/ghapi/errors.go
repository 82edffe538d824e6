package ghapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Static errors for err113 compliance.
var (
	ErrUnimplemented      = errors.New("operation not implemented on this backend")
	ErrBodyConsumed       = errors.New("response body already consumed")
	ErrNoMoreItems        = errors.New("no more items")
	ErrNoHostInURL        = errors.New("no host specified in URL")
	ErrConfigRequired     = errors.New("config is required")
	ErrCallerRequired     = errors.New("caller is required")
	ErrNilResponse        = errors.New("backend returned no response")
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")
	ErrPageFuncRequired   = errors.New("page fetch function is required")
)

// BackendErrorKind classifies a backend failure.
type BackendErrorKind int

const (
	// KindTransport covers connection, TLS, timeout and cancellation failures.
	KindTransport BackendErrorKind = iota
	// KindJSON covers encoding and decoding failures.
	KindJSON
	// KindIO covers failures while reading a response body.
	KindIO
	// KindUnimplemented marks an entry point the backend does not provide.
	KindUnimplemented
)

// String returns the kind name.
func (k BackendErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindJSON:
		return "json"
	case KindIO:
		return "io"
	case KindUnimplemented:
		return "unimplemented"
	default:
		return fmt.Sprintf("BackendErrorKind(%d)", int(k))
	}
}

// AdapterError is the single error shape every backend failure converts into
// before it reaches endpoint code.
type AdapterError struct {
	Description string
	Source      error
}

// Error implements the error interface.
func (e *AdapterError) Error() string {
	return "client error: " + e.Description
}

// Unwrap exposes the backend error.
func (e *AdapterError) Unwrap() error {
	return e.Source
}

// BackendError is implemented by each backend's error type.
type BackendError interface {
	error
	AdapterError() *AdapterError
}

// ToAdapterError converts any error into an *AdapterError, preserving the
// original as the source. It returns nil for a nil error.
func ToAdapterError(err error) *AdapterError {
	if err == nil {
		return nil
	}

	var adapterErr *AdapterError
	if errors.As(err, &adapterErr) {
		return adapterErr
	}

	var backendErr BackendError
	if errors.As(err, &backendErr) {
		return backendErr.AdapterError()
	}

	return &AdapterError{Description: err.Error(), Source: err}
}

// asAdapterError is ToAdapterError for error-returning call sites; it keeps
// a nil error nil instead of producing a typed nil.
func asAdapterError(err error) error {
	if err == nil {
		return nil
	}

	return ToAdapterError(err)
}

// SerializationError reports a request model that could not be encoded.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serializing request body: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// URLEncodingError reports a request URI that could not be built.
type URLEncodingError struct {
	Err error
}

func (e *URLEncodingError) Error() string {
	return fmt.Sprintf("encoding request url: %v", e.Err)
}

func (e *URLEncodingError) Unwrap() error { return e.Err }

// StatusError carries the decoded body of a status code an endpoint declares.
type StatusError[T any] struct {
	Code int
	Body T
}

// Error implements the error interface.
func (e *StatusError[T]) Error() string {
	if m, ok := any(e.Body).(interface{ ErrorMessage() string }); ok && m.ErrorMessage() != "" {
		return fmt.Sprintf("status %d: %s", e.Code, m.ErrorMessage())
	}

	return fmt.Sprintf("status %d: %s", e.Code, http.StatusText(e.Code))
}

// HTTPStatus returns the response status code.
func (e *StatusError[T]) HTTPStatus() int { return e.Code }

// GenericError is returned for a failure status the endpoint does not declare.
type GenericError struct {
	Code int
}

// Error implements the error interface.
func (e *GenericError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, http.StatusText(e.Code))
}

// HTTPStatus returns the response status code.
func (e *GenericError) HTTPStatus() int { return e.Code }

// StatusCode returns the HTTP status carried by err, or 0 when err did not
// come from a completed response.
func StatusCode(err error) int {
	var coded interface{ HTTPStatus() int }
	if errors.As(err, &coded) {
		return coded.HTTPStatus()
	}

	return 0
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return StatusCode(err) == http.StatusForbidden
}

// IsRateLimited reports whether GitHub refused the request for exceeding a
// rate limit. GitHub signals this with 429 or with a 403 whose message
// mentions the limit.
func IsRateLimited(err error) bool {
	switch StatusCode(err) {
	case http.StatusTooManyRequests:
		return true
	case http.StatusForbidden:
		var basic *StatusError[BasicError]
		if errors.As(err, &basic) {
			return strings.Contains(strings.ToLower(basic.Body.Message), "rate limit")
		}
	}

	return false
}

// IsUnimplemented reports whether err marks an entry point the backend lacks.
func IsUnimplemented(err error) bool {
	return errors.Is(err, ErrUnimplemented)
}

// BasicError is GitHub's standard error body.
type BasicError struct {
	Message          string `json:"message"                     yaml:"message"`
	DocumentationURL string `json:"documentation_url,omitempty" yaml:"documentation_url,omitempty"`
	URL              string `json:"url,omitempty"               yaml:"url,omitempty"`
	Status           string `json:"status,omitempty"            yaml:"status,omitempty"`
}

// ErrorMessage returns the message GitHub sent.
func (b BasicError) ErrorMessage() string { return b.Message }

// ValidationErrorDetail describes one rejected field.
type ValidationErrorDetail struct {
	Resource string `json:"resource,omitempty" yaml:"resource,omitempty"`
	Field    string `json:"field,omitempty"    yaml:"field,omitempty"`
	Code     string `json:"code"               yaml:"code"`
	Message  string `json:"message,omitempty"  yaml:"message,omitempty"`
}

// ValidationError is the 422 body GitHub returns for rejected input.
type ValidationError struct {
	Message          string                  `json:"message"                     yaml:"message"`
	DocumentationURL string                  `json:"documentation_url,omitempty" yaml:"documentation_url,omitempty"`
	Errors           []ValidationErrorDetail `json:"errors,omitempty"            yaml:"errors,omitempty"`
}

// ErrorMessage joins the top-level message with each field problem.
func (v ValidationError) ErrorMessage() string {
	if len(v.Errors) == 0 {
		return v.Message
	}

	parts := make([]string, 0, len(v.Errors))
	for _, detail := range v.Errors {
		switch {
		case detail.Message != "":
			parts = append(parts, detail.Message)
		case detail.Field != "":
			parts = append(parts, fmt.Sprintf("%s.%s %s", detail.Resource, detail.Field, detail.Code))
		default:
			parts = append(parts, detail.Code)
		}
	}

	return fmt.Sprintf("%s (%s)", v.Message, strings.Join(parts, "; "))
}

// ServiceUnavailable is the 503 body returned by the search and issues APIs.
type ServiceUnavailable struct {
	Code             string `json:"code,omitempty"              yaml:"code,omitempty"`
	Message          string `json:"message,omitempty"           yaml:"message,omitempty"`
	DocumentationURL string `json:"documentation_url,omitempty" yaml:"documentation_url,omitempty"`
}

// ErrorMessage returns the message GitHub sent.
func (s ServiceUnavailable) ErrorMessage() string { return s.Message }
