package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies pipeline failures so callers can branch on them
// without string matching
type ErrorKind string

const (
	KindFetch             ErrorKind = "fetch_failed"
	KindMissingCredential ErrorKind = "missing_credential"
	KindTransport         ErrorKind = "transport_error"
	KindUpstream          ErrorKind = "upstream_error"
	KindEmptyResponse     ErrorKind = "empty_response"
	KindParse             ErrorKind = "parse_error"
)

// CustomError represents a custom application error
type CustomError struct {
	Kind    ErrorKind `json:"kind"`
	Code    int       `json:"code"`
	Message string    `json:"message"`
	Detail  string    `json:"detail,omitempty"`
	Err     error     `json:"-"`
}

func (e *CustomError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is (or wraps) a CustomError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}

// NewFetchError covers transport failures, bad statuses and empty content
// while fetching a job posting
func NewFetchError(detail string, cause error) *CustomError {
	return &CustomError{
		Kind:    KindFetch,
		Code:    http.StatusUnprocessableEntity,
		Message: "Job posting fetch failed",
		Detail:  detail,
		Err:     cause,
	}
}

// NewMissingCredentialError is returned before any network call when the
// user has no API key stored for the provider the chosen model needs
func NewMissingCredentialError(provider string) *CustomError {
	return &CustomError{
		Kind:    KindMissingCredential,
		Code:    http.StatusBadRequest,
		Message: "Missing API credential",
		Detail:  fmt.Sprintf("no API key configured for provider %s", provider),
	}
}

// NewTransportError wraps connection-level failures talking to a provider
func NewTransportError(provider string, cause error) *CustomError {
	return &CustomError{
		Kind:    KindTransport,
		Code:    http.StatusBadGateway,
		Message: "AI provider unreachable",
		Detail:  fmt.Sprintf("provider %s: %v", provider, cause),
		Err:     cause,
	}
}

// NewUpstreamError wraps non-2xx responses from a provider
func NewUpstreamError(provider string, status int, body string) *CustomError {
	return &CustomError{
		Kind:    KindUpstream,
		Code:    http.StatusBadGateway,
		Message: "AI provider returned an error",
		Detail:  fmt.Sprintf("provider %s: status %d: %s", provider, status, Truncate(body, 300)),
	}
}

// NewEmptyResponseError is returned when a provider answered 2xx with no
// usable content
func NewEmptyResponseError(provider string) *CustomError {
	return &CustomError{
		Kind:    KindEmptyResponse,
		Code:    http.StatusBadGateway,
		Message: "AI provider returned empty content",
		Detail:  fmt.Sprintf("provider %s produced no text", provider),
	}
}

// NewParseError is returned when model output could not be parsed as the
// expected JSON envelope. Detail carries the raw text for diagnostics.
func NewParseError(raw string, cause error) *CustomError {
	return &CustomError{
		Kind:    KindParse,
		Code:    http.StatusBadGateway,
		Message: "Model output could not be parsed",
		Detail:  Truncate(raw, 2000),
		Err:     cause,
	}
}

// NewValidationError keeps the generic request validation error
func NewValidationError(detail string) *CustomError {
	return &CustomError{
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		Detail:  detail,
	}
}

// NewInternalServerError keeps the generic internal error
func NewInternalServerError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusInternalServerError,
		Message: message,
	}
}
