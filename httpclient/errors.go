package httpclient

import (
	"errors"
	"fmt"
	"net/http"
)

const DefaultErrorMessage = "An unexpected error occurred"

var (
	ErrMissingAPIKey    = errors.New("httpclient: API key is required")
	ErrInvalidBaseURL   = errors.New("httpclient: invalid base URL")
	ErrNilRequest       = errors.New("httpclient: request descriptor is nil")
	ErrRequestFailed    = errors.New("httpclient: request failed")
	ErrDecodeResponse   = errors.New("httpclient: failed to decode response")
	ErrCreateRequest    = errors.New("httpclient: failed to create request")
	ErrEncodeBody       = errors.New("httpclient: failed to encode request body")
	ErrResponseTooLarge = errors.New("httpclient: response body too large")
)

// Kind sentinels. Every *Error unwraps to exactly one of these.
var (
	ErrAuthentication = errors.New("httpclient: authentication error")
	ErrNotFound       = errors.New("httpclient: not found")
	ErrConflict       = errors.New("httpclient: conflict")
	ErrValidation     = errors.New("httpclient: validation error")
	ErrRateLimit      = errors.New("httpclient: rate limit exceeded")
	ErrAPI            = errors.New("httpclient: api error")
)

// Kind classifies a non-2xx response. The zero value is never produced by the
// pipeline.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindAuthentication
	KindNotFound
	KindConflict
	KindValidation
	KindRateLimit
	KindAPI
)

func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindRateLimit:
		return "rate_limit"
	case KindAPI:
		return "api"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// DefaultMessage is used by NewError when no message is supplied.
func (k Kind) DefaultMessage() string {
	switch k {
	case KindAuthentication:
		return "Authentication failed. Please check your API key."
	case KindNotFound:
		return "The requested resource was not found."
	case KindConflict:
		return "The request conflicts with the current state of the resource."
	case KindValidation:
		return "Validation failed."
	case KindRateLimit:
		return "Rate limit exceeded. Please try again later."
	case KindAPI, KindUnknown:
		return DefaultErrorMessage
	default:
		return DefaultErrorMessage
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindAuthentication:
		return ErrAuthentication
	case KindNotFound:
		return ErrNotFound
	case KindConflict:
		return ErrConflict
	case KindValidation:
		return ErrValidation
	case KindRateLimit:
		return ErrRateLimit
	case KindAPI, KindUnknown:
		return ErrAPI
	default:
		return ErrAPI
	}
}

// KindForStatus maps a non-2xx status code to its error kind.
func KindForStatus(statusCode int) Kind {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuthentication
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusTooManyRequests:
		return KindRateLimit
	default:
		return KindAPI
	}
}

// Error is returned for every non-2xx response. StatusCode, Body and Payload
// are only populated for KindAPI.
//
// Message holds the server's message as sent, which may be empty. Error()
// falls back to the kind's DefaultMessage in that case.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Body       string
	Payload    any
	RequestID  string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return e.Kind.DefaultMessage()
}

func (e *Error) Is(target error) bool {
	return errors.Is(e.Kind.sentinel(), target)
}

func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

func NewError(kind Kind, message string) *Error {
	if message == "" {
		message = kind.DefaultMessage()
	}

	return &Error{ //nolint:exhaustruct
		Kind:    kind,
		Message: message,
	}
}

func newResponseError(resp *Response) *Error {
	kind := KindForStatus(resp.StatusCode)

	apiErr := &Error{ //nolint:exhaustruct
		Kind:      kind,
		Message:   extractMessage(resp.Payload),
		RequestID: resp.RequestID,
	}

	if kind == KindAPI {
		apiErr.StatusCode = resp.StatusCode
		apiErr.Body = string(resp.Body)
		apiErr.Payload = resp.Payload
	}

	return apiErr
}

func extractMessage(payload any) string {
	obj, ok := payload.(map[string]any)
	if !ok {
		return DefaultErrorMessage
	}

	if msg, ok := obj["message"].(string); ok {
		return msg
	}

	if msg, ok := obj["error"].(string); ok {
		return msg
	}

	return DefaultErrorMessage
}

func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

// KindOf returns KindUnknown for errors that did not come from a response.
func KindOf(err error) Kind {
	if apiErr, ok := AsError(err); ok {
		return apiErr.Kind
	}

	return KindUnknown
}
