package httpclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var errTextPayload = errors.New("payload is text and target is not *string or *[]byte")

// Response holds a classified response. Payload is the decoded JSON value, the
// body text for non-JSON responses, or nil when the body could not be parsed.
type Response struct {
	StatusCode int
	Header     http.Header
	RequestID  string
	Body       []byte
	Payload    any
	json       bool
}

// NewResponse classifies body according to the Content-Type in header.
func NewResponse(statusCode int, header http.Header, body []byte) *Response {
	if header == nil {
		header = make(http.Header)
	}

	contentType := header.Get(HeaderContentType)
	payload, isJSON := classify(contentType, body)

	return &Response{
		StatusCode: statusCode,
		Header:     header,
		RequestID:  header.Get(HeaderXRequestID),
		Body:       body,
		Payload:    payload,
		json:       isJSON,
	}
}

// Err returns the taxonomy error for a non-2xx response and nil otherwise.
func (r *Response) Err() error {
	if r.OK() {
		return nil
	}

	return newResponseError(r)
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) IsJSON() bool {
	return r.json
}

// Decode unmarshals the payload into target. A nil payload leaves target
// untouched.
func (r *Response) Decode(target any) error {
	if r.Payload == nil || target == nil {
		return nil
	}

	if r.json {
		if err := json.Unmarshal(r.Body, target); err != nil {
			return fmt.Errorf("%w: %w", ErrDecodeResponse, err)
		}

		return nil
	}

	text, _ := r.Payload.(string)

	switch typed := target.(type) {
	case *string:
		*typed = text
	case *[]byte:
		*typed = []byte(text)
	default:
		return fmt.Errorf("%w: %w", ErrDecodeResponse, errTextPayload)
	}

	return nil
}

func isJSONContentType(contentType string) bool {
	return strings.Contains(contentType, ContentTypeJSON)
}

// classify mirrors the API's content negotiation: JSON bodies are parsed,
// everything else is kept as text. Parse failures yield a nil payload.
func classify(contentType string, body []byte) (any, bool) {
	if !isJSONContentType(contentType) {
		return string(body), false
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return nil, true
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, true
	}

	return payload, true
}
