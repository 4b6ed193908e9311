package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

var _ Doer = (*http.Client)(nil)

// Client is immutable after New and safe for concurrent use.
type Client struct {
	apiKey          string
	rawBaseURL      string
	baseURL         *url.URL
	httpClient      Doer
	logger          zerolog.Logger
	requestIDKey    any
	maxResponseSize int64 // 0 means no limit
	timeout         *time.Duration
}

func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		apiKey:     apiKey,
		rawBaseURL: DefaultBaseURL,
		baseURL:    nil,
		httpClient: &http.Client{ //nolint:exhaustruct
			Timeout: DefaultTimeout,
		},
		logger:          zerolog.Nop(),
		requestIDKey:    nil,
		maxResponseSize: 0,
		timeout:         nil,
	}

	for _, opt := range opts {
		opt(c)
	}

	if httpClient, ok := c.httpClient.(*http.Client); ok && c.timeout != nil {
		copied := *httpClient
		copied.Timeout = *c.timeout
		c.httpClient = &copied
	}

	baseURL, err := url.Parse(c.rawBaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("%w: %q is not absolute", ErrInvalidBaseURL, c.rawBaseURL)
	}

	c.baseURL = baseURL

	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Do performs exactly one round trip. Transport failures are wrapped in
// ErrRequestFailed; non-2xx responses are returned as *Error.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	requestID := c.extractRequestID(ctx)

	httpReq, err := c.buildRequest(ctx, req, requestID)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("method", httpReq.Method).
			Str("path", httpReq.URL.Path).
			Str("request_id", requestID).
			Msg("The request could not be sent")

		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer httpResp.Body.Close()

	resp, err := c.readResponse(httpResp, requestID)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("method", httpReq.Method).
		Str("path", httpReq.URL.Path).
		Int("status", resp.StatusCode).
		Str("request_id", resp.RequestID).
		Dur("latency", time.Since(start)).
		Msg("The request has completed")

	if err := resp.Err(); err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) extractRequestID(ctx context.Context) string {
	if c.requestIDKey != nil {
		if id, ok := ctx.Value(c.requestIDKey).(string); ok && id != "" {
			return id
		}
	}

	return uuid.New().String()
}

func (c *Client) buildURL(path string, query *Query) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCreateRequest, err)
	}

	resolved := c.baseURL.ResolveReference(ref)
	if query.Len() > 0 {
		resolved.RawQuery = query.Encode()
	}

	return resolved.String(), nil
}

func (c *Client) buildRequest(ctx context.Context, req *Request, requestID string) (*http.Request, error) {
	target, err := c.buildURL(req.Path, req.Query)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader

	if req.Body != nil {
		bodyBytes, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeBody, err)
		}

		bodyReader = bytes.NewReader(bodyBytes)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateRequest, err)
	}

	httpReq.Header.Set(HeaderAuthorization, "Bearer "+c.apiKey)
	httpReq.Header.Set(HeaderContentType, ContentTypeJSON)
	httpReq.Header.Set(HeaderAccept, ContentTypeJSON)
	httpReq.Header.Set(HeaderUserAgent, UserAgent)
	httpReq.Header.Set(HeaderXRequestID, requestID)

	return httpReq, nil
}

func (c *Client) readResponse(httpResp *http.Response, requestID string) (*Response, error) {
	respRequestID := httpResp.Header.Get(HeaderXRequestID)
	if respRequestID == "" {
		respRequestID = requestID
	}

	body := io.Reader(httpResp.Body)
	if c.maxResponseSize > 0 {
		body = io.LimitReader(httpResp.Body, c.maxResponseSize+1)
	}

	bodyBytes, readErr := io.ReadAll(body)

	// An oversized error body is cut off and left unparsed, so the status
	// still decides the error kind.
	if c.maxResponseSize > 0 && int64(len(bodyBytes)) > c.maxResponseSize {
		resp := NewResponse(httpResp.StatusCode, httpResp.Header, bodyBytes[:c.maxResponseSize])
		if resp.OK() {
			return nil, ErrResponseTooLarge
		}

		c.logger.Debug().
			Int("status", httpResp.StatusCode).
			Str("request_id", respRequestID).
			Int64("limit", c.maxResponseSize).
			Msg("The error response body was truncated")

		resp.RequestID = respRequestID
		resp.Payload = nil

		return resp, nil
	}

	resp := NewResponse(httpResp.StatusCode, httpResp.Header, bodyBytes)
	resp.RequestID = respRequestID

	if readErr != nil {
		c.logger.Debug().
			Err(readErr).
			Int("status", httpResp.StatusCode).
			Str("request_id", respRequestID).
			Msg("The response body could not be read")

		resp.Payload = nil

		return resp, nil
	}

	if resp.json && resp.Payload == nil && len(bodyBytes) > 0 {
		c.logger.Debug().
			Int("status", httpResp.StatusCode).
			Str("request_id", respRequestID).
			Msg("The response body is not valid JSON")
	}

	return resp, nil
}
