package httpclient

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL      = "https://api.checkoutpage.com"
	DefaultTimeout      = 30 * time.Second
	Version             = "0.1.0"
	UserAgent           = "checkoutpage-go/" + Version
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderUserAgent     = "User-Agent"
	HeaderXRequestID    = "X-Request-ID"
	HeaderAuthorization = "Authorization"
	ContentTypeJSON     = "application/json"
)

type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL. An empty value keeps the default.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.rawBaseURL = baseURL
		}
	}
}

// WithTimeout applies to whichever *http.Client is in use once all options
// have run, regardless of option order. A client passed to WithHTTPClient is
// copied, never modified.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = &timeout
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithDoer replaces the transport entirely, typically with a test double.
func WithDoer(doer Doer) Option {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithRestyClient sends requests through the *http.Client owned by an
// existing resty client, so its transport, proxy and TLS settings apply.
func WithRestyClient(restyClient *resty.Client) Option {
	return func(c *Client) {
		c.httpClient = restyClient.GetClient()
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithRequestIDKey(key any) Option {
	return func(c *Client) {
		c.requestIDKey = key
	}
}

func WithMaxResponseSize(size int64) Option {
	return func(c *Client) {
		c.maxResponseSize = size
	}
}
