// Package client talks to the hackathon REST API. Every call returns a
// Response envelope instead of an error: transport, HTTP and decoding
// failures all end up as Success == false with a human readable Message.
package client

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/itamhack/hackctl/internal/telemetry"
)

// DefaultUserAgent identifies the client to the API.
const DefaultUserAgent = "hackctl/1.0"

// TokenSource supplies the bearer token for each request. An empty token
// sends the request unauthenticated.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed TokenSource.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Client handles communication with the API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	tokens     TokenSource
	limiter    *rate.Limiter
	timeout    time.Duration
	logger     zerolog.Logger
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTokenSource sets where bearer tokens come from, usually the session store.
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// WithRateLimit caps outgoing requests per second. Zero or less disables the limit.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithTimeout bounds each request. Zero leaves requests bounded only by the
// caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a client for the API at baseURL (scheme and host, with or
// without a trailing slash). Endpoints passed to Request are absolute paths.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  DefaultUserAgent,
		tokens:     StaticToken(""),
		logger:     log.Logger,
		tracer:     telemetry.Tracer("github.com/itamhack/hackctl/internal/client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}
