package pigeon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultHost is the production Pigeon endpoint.
	DefaultHost = "https://pigeon.mycard.in.th"

	// DefaultTimeout applies to the HTTP client built by NewClient.
	DefaultTimeout = 30 * time.Second
)

// ErrMissingToken is returned when a Config has no token.
var ErrMissingToken = errors.New("pigeon token is required")

// Config holds the connection settings of a Client.
type Config struct {
	Token string
	Host  string
}

// Validate checks that the config can be used to build a client.
func (c Config) Validate() error {
	if c.Token == "" {
		return ErrMissingToken
	}
	return nil
}

// Client talks to the Pigeon API.
type Client struct {
	config     Config
	headers    http.Header
	transport  Transport
	httpClient *http.Client
	timeout    time.Duration
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHost overrides DefaultHost. An empty host keeps the default.
func WithHost(host string) Option {
	return func(c *Client) {
		if host != "" {
			c.config.Host = host
		}
	}
}

// WithHTTPClient sets the http.Client used by the default transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the request timeout of the default http.Client.
// It has no effect when WithHTTPClient or WithTransport is used.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithTransport replaces the HTTP transport, typically with a test double.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithLogger sets the logger used for per-request diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a client authenticated with token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		config:  Config{Token: token, Host: DefaultHost},
		timeout: DefaultTimeout,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.headers = http.Header{}
	c.headers.Set("Accept", "application/json")
	c.headers.Set("Authorization", "Bearer "+c.config.Token)

	if c.transport == nil {
		hc := c.httpClient
		if hc == nil {
			hc = &http.Client{Timeout: c.timeout}
		}
		c.transport = NewHTTPTransport(c.config.Host, c.headers, hc)
	}

	return c
}

// NewClientFromConfig validates cfg and creates a client from it.
func NewClientFromConfig(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts = append([]Option{WithHost(cfg.Host)}, opts...)
	return NewClient(cfg.Token, opts...), nil
}

// Host returns the base URL requests are sent to.
func (c *Client) Host() string {
	return c.config.Host
}

// Headers returns a copy of the headers attached to every request.
func (c *Client) Headers() http.Header {
	return c.headers.Clone()
}

// Transport returns the transport in use.
func (c *Client) Transport() Transport {
	return c.transport
}

// SetTransport swaps the transport. Not safe to call while requests are in flight.
func (c *Client) SetTransport(t Transport) {
	c.transport = t
}

// post sends body to path and decodes the response. Failures are logged at
// warn level.
func (c *Client) post(ctx context.Context, path string, body any) (Result, error) {
	res, err := c.send(ctx, path, body)
	if err != nil {
		c.logFailure(c.logger.Warn(), path, err)
	}
	return res, err
}

// send is post without failure logging, for callers that treat some error
// statuses as ordinary answers.
func (c *Client) send(ctx context.Context, path string, body any) (Result, error) {
	start := time.Now()
	resp, err := c.transport.Post(ctx, path, body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("pigeon request")

	return decodeResult(resp.Body), nil
}

func (c *Client) logFailure(evt *zerolog.Event, path string, err error) {
	evt = evt.Err(err).Str("path", path)
	if code, ok := StatusCode(err); ok {
		evt = evt.Int("status", code)
	}
	evt.Msg("pigeon request failed")
}

// decodeResult parses a JSON object body. Empty or malformed bodies yield nil.
func decodeResult(body []byte) Result {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil
	}
	var r Result
	if err := json.Unmarshal(body, &r); err != nil {
		return nil
	}
	return r
}
