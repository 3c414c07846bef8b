package pigeon

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dghubble/sling"
)

// Transport performs a JSON POST against the Pigeon API.
//
// Implementations must return a *StatusError for responses with a status
// of 400 or above, so callers can tell HTTP failures from network ones.
type Transport interface {
	Post(ctx context.Context, path string, body any) (*Response, error)
}

// Response is a raw HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// HTTPTransport is the default Transport.
type HTTPTransport struct {
	base   *sling.Sling
	client *http.Client
}

// NewHTTPTransport creates a transport that resolves paths against host and
// sends header with every request.
func NewHTTPTransport(host string, header http.Header, client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}

	base := sling.New().Client(client).Base(host)
	for key, values := range header {
		for _, v := range values {
			base.Add(key, v)
		}
	}

	return &HTTPTransport{base: base, client: client}
}

// Post sends body as JSON to path.
func (t *HTTPTransport) Post(ctx context.Context, path string, body any) (*Response, error) {
	req, err := t.base.New().Post(path).BodyJSON(body).Request()
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := t.client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return out, newStatusError(resp.StatusCode, data)
	}
	return out, nil
}
