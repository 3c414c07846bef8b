// Package dryrun provides a pigeon.Transport that prints requests instead of
// sending them.
package dryrun

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/pfrederiksen/pigeon-go/pigeon"
)

// Message is the body returned for every dry-run request.
const Message = "Dry run, request not sent."

// Transport prints what would be posted without actually posting
type Transport struct {
	w    io.Writer
	host string

	mu    sync.Mutex
	count int
}

// New creates a dry-run transport writing to w. host is only used for display.
func New(w io.Writer, host string) *Transport {
	return &Transport{w: w, host: strings.TrimRight(host, "/")}
}

// Post prints the request and answers with 202 Accepted.
func (t *Transport) Post(ctx context.Context, path string, body any) (*pigeon.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling payload: %w", err)
	}

	t.mu.Lock()
	t.count++
	n := t.count
	fmt.Fprintf(t.w, "--- Request %d ---\n", n)
	fmt.Fprintf(t.w, "POST %s%s\n", t.host, path)
	fmt.Fprintln(t.w, string(data))
	fmt.Fprintf(t.w, "\n(Size: %d bytes)\n\n", len(data))
	t.mu.Unlock()

	return &pigeon.Response{
		StatusCode: http.StatusAccepted,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       fmt.Appendf(nil, `{"message":%q}`, Message),
	}, nil
}

// Count returns the number of requests printed so far.
func (t *Transport) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}
