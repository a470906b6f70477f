// Package dryrun previews API requests instead of sending them.
package dryrun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/talentlms/talentlms-go/internal/api"
)

type contextKey string

const dryRunKey contextKey = "dry_run_enabled"

// ErrSkipped is returned by Transport in place of a response.
var ErrSkipped = errors.New("dry run: request not sent")

// WithDryRun returns a context with dry-run mode enabled/disabled.
func WithDryRun(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, dryRunKey, enabled)
}

// IsEnabled returns true if dry-run mode is enabled.
func IsEnabled(ctx context.Context) bool {
	if v, ok := ctx.Value(dryRunKey).(bool); ok {
		return v
	}
	return false
}

// Preview describes a request that would have been sent.
type Preview struct {
	Method  string
	URL     string
	Details map[string]string
}

// NewPreview builds a preview from req with the Authorization header masked.
func NewPreview(req *api.EncodedRequest) *Preview {
	safe := req.Redacted()
	p := &Preview{
		Method:  safe.Method,
		URL:     safe.URL,
		Details: map[string]string{},
	}
	for key := range safe.Header {
		p.Details[key] = safe.Header.Get(key)
	}
	if safe.Timeout > 0 {
		p.Details["Timeout"] = safe.Timeout.String()
	}
	if safe.HasBody {
		p.Details["Body"] = safe.Body
	}
	return p
}

// Write outputs the preview to the writer
func (p *Preview) Write(w io.Writer) {
	_, _ = fmt.Fprintf(w, "[DRY-RUN] Would %s %s\n", p.Method, p.URL)

	keys := make([]string, 0, len(p.Details))
	for k := range p.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, _ = fmt.Fprintf(w, "  %s: %s\n", k, p.Details[k])
	}
}

// Transport returns an api.TransportFunc that writes a preview of every
// request to w and fails the attempt with ErrSkipped. Safe for concurrent use.
func Transport(w io.Writer) api.TransportFunc {
	var mu sync.Mutex
	return func(_ context.Context, req *api.EncodedRequest) (*api.RawResponse, error) {
		mu.Lock()
		defer mu.Unlock()
		NewPreview(req).Write(w)
		return nil, ErrSkipped
	}
}
