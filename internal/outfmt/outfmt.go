// Package outfmt renders API response bodies for the terminal.
package outfmt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// Mode represents the output format mode
type Mode int

const (
	// JSON pretty-prints the response body. It is the default.
	JSON Mode = iota
	// JSONL writes one compact JSON value per line; arrays are split.
	JSONL
	// Text renders list results as a table where the command supports it
	// and falls back to JSON otherwise.
	Text
)

type (
	modeKey     struct{}
	compactKey  struct{}
	queryKey    struct{}
	templateKey struct{}
)

// Parse parses an output mode string
func Parse(s string) (Mode, error) {
	switch s {
	case "json", "":
		return JSON, nil
	case "jsonl", "ndjson":
		return JSONL, nil
	case "text", "table":
		return Text, nil
	default:
		return JSON, fmt.Errorf("invalid output format: %q (use 'json', 'jsonl' or 'text')", s)
	}
}

func (m Mode) String() string {
	switch m {
	case JSONL:
		return "jsonl"
	case Text:
		return "text"
	default:
		return "json"
	}
}

// WithMode adds the output mode to the context
func WithMode(ctx context.Context, mode Mode) context.Context {
	return context.WithValue(ctx, modeKey{}, mode)
}

// ModeFromContext retrieves the output mode from context
func ModeFromContext(ctx context.Context) Mode {
	if mode, ok := ctx.Value(modeKey{}).(Mode); ok {
		return mode
	}
	return JSON
}

// WithCompact adds the compact flag to the context
func WithCompact(ctx context.Context, compact bool) context.Context {
	return context.WithValue(ctx, compactKey{}, compact)
}

// IsCompact returns true if compact output mode is set in the context
func IsCompact(ctx context.Context) bool {
	c, _ := ctx.Value(compactKey{}).(bool)
	return c
}

// WithQuery adds a jq query to the context
func WithQuery(ctx context.Context, query string) context.Context {
	return context.WithValue(ctx, queryKey{}, query)
}

// GetQuery retrieves the jq query from context
func GetQuery(ctx context.Context) string {
	q, _ := ctx.Value(queryKey{}).(string)
	return q
}

// WithTemplate adds a Go template to the context
func WithTemplate(ctx context.Context, tmpl string) context.Context {
	return context.WithValue(ctx, templateKey{}, tmpl)
}

// GetTemplate retrieves the template from context
func GetTemplate(ctx context.Context) string {
	t, _ := ctx.Value(templateKey{}).(string)
	return t
}

// WriteJSON writes v as JSON, indented unless compact is set.
func WriteJSON(w io.Writer, v any, compact bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// WriteJSONL writes each element of a top-level array on its own line.
// Any other value is written as a single line.
func WriteJSONL(w io.Writer, v any) error {
	items, ok := v.([]any)
	if !ok {
		return WriteJSON(w, v, true)
	}
	for _, item := range items {
		if err := WriteJSON(w, item, true); err != nil {
			return err
		}
	}
	return nil
}
