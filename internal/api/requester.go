package api

import "context"

// Caller executes one logical API operation. *Client implements it; resource
// services depend only on this interface so they can be tested against a fake.
type Caller interface {
	Call(ctx context.Context, req Request) (*Response, error)
}

// Compile-time interface implementation check
var _ Caller = (*Client)(nil)

// CallerFunc adapts a function to Caller.
type CallerFunc func(ctx context.Context, req Request) (*Response, error)

// Call implements Caller.
func (f CallerFunc) Call(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}
