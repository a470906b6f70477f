package api

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// NewHTTPClient returns an http.Client with a cloned default transport
// pinned to TLS 1.2 or later.
func NewHTTPClient() *http.Client {
	baseTransport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		baseTransport = &http.Transport{}
	}
	transport := baseTransport.Clone()
	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{}
	} else {
		transport.TLSClientConfig = transport.TLSClientConfig.Clone()
	}
	transport.TLSClientConfig.MinVersion = tls.VersionTLS12
	transport.TLSClientConfig.InsecureSkipVerify = false

	return &http.Client{Transport: transport}
}

// HTTPTransport adapts an http.Client to a TransportFunc. The per-request
// timeout bounds the whole exchange including reading the body; when it
// fires the attempt fails with ErrTimeout.
func HTTPTransport(client *http.Client) TransportFunc {
	if client == nil {
		client = NewHTTPClient()
	}
	return func(ctx context.Context, req *EncodedRequest) (*RawResponse, error) {
		attemptCtx := ctx
		if req.Timeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, req.Timeout)
			defer cancel()
		}

		var body io.Reader
		if req.HasBody {
			body = strings.NewReader(req.Body)
		}
		httpReq, err := http.NewRequestWithContext(attemptCtx, req.Method, req.URL, body)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		httpReq.Header = req.Header.Clone()

		resp, err := client.Do(httpReq)
		if err != nil {
			return nil, attemptError(ctx, attemptCtx, err)
		}
		defer func() { _ = resp.Body.Close() }()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, attemptError(ctx, attemptCtx, err)
		}
		return &RawResponse{StatusCode: resp.StatusCode, Body: data}, nil
	}
}

// attemptError maps an expired attempt deadline to ErrTimeout. Cancellation
// of the caller's own context is passed through unchanged.
func attemptError(parent, attempt context.Context, err error) error {
	if parent.Err() == nil && errors.Is(attempt.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr interface{ Timeout() bool }
	if parent.Err() == nil && errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return fmt.Errorf("request failed: %w", err)
}
