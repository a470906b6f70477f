package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"
)

// ErrTimeout is returned by a TransportFunc when no response arrived within
// the request timeout. Send converts it into a 408 Response.
var ErrTimeout = errors.New("timeout reached")

// RawResponse is what a TransportFunc hands back for one attempt.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// TransportFunc performs exactly one HTTP exchange.
type TransportFunc func(ctx context.Context, req *EncodedRequest) (*RawResponse, error)

// Response is the envelope returned for every call, successful or not.
// Body holds the decoded JSON value when the payload is JSON, otherwise the raw text.
type Response struct {
	StatusCode int
	Body       any
}

// OK reports whether the status code is in the 2xx range.
func (r *Response) OK() bool {
	return r != nil && IsSuccess(r.StatusCode)
}

// IsSuccess reports whether code is in [200,300).
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}

// IsTimeout reports whether resp is the synthetic envelope produced for a timeout.
func IsTimeout(resp *Response) bool {
	if resp == nil || resp.StatusCode != http.StatusRequestTimeout {
		return false
	}
	body, ok := resp.Body.(map[string]any)
	return ok && body["status"] == "timeout"
}

// SendOptions controls Send.
type SendOptions struct {
	RetryCount int
	Verbose    bool
	Logger     *slog.Logger
}

// Send runs req through transport, retrying failed attempts until one returns
// a 2xx status or RetryCount retries have been used. Timeouts count as failed
// attempts. Any other transport error is returned immediately.
func Send(ctx context.Context, req *EncodedRequest, opts SendOptions, transport TransportFunc) (*Response, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var resp *Response
	for attempt := 0; ; attempt++ {
		if opts.Verbose {
			if attempt > 0 {
				logger.Info("retrying request", "previous_status", resp.StatusCode, "retry", attempt, "retry_count", opts.RetryCount)
			}
			logRequest(logger, req)
		}

		start := time.Now()
		raw, err := transport(ctx, req)
		switch {
		case errors.Is(err, ErrTimeout):
			resp = timeoutResponse(time.Since(start), req.Timeout)
		case err != nil:
			return nil, err
		default:
			resp = &Response{StatusCode: raw.StatusCode, Body: decodeBody(raw.Body)}
		}

		if IsSuccess(resp.StatusCode) || attempt >= opts.RetryCount {
			return resp, nil
		}
	}
}

func logRequest(logger *slog.Logger, req *EncodedRequest) {
	safe := req.Redacted()
	attrs := []any{"method", safe.Method, "url", safe.URL, "headers", safe.Header}
	if safe.Timeout > 0 {
		attrs = append(attrs, "timeout", safe.Timeout)
	}
	if safe.HasBody {
		attrs = append(attrs, "body", safe.Body)
	}
	logger.Info("sending request", attrs...)
}

func timeoutResponse(waited, timeout time.Duration) *Response {
	return &Response{
		StatusCode: http.StatusRequestTimeout,
		Body: map[string]any{
			"status":     "timeout",
			"timeWaited": waited.Milliseconds(),
			"timeoutMs":  timeout.Milliseconds(),
		},
	}
}

// decodeBody returns the JSON value held in data, or data as text when it
// is not valid UTF-8 JSON.
func decodeBody(data []byte) any {
	if !utf8.Valid(data) {
		return string(data)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return string(data)
	}
	return v
}
