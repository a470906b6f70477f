package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// QuotaEndpoint is the endpoint reporting the account's hourly request quota.
const QuotaEndpoint = "rateLimit"

const quotaFlightKey = "quota"

// refreshSlack leaves room past the last attempt's deadline.
const refreshSlack = time.Second

// Quota is the parsed body of the rate limit endpoint.
type Quota struct {
	Limit     float64
	Remaining *float64
	ResetAt   time.Time
}

// RateState is the mutable throttling state shared by every call made
// through one Client.
type RateState struct {
	rateLimit float64
	refreshAt time.Time
	store     RateStore
}

// RateLimit returns the requests/hour budget currently in effect.
func (c *Client) RateLimit() float64 {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.state.rateLimit
}

// RefreshAt returns when the relative budget is next refreshed. The zero
// time means on the next call.
func (c *Client) RefreshAt() time.Time {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.state.refreshAt
}

// maybeRefreshQuota recomputes the rate limit from the server quota when a
// relative budget is configured and the previous reading has expired.
// Concurrent callers share one in-flight refresh. The refresh runs detached
// from the caller that started it, so one caller giving up does not fail the
// others; each caller still stops waiting when its own ctx is done.
func (c *Client) maybeRefreshQuota(ctx context.Context) error {
	if c.opts.RatePercent <= 0 || !c.refreshDue(time.Now()) {
		return nil
	}

	flightCtx := context.WithoutCancel(ctx)
	ch := c.refreshGroup.DoChan(quotaFlightKey, func() (any, error) {
		// Another flight may have finished between the check above and here.
		if !c.refreshDue(time.Now()) {
			return nil, nil
		}
		rctx, cancel := c.refreshContext(flightCtx)
		defer cancel()
		return nil, c.refreshQuota(rctx)
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// refreshContext bounds a detached refresh by the time every attempt of the
// quota request could take.
func (c *Client) refreshContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	attempts := time.Duration(c.opts.RetryCount + 1)
	return context.WithTimeout(ctx, c.opts.Timeout*attempts+refreshSlack)
}

func (c *Client) refreshDue(now time.Time) bool {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return !now.Before(c.state.refreshAt)
}

func (c *Client) refreshQuota(ctx context.Context) error {
	req := c.encoder.Build(QuotaEndpoint, c.opts, nil)
	resp, err := Send(ctx, req, c.sendOptions(), c.transport)
	if err != nil {
		return err
	}

	quota, err := ParseQuota(resp)
	if err != nil {
		return err
	}

	limit := quota.Limit * c.opts.RatePercent / 100
	c.stateMu.Lock()
	c.state.rateLimit = limit
	c.state.refreshAt = quota.ResetAt
	c.stateMu.Unlock()

	if c.opts.Verbose {
		c.logger.Info("rate limit refreshed", "quota", quota.Limit, "percent", c.opts.RatePercent, "rate_limit", limit, "reset_at", quota.ResetAt.UTC().Format(time.RFC3339))
	}
	return nil
}

// ParseQuota reads {limit, remaining, reset} from a rate limit response.
// limit may be a number or a numeric string; reset is unix seconds.
func ParseQuota(resp *Response) (*Quota, error) {
	if resp == nil {
		return nil, &QuotaError{Reason: "no response"}
	}
	if !resp.OK() {
		return nil, &QuotaError{StatusCode: resp.StatusCode, Reason: "unexpected status"}
	}
	body, ok := resp.Body.(map[string]any)
	if !ok {
		return nil, &QuotaError{StatusCode: resp.StatusCode, Reason: "response is not an object"}
	}

	limit, ok := numberField(body["limit"])
	if !ok {
		return nil, &QuotaError{StatusCode: resp.StatusCode, Reason: fmt.Sprintf("invalid limit %v", body["limit"])}
	}
	reset, ok := numberField(body["reset"])
	if !ok {
		return nil, &QuotaError{StatusCode: resp.StatusCode, Reason: fmt.Sprintf("invalid reset %v", body["reset"])}
	}

	quota := &Quota{
		Limit:   limit,
		ResetAt: time.UnixMilli(int64(reset * 1000)),
	}
	if remaining, ok := numberField(body["remaining"]); ok {
		quota.Remaining = &remaining
	}
	return quota, nil
}

func numberField(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
