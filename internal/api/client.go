package api

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/talentlms/talentlms-go/internal/ratestore"
)

// Client is the TalentLMS API client.
//
// Every call goes through the same pipeline: refresh the relative budget if it
// has expired, wait for a free rate slot, encode the request, and send it with
// retries. Non-2xx responses are returned as a Response, not as an error.
//
// A Client is safe for concurrent use. Calls share one RateState; slot
// reservation is atomic in the configured RateStore and quota refreshes are
// collapsed into a single in-flight request.
type Client struct {
	opts      Options
	encoder   *Encoder
	transport TransportFunc
	logger    *slog.Logger

	stateMu      sync.Mutex
	state        RateState
	refreshGroup singleflight.Group
}

// Request describes one logical API operation.
// Params are encoded into the endpoint path; Data, when present, becomes a POST body.
type Request struct {
	Endpoint string
	Params   Params
	Data     Params
}

// New validates opts and returns a Client. All validation problems are
// reported together in an *InvalidOptionsError.
func New(opts Options) (*Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		opts:      opts,
		encoder:   opts.Encoder,
		transport: opts.Transport,
		logger:    opts.Logger,
	}
	if c.encoder == nil {
		c.encoder = DefaultEncoder()
	}
	if c.transport == nil {
		c.transport = HTTPTransport(opts.HTTPClient)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	c.state = RateState{
		rateLimit: opts.RateLimit,
		store:     opts.Store,
	}
	if c.state.store == nil {
		c.state.store = ratestore.NewMemory()
	}
	return c, nil
}

// Options returns the options the client was built with.
func (c *Client) Options() Options {
	return c.opts
}

// Call runs req through the pipeline and returns the final response.
func (c *Client) Call(ctx context.Context, req Request) (*Response, error) {
	if req.Endpoint != QuotaEndpoint {
		if err := c.maybeRefreshQuota(ctx); err != nil {
			return nil, err
		}
	}

	if err := c.throttle(ctx); err != nil {
		return nil, err
	}

	endpoint := c.encoder.Endpoint(req.Endpoint, req.Params)
	encoded := c.encoder.Build(endpoint, c.opts, req.Data)

	return Send(ctx, encoded, c.sendOptions(), c.transport)
}

// throttle reserves the next request slot and waits for it.
func (c *Client) throttle(ctx context.Context) error {
	limit := c.RateLimit()
	spacing := Spacing(limit)
	if spacing == 0 {
		return nil
	}

	now := time.Now()
	prev, err := c.state.store.Reserve(ctx, now, spacing)
	if err != nil {
		return err
	}
	_, err = Throttle(ctx, prev, ThrottleOptions{
		RateLimit: limit,
		Verbose:   c.opts.Verbose,
		Logger:    c.logger,
	})
	if err != nil {
		c.releaseSlot(ctx, reservedSlot(prev, now, spacing), prev)
	}
	return err
}

// releaseSlot hands an unused slot back so a cancelled waiter does not delay
// the callers behind it.
func (c *Client) releaseSlot(ctx context.Context, slot, prev time.Time) {
	r, ok := c.state.store.(SlotReleaser)
	if !ok {
		return
	}
	if err := r.Release(context.WithoutCancel(ctx), slot, prev); err != nil && c.opts.Verbose {
		c.logger.Warn("release rate slot", "error", err)
	}
}

func (c *Client) sendOptions() SendOptions {
	return SendOptions{
		RetryCount: c.opts.RetryCount,
		Verbose:    c.opts.Verbose,
		Logger:     c.logger,
	}
}
