package ratestore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces slot keys in Redis.
const DefaultKeyPrefix = "talentlms:rate:"

// keyGrace keeps a slot key alive a little past the spacing window so late
// readers still see it.
const keyGrace = time.Minute

// reserveScript reads the previous slot, stores max(now, prev+spacing) and
// returns the previous slot. All values are unix milliseconds.
var reserveScript = redis.NewScript(`
local prev = tonumber(redis.call('GET', KEYS[1]) or '0')
local now = tonumber(ARGV[1])
local spacing = tonumber(ARGV[2])
local nxt = now
if prev > 0 and prev + spacing > now then
  nxt = prev + spacing
end
redis.call('SET', KEYS[1], nxt, 'PX', ARGV[3])
return prev
`)

// releaseScript restores the previous slot only while KEYS[1] still holds
// the slot being released.
var releaseScript = redis.NewScript(`
local cur = tonumber(redis.call('GET', KEYS[1]) or '0')
if cur ~= tonumber(ARGV[1]) then
  return 0
end
if tonumber(ARGV[2]) == 0 then
  redis.call('DEL', KEYS[1])
else
  redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
end
return 1
`)

// Redis stores the slot in a single Redis key so that several processes
// using the same API key share one request budget.
type Redis struct {
	client redis.Scripter
	key    string
}

// NewRedis returns a Redis store. scope identifies the shared budget,
// typically the TalentLMS domain.
func NewRedis(client redis.Scripter, scope string) *Redis {
	return &Redis{client: client, key: DefaultKeyPrefix + scope}
}

// NewRedisFromURL parses a redis:// URL and returns a store plus the client
// so the caller can close it.
func NewRedisFromURL(rawURL, scope string) (*Redis, *redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	return NewRedis(client, scope), client, nil
}

// Reserve claims the next start slot atomically and returns the previous one.
func (r *Redis) Reserve(ctx context.Context, now time.Time, spacing time.Duration) (time.Time, error) {
	ttl := spacing + keyGrace
	prev, err := reserveScript.Run(ctx, r.client, []string{r.key},
		now.UnixMilli(), spacing.Milliseconds(), ttl.Milliseconds()).Int64()
	if err != nil {
		return time.Time{}, fmt.Errorf("reserve rate slot: %w", err)
	}
	if prev == 0 {
		return time.Time{}, nil
	}
	return time.UnixMilli(prev), nil
}

// Release hands slot back when no other process has reserved after it.
func (r *Redis) Release(ctx context.Context, slot, prev time.Time) error {
	var prevMS int64
	if !prev.IsZero() {
		prevMS = prev.UnixMilli()
	}
	err := releaseScript.Run(ctx, r.client, []string{r.key},
		slot.UnixMilli(), prevMS, keyGrace.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("release rate slot: %w", err)
	}
	return nil
}
