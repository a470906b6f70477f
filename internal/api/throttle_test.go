package api

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestSpacing(t *testing.T) {
	if got := Spacing(10000); got != 360*time.Millisecond {
		t.Errorf("Spacing(10000) = %v, want 360ms", got)
	}
	if got := Spacing(0); got != 0 {
		t.Errorf("Spacing(0) = %v, want 0", got)
	}
	if got := Spacing(-5); got != 0 {
		t.Errorf("Spacing(-5) = %v, want 0", got)
	}
}

func TestThrottle_WaitsForSpacing(t *testing.T) {
	start := time.Now()
	if _, err := Throttle(context.Background(), start, ThrottleOptions{RateLimit: 10000}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	elapsed := time.Since(start)
	if elapsed < 350*time.Millisecond || elapsed > 400*time.Millisecond {
		t.Errorf("waited %v, want about 360ms", elapsed)
	}
}

func TestThrottle_NoWaitWhenSpacingElapsed(t *testing.T) {
	start := time.Now()
	if _, err := Throttle(context.Background(), start.Add(-360*time.Millisecond), ThrottleOptions{RateLimit: 10000}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("waited %v, want no wait", elapsed)
	}
}

func TestThrottle_NoLimitNoWait(t *testing.T) {
	start := time.Now()
	got, err := Throttle(context.Background(), start.Add(time.Hour), ThrottleOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("waited %v, want no wait", elapsed)
	}
	if got.Before(start) {
		t.Errorf("returned %v before call start %v", got, start)
	}
}

func TestThrottle_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := Throttle(ctx, start, ThrottleOptions{RateLimit: 1})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("cancellation took %v", elapsed)
	}
}

func TestThrottle_VerboseLogsWaitWindow(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	_, err := Throttle(context.Background(), time.Now(), ThrottleOptions{RateLimit: 360000, Verbose: true, Logger: logger})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "rate limited") || !strings.Contains(out, "until=") {
		t.Errorf("expected wait window log, got %q", out)
	}
}
