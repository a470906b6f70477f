package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/spf13/pflag"

	"github.com/talentlms/talentlms-go/internal/api"
	"github.com/talentlms/talentlms-go/internal/resolve"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitOK},
		{"help", pflag.ErrHelp, exitOK},
		{"unauthorized", &StatusError{StatusCode: 401}, exitAuth},
		{"forbidden", &StatusError{StatusCode: 403}, exitForbidden},
		{"not found", &StatusError{StatusCode: 404}, exitNotFound},
		{"timeout", &StatusError{StatusCode: 408}, exitNetwork},
		{"bad request", &StatusError{StatusCode: 400}, exitUsage},
		{"rate limited", &StatusError{StatusCode: 429}, exitRateLimited},
		{"server", &StatusError{StatusCode: 503}, exitServer},
		{"wrapped status", fmt.Errorf("listing: %w", &StatusError{StatusCode: 500}), exitServer},
		{"usage", usagef("bad"), exitUsage},
		{"invalid options", &api.InvalidOptionsError{Issues: []string{"APIKey: cannot be blank"}}, exitUsage},
		{"ambiguous", &resolve.AmbiguousError{Query: "x"}, exitUsage},
		{"no match", &resolve.NotFoundError{Query: "x"}, exitNotFound},
		{"quota", &api.QuotaError{StatusCode: 500, Reason: "unexpected status"}, exitRateLimited},
		{"deadline", context.DeadlineExceeded, exitNetwork},
		{"net", &net.OpError{Op: "dial", Err: errors.New("refused")}, exitNetwork},
		{"generic", errors.New("boom"), exitGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestStatusErrorMessage(t *testing.T) {
	if got := (&StatusError{StatusCode: 408}).Error(); got != "request timed out" {
		t.Errorf("408 message = %q", got)
	}
	if got := (&StatusError{StatusCode: 500}).Error(); got != "API returned status 500" {
		t.Errorf("500 message = %q", got)
	}
}
