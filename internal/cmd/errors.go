package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/spf13/pflag"

	"github.com/talentlms/talentlms-go/internal/api"
	"github.com/talentlms/talentlms-go/internal/resolve"
)

const (
	exitOK          = 0
	exitGeneric     = 1
	exitUsage       = 2
	exitAuth        = 3
	exitNotFound    = 4
	exitForbidden   = 5
	exitRateLimited = 6
	exitServer      = 7
	exitNetwork     = 8
)

// StatusError reports a non-2xx API response after its body was printed.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.StatusCode == http.StatusRequestTimeout {
		return "request timed out"
	}
	return fmt.Sprintf("API returned status %d", e.StatusCode)
}

// usageError marks bad command-line input.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return exitOK
	}

	var status *StatusError
	if errors.As(err, &status) {
		return exitCodeForStatus(status.StatusCode)
	}

	var usage *usageError
	var ambiguous *resolve.AmbiguousError
	var notFound *resolve.NotFoundError
	switch {
	case errors.As(err, &usage), api.IsInvalidOptionsError(err), errors.As(err, &ambiguous):
		return exitUsage
	case errors.As(err, &notFound):
		return exitNotFound
	case api.IsQuotaError(err):
		return exitRateLimited
	case isNetworkError(err):
		return exitNetwork
	}
	return exitGeneric
}

func exitCodeForStatus(code int) int {
	switch {
	case code == http.StatusUnauthorized:
		return exitAuth
	case code == http.StatusForbidden:
		return exitForbidden
	case code == http.StatusNotFound:
		return exitNotFound
	case code == http.StatusTooManyRequests:
		return exitRateLimited
	case code == http.StatusRequestTimeout:
		return exitNetwork
	case code >= 500:
		return exitServer
	case code >= 400:
		return exitUsage
	default:
		return exitGeneric
	}
}

func isNetworkError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
