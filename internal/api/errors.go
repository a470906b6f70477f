package api

import (
	"errors"
	"fmt"
	"strings"
)

// InvalidOptionsCode identifies option validation failures.
const InvalidOptionsCode = "ERR_INVALID_OPT_VALUE"

// InvalidOptionsError lists every invalid or missing option found by Validate.
type InvalidOptionsError struct {
	Issues []string
}

func (e *InvalidOptionsError) Error() string {
	return fmt.Sprintf("found %d issues: %s", len(e.Issues), strings.Join(e.Issues, "; "))
}

// Code returns InvalidOptionsCode.
func (e *InvalidOptionsError) Code() string {
	return InvalidOptionsCode
}

// QuotaError indicates the rate limit endpoint returned something the
// quota refresher could not use.
type QuotaError struct {
	StatusCode int
	Reason     string
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("quota refresh failed (status %d): %s", e.StatusCode, e.Reason)
}

// IsInvalidOptionsError checks if the error is an option validation error.
func IsInvalidOptionsError(err error) bool {
	var e *InvalidOptionsError
	return errors.As(err, &e)
}

// IsQuotaError checks if the error is a quota refresh error.
func IsQuotaError(err error) bool {
	var e *QuotaError
	return errors.As(err, &e)
}
