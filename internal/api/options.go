package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Defaults applied by the config layer when nothing else is set.
const (
	DefaultTimeout    = 60 * time.Second
	DefaultRetryCount = 0
)

// Options configures a Client. APIKey and Domain are required.
type Options struct {
	// APIKey is sent as the Basic auth username.
	APIKey string `json:"api_key"`
	// Domain is the TalentLMS host, e.g. "example.talentlms.com".
	Domain string `json:"domain"`
	// RateLimit is the allowed requests per hour. Zero means unlimited.
	// When RatePercent is set this value is replaced after each quota refresh.
	RateLimit float64 `json:"rate_limit"`
	// RatePercent is the share, in (0,100], of the server reported quota to use.
	RatePercent float64 `json:"rate_percent"`
	// Timeout bounds a single attempt.
	Timeout time.Duration `json:"timeout"`
	// RetryCount is the number of extra attempts after a failed one.
	RetryCount int  `json:"retry_count"`
	Verbose    bool `json:"verbose"`

	// Transport overrides the HTTP exchange. Defaults to HTTPTransport(HTTPClient).
	Transport TransportFunc `json:"-"`
	// HTTPClient is used by the default transport.
	HTTPClient *http.Client `json:"-"`
	Logger     *slog.Logger `json:"-"`
	// Store holds the last request start. Defaults to an in-process store.
	Store RateStore `json:"-"`
	// Encoder carries the parameter allowlists. Defaults to DefaultEncoder().
	Encoder *Encoder `json:"-"`
}

// Validate checks every field and reports all problems at once.
func (o Options) Validate() error {
	err := validation.ValidateStruct(&o,
		validation.Field(&o.APIKey, validation.Required),
		validation.Field(&o.Domain, validation.Required),
		validation.Field(&o.RateLimit, validation.Min(0.0)),
		validation.Field(&o.RatePercent,
			validation.When(o.RatePercent != 0,
				validation.Min(0.0).Exclusive(),
				validation.Max(100.0))),
		validation.Field(&o.Timeout, validation.Min(time.Duration(0))),
		validation.Field(&o.RetryCount, validation.Min(0)),
	)
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	issues := make([]string, 0, len(fieldErrs))
	for field, ferr := range fieldErrs {
		issues = append(issues, fmt.Sprintf("%s: %s", field, ferr.Error()))
	}
	sort.Strings(issues)
	return &InvalidOptionsError{Issues: issues}
}
