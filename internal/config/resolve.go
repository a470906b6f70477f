package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/talentlms/talentlms-go/internal/api"
)

// Environment variables read by Resolve.
const (
	EnvAPIKey      = "TALENTLMS_API_KEY"
	EnvDomain      = "TALENTLMS_DOMAIN"
	EnvRateLimit   = "TALENTLMS_RATE_LIMIT"
	EnvRatePercent = "TALENTLMS_RATE_PERCENT"
	EnvTimeout     = "TALENTLMS_TIMEOUT"
	EnvRetryCount  = "TALENTLMS_RETRY_COUNT"
	EnvVerbose     = "TALENTLMS_VERBOSE"
	EnvRedisURL    = "TALENTLMS_REDIS_URL"
)

var lookupEnv = os.LookupEnv

var loadCredentials = LoadCredentials

// Settings are the fully resolved client settings.
type Settings struct {
	APIKey      string
	Domain      string
	RateLimit   float64
	RatePercent float64
	Timeout     time.Duration
	RetryCount  int
	Verbose     bool
	RedisURL    string
	// APIKeySource names where the API key came from, for "auth status".
	APIKeySource string
}

// Overrides carries command-line values. Nil pointers and empty strings
// mean the flag was not given.
type Overrides struct {
	APIKey      string
	Domain      string
	RateLimit   *float64
	RatePercent *float64
	Timeout     *time.Duration
	RetryCount  *int
	Verbose     *bool
	RedisURL    string
	// ConfigPath replaces the default config file location.
	ConfigPath string
}

// Resolve layers defaults, the config file, stored credentials, the
// environment and overrides, in increasing precedence. Stored credentials are
// only read when no API key was found elsewhere. Every malformed value is
// reported, not just the first.
func Resolve(o Overrides) (Settings, error) {
	var result *multierror.Error

	s := Settings{
		Timeout:    api.DefaultTimeout,
		RetryCount: api.DefaultRetryCount,
	}

	path := o.ConfigPath
	if path == "" {
		p, err := FilePath()
		if err != nil {
			result = multierror.Append(result, err)
		}
		path = p
	}
	if path != "" {
		f, err := LoadFile(path)
		if err != nil {
			result = multierror.Append(result, err)
		}
		if err := s.applyFile(f); err != nil {
			result = multierror.Append(result, err)
		}
		if s.APIKey != "" {
			s.APIKeySource = "config file"
		}
	}

	if err := s.applyEnv(); err != nil {
		result = multierror.Append(result, err)
	}
	s.applyOverrides(o)

	if s.APIKey == "" {
		creds, err := loadCredentials()
		switch {
		case err == nil:
			s.APIKey = creds.APIKey
			s.APIKeySource = "keyring"
			if s.Domain == "" {
				s.Domain = creds.Domain
			}
		case !errors.Is(err, ErrNotConfigured):
			result = multierror.Append(result, err)
		}
	}

	return s, result.ErrorOrNil()
}

func (s *Settings) applyFile(f File) error {
	if f.Domain != "" {
		s.Domain = f.Domain
	}
	if f.APIKey != "" {
		s.APIKey = f.APIKey
	}
	if f.RateLimit != nil {
		s.RateLimit = *f.RateLimit
	}
	if f.RatePercent != nil {
		s.RatePercent = *f.RatePercent
	}
	if f.RetryCount != nil {
		s.RetryCount = *f.RetryCount
	}
	if f.Verbose != nil {
		s.Verbose = *f.Verbose
	}
	if f.RedisURL != "" {
		s.RedisURL = f.RedisURL
	}
	if f.Timeout != "" {
		d, err := ParseTimeout(f.Timeout)
		if err != nil {
			return fmt.Errorf("config file timeout: %w", err)
		}
		s.Timeout = d
	}
	return nil
}

func (s *Settings) applyEnv() error {
	var result *multierror.Error

	if v, ok := env(EnvAPIKey); ok {
		s.APIKey = v
		s.APIKeySource = EnvAPIKey
	}
	if v, ok := env(EnvDomain); ok {
		s.Domain = v
	}
	if v, ok := env(EnvRedisURL); ok {
		s.RedisURL = v
	}
	if v, ok := env(EnvRateLimit); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", EnvRateLimit, err))
		} else {
			s.RateLimit = f
		}
	}
	if v, ok := env(EnvRatePercent); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", EnvRatePercent, err))
		} else {
			s.RatePercent = f
		}
	}
	if v, ok := env(EnvTimeout); ok {
		d, err := ParseTimeout(v)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", EnvTimeout, err))
		} else {
			s.Timeout = d
		}
	}
	if v, ok := env(EnvRetryCount); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", EnvRetryCount, err))
		} else {
			s.RetryCount = n
		}
	}
	if v, ok := env(EnvVerbose); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", EnvVerbose, err))
		} else {
			s.Verbose = b
		}
	}

	return result.ErrorOrNil()
}

func (s *Settings) applyOverrides(o Overrides) {
	if o.APIKey != "" {
		s.APIKey = o.APIKey
		s.APIKeySource = "flag"
	}
	if o.Domain != "" {
		s.Domain = o.Domain
	}
	if o.RedisURL != "" {
		s.RedisURL = o.RedisURL
	}
	if o.RateLimit != nil {
		s.RateLimit = *o.RateLimit
	}
	if o.RatePercent != nil {
		s.RatePercent = *o.RatePercent
	}
	if o.Timeout != nil {
		s.Timeout = *o.Timeout
	}
	if o.RetryCount != nil {
		s.RetryCount = *o.RetryCount
	}
	if o.Verbose != nil {
		s.Verbose = *o.Verbose
	}
}

// Options converts s into client options. Injectable fields are left unset.
func (s Settings) Options() api.Options {
	return api.Options{
		APIKey:      s.APIKey,
		Domain:      NormalizeDomain(s.Domain),
		RateLimit:   s.RateLimit,
		RatePercent: s.RatePercent,
		Timeout:     s.Timeout,
		RetryCount:  s.RetryCount,
		Verbose:     s.Verbose,
	}
}

// NormalizeDomain strips a scheme and trailing slashes so both
// "https://school.talentlms.com/" and "school.talentlms.com" work.
func NormalizeDomain(domain string) string {
	domain = strings.TrimSpace(domain)
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	return strings.TrimRight(domain, "/")
}

// ParseTimeout accepts a Go duration ("30s") or a bare number of milliseconds.
func ParseTimeout(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q", v)
	}
	return d, nil
}

func env(key string) (string, bool) {
	v, ok := lookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
