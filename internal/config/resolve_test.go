package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withEnv replaces the environment seen by Resolve.
func withEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	original := lookupEnv
	lookupEnv = func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
	t.Cleanup(func() { lookupEnv = original })
}

func withCredentials(t *testing.T, creds Credentials, err error) {
	t.Helper()
	original := loadCredentials
	loadCredentials = func() (Credentials, error) { return creds, err }
	t.Cleanup(func() { loadCredentials = original })
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func ptr[T any](v T) *T { return &v }

func TestResolve_Defaults(t *testing.T) {
	withEnv(t, nil)
	withCredentials(t, Credentials{}, ErrNotConfigured)

	s, err := Resolve(Overrides{ConfigPath: filepath.Join(t.TempDir(), "missing.json")})
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, s.Timeout)
	assert.Equal(t, 0, s.RetryCount)
	assert.Empty(t, s.APIKey)
	assert.Empty(t, s.APIKeySource)
}

func TestResolve_Precedence(t *testing.T) {
	path := writeConfig(t, `{
		"domain": "file.talentlms.com",
		"api_key": "file-key",
		"rate_limit": 100,
		"rate_percent": 10,
		"timeout": "5s",
		"retry_count": 1,
		"redis_url": "redis://file:6379"
	}`)
	withEnv(t, map[string]string{
		EnvDomain:     "env.talentlms.com",
		EnvRetryCount: "3",
		EnvTimeout:    "2500",
	})
	withCredentials(t, Credentials{}, errors.New("keyring must not be read"))

	s, err := Resolve(Overrides{ConfigPath: path, RetryCount: ptr(4), RatePercent: ptr(75.0)})
	require.NoError(t, err)

	assert.Equal(t, "env.talentlms.com", s.Domain)
	assert.Equal(t, "file-key", s.APIKey)
	assert.Equal(t, "config file", s.APIKeySource)
	assert.Equal(t, 100.0, s.RateLimit)
	assert.Equal(t, 75.0, s.RatePercent)
	assert.Equal(t, 2500*time.Millisecond, s.Timeout)
	assert.Equal(t, 4, s.RetryCount)
	assert.Equal(t, "redis://file:6379", s.RedisURL)
}

func TestResolve_EnvAPIKey(t *testing.T) {
	withEnv(t, map[string]string{EnvAPIKey: " env-key ", EnvVerbose: "true"})
	withCredentials(t, Credentials{}, ErrNotConfigured)

	s, err := Resolve(Overrides{ConfigPath: filepath.Join(t.TempDir(), "none.json")})
	require.NoError(t, err)
	assert.Equal(t, "env-key", s.APIKey)
	assert.Equal(t, EnvAPIKey, s.APIKeySource)
	assert.True(t, s.Verbose)
}

func TestResolve_KeyringFallback(t *testing.T) {
	withEnv(t, nil)
	withCredentials(t, Credentials{Domain: "ring.talentlms.com", APIKey: "ring-key"}, nil)

	s, err := Resolve(Overrides{ConfigPath: filepath.Join(t.TempDir(), "none.json")})
	require.NoError(t, err)
	assert.Equal(t, "ring-key", s.APIKey)
	assert.Equal(t, "ring.talentlms.com", s.Domain)
	assert.Equal(t, "keyring", s.APIKeySource)

	s, err = Resolve(Overrides{ConfigPath: filepath.Join(t.TempDir(), "none.json"), Domain: "flag.talentlms.com"})
	require.NoError(t, err)
	assert.Equal(t, "flag.talentlms.com", s.Domain)
}

func TestResolve_KeyringErrorReported(t *testing.T) {
	withEnv(t, nil)
	withCredentials(t, Credentials{}, errors.New("keyring locked"))

	_, err := Resolve(Overrides{ConfigPath: filepath.Join(t.TempDir(), "none.json")})
	assert.ErrorContains(t, err, "keyring locked")
}

func TestResolve_ReportsEveryBadValue(t *testing.T) {
	path := writeConfig(t, `{"timeout": "soon"}`)
	withEnv(t, map[string]string{
		EnvRateLimit:   "fast",
		EnvRatePercent: "half",
		EnvRetryCount:  "x",
		EnvVerbose:     "maybe",
		EnvTimeout:     "later",
		EnvAPIKey:      "k",
	})

	s, err := Resolve(Overrides{ConfigPath: path})
	require.Error(t, err)
	for _, name := range []string{"config file timeout", EnvRateLimit, EnvRatePercent, EnvRetryCount, EnvVerbose, EnvTimeout} {
		assert.Contains(t, err.Error(), name)
	}
	assert.Equal(t, 60*time.Second, s.Timeout, "bad values leave defaults in place")
}

func TestSettings_Options(t *testing.T) {
	s := Settings{
		APIKey:      "k",
		Domain:      "https://school.talentlms.com/",
		RateLimit:   10,
		RatePercent: 20,
		Timeout:     time.Second,
		RetryCount:  2,
		Verbose:     true,
	}
	opts := s.Options()
	assert.Equal(t, "school.talentlms.com", opts.Domain)
	assert.Equal(t, "k", opts.APIKey)
	assert.Equal(t, 10.0, opts.RateLimit)
	assert.Equal(t, 20.0, opts.RatePercent)
	assert.Equal(t, time.Second, opts.Timeout)
	assert.Equal(t, 2, opts.RetryCount)
	assert.True(t, opts.Verbose)
	require.NoError(t, opts.Validate())
}

func TestParseTimeout(t *testing.T) {
	d, err := ParseTimeout("1500")
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, d)

	d, err = ParseTimeout("2m")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, d)

	_, err = ParseTimeout("eventually")
	assert.Error(t, err)
}
