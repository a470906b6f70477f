package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talentlms/talentlms-go/internal/api"
	"github.com/talentlms/talentlms-go/internal/config"
	"github.com/talentlms/talentlms-go/internal/debug"
	"github.com/talentlms/talentlms-go/internal/dryrun"
	"github.com/talentlms/talentlms-go/internal/ratestore"
	"github.com/talentlms/talentlms-go/internal/validation"
)

// overrides converts the flags the user actually set into config overrides.
func overrides(cmd *cobra.Command) config.Overrides {
	o := config.Overrides{
		APIKey:     flags.APIKey,
		Domain:     flags.Domain,
		RedisURL:   flags.RedisURL,
		ConfigPath: flags.Config,
	}
	changed := cmd.Flags().Changed
	if changed("rate-limit") {
		o.RateLimit = &flags.RateLimit
	}
	if changed("rate-percent") {
		o.RatePercent = &flags.RatePercent
	}
	if changed("timeout") {
		o.Timeout = &flags.Timeout
	}
	if changed("retry-count") {
		o.RetryCount = &flags.RetryCount
	}
	if changed("verbose") {
		o.Verbose = &flags.Verbose
	}
	return o
}

// newClient resolves settings and builds a client. The returned release
// function closes any Redis connection and must always be called.
func newClient(cmd *cobra.Command) (*api.Client, func(), error) {
	settings, err := config.Resolve(overrides(cmd))
	if err != nil {
		return nil, nil, err
	}

	opts := settings.Options()
	if opts.Domain != "" {
		if err := validation.ValidateDomain(opts.Domain); err != nil {
			return nil, nil, &usageError{msg: err.Error()}
		}
	}
	opts.HTTPClient = httpClient
	opts.Logger = debug.NewLogger(cmd.ErrOrStderr(), opts.Verbose)

	release := func() {}
	switch {
	case dryrun.IsEnabled(cmd.Context()):
		// Nothing is sent, so there is no budget to spend or refresh.
		opts.Transport = dryrun.Transport(cmd.ErrOrStderr())
		opts.RateLimit = 0
		opts.RatePercent = 0
	case settings.RedisURL != "":
		store, rdb, err := ratestore.NewRedisFromURL(settings.RedisURL, opts.Domain)
		if err != nil {
			return nil, nil, err
		}
		opts.Store = store
		release = func() { _ = rdb.Close() }
	}

	client, err := api.New(opts)
	if err != nil {
		release()
		if api.IsInvalidOptionsError(err) && settings.APIKey == "" {
			return nil, nil, fmt.Errorf("%w (run 'talentlms auth login' or set %s)", err, config.EnvAPIKey)
		}
		return nil, nil, err
	}
	return client, release, nil
}

// withClient runs fn with a freshly built client. A request skipped by
// --dry-run is not an error.
func withClient(cmd *cobra.Command, fn func(ctx context.Context, client *api.Client) error) error {
	client, release, err := newClient(cmd)
	if err != nil {
		return err
	}
	defer release()
	if err := fn(cmd.Context(), client); err != nil && !errors.Is(err, dryrun.ErrSkipped) {
		return err
	}
	return nil
}
