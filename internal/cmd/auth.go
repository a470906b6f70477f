package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/talentlms/talentlms-go/internal/api"
	"github.com/talentlms/talentlms-go/internal/config"
	"github.com/talentlms/talentlms-go/internal/debug"
	"github.com/talentlms/talentlms-go/internal/validation"
)

// newAuthCmd returns the auth command with subcommands
func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage stored credentials",
		Long:  "Store the TalentLMS domain and API key in your OS keychain.",
	}
	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthStatusCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var noVerify bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save a domain and API key",
		Long: strings.TrimSpace(`
Save TalentLMS credentials to your OS keychain.

The API key is read from --api-key or, when omitted, from the first line of
standard input. Unless --no-verify is given the key is checked with a
siteInfo call before it is saved.`),
		Example: strings.TrimSpace(`
  talentlms auth login --domain school.talentlms.com --api-key KEY
  echo "$KEY" | talentlms auth login --domain school.talentlms.com`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			domain := config.NormalizeDomain(flags.Domain)
			if domain == "" {
				return usagef("--domain is required")
			}
			if err := validation.ValidateDomain(domain); err != nil {
				return &usageError{msg: err.Error()}
			}
			key := strings.TrimSpace(flags.APIKey)
			if key == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return usagef("no API key given: pass --api-key or pipe it on stdin")
				}
				key = strings.TrimSpace(line)
			}
			if key == "" {
				return usagef("API key is empty")
			}

			if !noVerify {
				client, err := api.New(api.Options{
					APIKey:     key,
					Domain:     domain,
					Timeout:    api.DefaultTimeout,
					HTTPClient: httpClient,
					Logger:     debug.NewLogger(cmd.ErrOrStderr(), flags.Verbose),
					Verbose:    flags.Verbose,
				})
				if err != nil {
					return err
				}
				resp, err := client.SiteInfo().Get(cmd.Context())
				if err != nil {
					return fmt.Errorf("could not verify credentials: %w", err)
				}
				if !resp.OK() {
					_ = formatter(cmd).Output(resp.Body)
					return fmt.Errorf("credentials rejected: %w", &StatusError{StatusCode: resp.StatusCode})
				}
			}

			if err := config.SaveCredentials(config.Credentials{Domain: domain, APIKey: key}); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Saved credentials for %s\n", domain)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Save without checking the key against the API")
	return cmd
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which credentials would be used",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Resolve(overrides(cmd))
			if err != nil {
				return err
			}
			status := map[string]any{
				"configured":     settings.APIKey != "" && settings.Domain != "",
				"domain":         config.NormalizeDomain(settings.Domain),
				"api_key":        maskKey(settings.APIKey),
				"api_key_source": settings.APIKeySource,
				"rate_limit":     settings.RateLimit,
				"rate_percent":   settings.RatePercent,
				"timeout":        settings.Timeout.String(),
				"retry_count":    settings.RetryCount,
				"shared_budget":  settings.RedisURL != "",
			}
			return formatter(cmd).Output(status)
		},
	}
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.DeleteCredentials(); err != nil && !errors.Is(err, config.ErrNotConfigured) {
				return err
			}
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Removed stored credentials")
			return nil
		},
	}
}

// maskKey keeps the last four characters of an API key.
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
