package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/talentlms/talentlms-go/internal/update"
)

// version is set at build time via ldflags
var version = "dev"

// newChecker builds the release checker. Tests replace it.
var newChecker = update.NewChecker

func newVersionCmd() *cobra.Command {
	var noCheck bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "talentlms version %s\n", version)
			if noCheck {
				return
			}

			// Update checks never fail the command.
			result, err := newChecker().Check(cmd.Context(), version)
			if err != nil || result == nil || !result.UpdateAvailable {
				return
			}
			errOut := cmd.ErrOrStderr()
			_, _ = fmt.Fprintf(errOut, "\nUpdate available: %s -> %s\n", result.CurrentVersion, result.LatestVersion)
			_, _ = fmt.Fprintf(errOut, "Download: %s\n", result.UpdateURL)
		},
	}

	cmd.Flags().BoolVar(&noCheck, "no-check", false, "Skip the update check")
	return cmd
}
