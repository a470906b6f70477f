package cmd

import (
	"github.com/spf13/cobra"

	"github.com/talentlms/talentlms-go/internal/api"
	"github.com/talentlms/talentlms-go/internal/outfmt"
)

func formatter(cmd *cobra.Command) *outfmt.Formatter {
	return outfmt.NewFormatter(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// printResponse writes the response body and turns a non-2xx status into a
// *StatusError so the process exits non-zero.
func printResponse(cmd *cobra.Command, resp *api.Response) error {
	if err := formatter(cmd).Output(resp.Body); err != nil {
		return err
	}
	if !resp.OK() {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	return nil
}
