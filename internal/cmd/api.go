package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/talentlms/talentlms-go/internal/api"
)

func newAPICmd() *cobra.Command {
	var data []string

	cmd := &cobra.Command{
		Use:   "api <endpoint> [key=value ...]",
		Short: "Call any endpoint directly",
		Long: strings.TrimSpace(`
Call a TalentLMS endpoint by name. Positional key=value pairs are encoded
into the endpoint path; --data pairs are sent as a form POST body.

The call goes through the same throttling, quota refresh and retries as
every other command.`),
		Example: strings.TrimSpace(`
  talentlms api siteInfo
  talentlms api goToCourse user_id=1 course_id=2 logout_redirect=https://example.com
  talentlms api userSignup --data first_name=Ann --data login=ann --data email=ann@example.com`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoint := strings.Trim(strings.TrimSpace(args[0]), "/")
			if endpoint == "" {
				return usagef("endpoint is required")
			}
			params, err := parseParams(args[1:])
			if err != nil {
				return err
			}
			body, err := parseParams(data)
			if err != nil {
				return err
			}

			return withClient(cmd, func(ctx context.Context, client *api.Client) error {
				resp, err := client.Call(ctx, api.Request{Endpoint: endpoint, Params: params, Data: body})
				if err != nil {
					return err
				}
				return printResponse(cmd, resp)
			})
		},
	}

	cmd.Flags().StringArrayVarP(&data, "data", "d", nil, "Form body field as key=value (repeatable)")
	return cmd
}
