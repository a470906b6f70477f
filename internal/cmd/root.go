package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/talentlms/talentlms-go/internal/debug"
	"github.com/talentlms/talentlms-go/internal/dryrun"
	"github.com/talentlms/talentlms-go/internal/outfmt"
)

// rootFlags holds global CLI flags
type rootFlags struct {
	Domain      string
	APIKey      string
	RateLimit   float64
	RatePercent float64
	Timeout     time.Duration
	RetryCount  int
	Verbose     bool
	RedisURL    string
	Config      string
	DryRun      bool

	Output   string
	Query    string
	Template string
	Compact  bool
}

// flags holds the global command flags. It is reset at the start of every
// Execute call so tests get clean state.
var flags rootFlags

// httpClient replaces the default HTTP client when set. Tests point it at
// an httptest TLS server.
var httpClient *http.Client

// Execute runs the root command
func Execute(ctx context.Context, args []string) error {
	flags = rootFlags{Output: "json"}

	root := &cobra.Command{
		Use:           "talentlms",
		Short:         "Command-line client for the TalentLMS REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			mode, err := outfmt.Parse(flags.Output)
			if err != nil {
				return err
			}
			ctx = outfmt.WithMode(ctx, mode)
			ctx = outfmt.WithCompact(ctx, flags.Compact)
			if flags.Query != "" {
				ctx = outfmt.WithQuery(ctx, flags.Query)
			}
			if flags.Template != "" {
				ctx = outfmt.WithTemplate(ctx, flags.Template)
			}

			streams := streamsFrom(ctx)
			cmd.SetOut(streams.Out)
			cmd.SetErr(streams.ErrOut)

			ctx = debug.WithVerbose(ctx, flags.Verbose)
			ctx = dryrun.WithDryRun(ctx, flags.DryRun)

			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetContext(ctx)
	root.SetArgs(args)
	streams := streamsFrom(ctx)
	root.SetOut(streams.Out)
	root.SetErr(streams.ErrOut)
	root.SetIn(streams.In)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.Domain, "domain", "", "TalentLMS domain, e.g. school.talentlms.com (env TALENTLMS_DOMAIN)")
	pf.StringVar(&flags.APIKey, "api-key", "", "API key (env TALENTLMS_API_KEY; prefer 'auth login')")
	pf.Float64Var(&flags.RateLimit, "rate-limit", 0, "Requests per hour; 0 disables throttling")
	pf.Float64Var(&flags.RatePercent, "rate-percent", 0, "Use this share (0-100] of the server quota instead of --rate-limit")
	pf.DurationVar(&flags.Timeout, "timeout", 0, "Per-attempt request timeout (e.g. 30s; default 60s)")
	pf.IntVar(&flags.RetryCount, "retry-count", 0, "Extra attempts after a non-2xx response or timeout")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "Log requests, retries and throttling to stderr")
	pf.StringVar(&flags.RedisURL, "redis-url", "", "Share the request budget across processes through Redis")
	pf.BoolVar(&flags.DryRun, "dry-run", false, "Print the requests that would be sent without sending them")
	pf.StringVar(&flags.Config, "config", "", "Config file path (env TALENTLMS_CONFIG)")
	pf.StringVarP(&flags.Output, "output", "o", flags.Output, "Output format: json|jsonl|text")
	pf.StringVarP(&flags.Query, "query", "q", "", "jq expression applied to the response body")
	pf.StringVar(&flags.Template, "template", "", "Go template used to render the response body")
	pf.BoolVar(&flags.Compact, "compact", false, "Compact JSON output")

	root.AddCommand(newAuthCmd())
	for _, res := range resources() {
		root.AddCommand(newResourceCmd(res))
	}
	root.AddCommand(newAPICmd())
	root.AddCommand(newBulkCmd())
	root.AddCommand(newVersionCmd())

	err := root.Execute()
	if err != nil && !errors.Is(err, pflag.ErrHelp) {
		_, _ = fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	}
	return err
}

// Streams holds the I/O a command reads and writes.
type Streams struct {
	Out    io.Writer
	ErrOut io.Writer
	In     io.Reader
}

type streamsKey struct{}

// WithStreams makes Execute use s instead of the process streams.
func WithStreams(ctx context.Context, s *Streams) context.Context {
	return context.WithValue(ctx, streamsKey{}, s)
}

func streamsFrom(ctx context.Context) *Streams {
	if s, ok := ctx.Value(streamsKey{}).(*Streams); ok && s != nil {
		return s
	}
	return &Streams{Out: os.Stdout, ErrOut: os.Stderr, In: os.Stdin}
}
