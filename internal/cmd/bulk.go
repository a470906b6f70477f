package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/talentlms/talentlms-go/internal/api"
	"github.com/talentlms/talentlms-go/internal/debug"
	"github.com/talentlms/talentlms-go/internal/dryrun"
)

// DefaultConcurrency is the default number of concurrent workers
const DefaultConcurrency = 5

// BulkResult represents the outcome of a single bulk operation
type BulkResult struct {
	ID         int    `json:"id"`
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code,omitempty"`
	Error      string `json:"error,omitempty"`
	Data       any    `json:"data,omitempty"`
}

// runBulk calls op once per ID with bounded parallelism. Individual failures
// are recorded in the results and never stop the other calls. Results are
// returned in ID order.
func runBulk(
	ctx context.Context,
	ids []int,
	concurrency int64,
	progress io.Writer,
	op func(ctx context.Context, id int) (*api.Response, error),
) []BulkResult {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	sem := semaphore.NewWeighted(concurrency)
	var mu sync.Mutex
	results := make([]BulkResult, 0, len(ids))
	var done int64

	g, ctx := errgroup.WithContext(ctx)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return nil
			}
			defer sem.Release(1)

			result := BulkResult{ID: id}
			resp, err := op(ctx, id)
			switch {
			case errors.Is(err, dryrun.ErrSkipped):
				result.Success = true
			case err != nil:
				result.Error = err.Error()
			default:
				result.StatusCode = resp.StatusCode
				result.Success = resp.OK()
				result.Data = resp.Body
				if !resp.OK() {
					result.Error = (&StatusError{StatusCode: resp.StatusCode}).Error()
				}
			}

			mu.Lock()
			results = append(results, result)
			if progress != nil {
				_, _ = fmt.Fprintf(progress, "\rProcessed %d/%d", atomic.AddInt64(&done, 1), len(ids))
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if progress != nil {
		_, _ = fmt.Fprintln(progress)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results
}

// countResults returns success and failure counts from bulk results
func countResults(results []BulkResult) (success, failure int) {
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failure++
		}
	}
	return
}

func newBulkCmd() *cobra.Command {
	var (
		rawIDs      string
		concurrency int64
	)

	cmd := &cobra.Command{
		Use:   "bulk <resource> <operation> --ids 1,2,3 [key=value ...]",
		Short: "Run one operation for many IDs concurrently",
		Long: `Run an ID-keyed operation once per ID. Extra key=value pairs are sent with
every call. All calls share the client's request budget, so --concurrency
bounds in-flight requests but never exceeds the configured rate.`,
		Example: `  talentlms bulk users get --ids 1,2,3
  talentlms bulk courses add-user --ids 4,5 course_id=12 role=learner
  talentlms bulk users delete --ids 7,8 deleted_by_user_id=1 permanent=true`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, ok := findResource(args[0])
			if !ok {
				return usagef("unknown resource %q", args[0])
			}
			op, ok := res.op(args[1])
			if !ok || !op.bulkable() {
				return usagef("%s %s cannot be run in bulk (supported: %s)", res.name, args[1], opNames(res.ops, operation.bulkable))
			}
			ids, err := parseIDList(rawIDs)
			if err != nil {
				return err
			}
			shared, err := parseParams(args[2:])
			if err != nil {
				return err
			}

			return withClient(cmd, func(ctx context.Context, client *api.Client) error {
				var progress io.Writer
				if debug.IsVerbose(ctx) {
					progress = cmd.ErrOrStderr()
				}
				results := runBulk(ctx, ids, concurrency, progress, func(ctx context.Context, id int) (*api.Response, error) {
					params := shared
					if op.idKey != "" {
						params = append(api.Params{{Key: op.idKey, Value: api.Int(int64(id))}}, shared...)
					}
					return op.call(ctx, client, id, params)
				})

				if err := formatter(cmd).Output(results); err != nil {
					return err
				}
				if _, failed := countResults(results); failed > 0 {
					return fmt.Errorf("%d of %d operations failed", failed, len(results))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&rawIDs, "ids", "", "Comma-separated IDs (required)")
	cmd.Flags().Int64Var(&concurrency, "concurrency", DefaultConcurrency, "Maximum concurrent requests")
	_ = cmd.MarkFlagRequired("ids")
	return cmd
}
