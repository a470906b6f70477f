package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/talentlms/talentlms-go/internal/api"
	"github.com/talentlms/talentlms-go/internal/cache"
	"github.com/talentlms/talentlms-go/internal/resolve"
)

// cacheDir returns where listings are cached. Tests replace it.
var cacheDir = cache.DefaultDir

type findOptions struct {
	limit   int
	refresh bool
	best    bool
}

func (o *findOptions) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&o.limit, "limit", 10, "Maximum number of matches to show")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "Ignore the cached listing")
	cmd.Flags().BoolVar(&o.best, "best", false, "Print only the single best match; fail when ambiguous")
}

func newCoursesFindCmd() *cobra.Command {
	var opts findOptions
	cmd := &cobra.Command{
		Use:   "find <name>",
		Short: "Find courses by name or code",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client *api.Client) error {
				courses, err := cachedList[api.Course](ctx, client, "courses", opts.refresh, func(ctx context.Context) (*api.Response, error) {
					return client.Courses().List(ctx)
				})
				if err != nil {
					return err
				}
				candidates := make([]resolve.Candidate, 0, len(courses))
				for _, c := range courses {
					candidates = append(candidates, resolve.Candidate{ID: int(c.ID), Name: c.Name, Aliases: []string{c.Code}})
				}
				return printMatches(cmd, strings.Join(args, " "), candidates, opts)
			})
		},
	}
	opts.register(cmd)
	return cmd
}

func newUsersFindCmd() *cobra.Command {
	var opts findOptions
	cmd := &cobra.Command{
		Use:   "find <name>",
		Short: "Find users by name, login or email",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client *api.Client) error {
				users, err := cachedList[api.User](ctx, client, "users", opts.refresh, func(ctx context.Context) (*api.Response, error) {
					return client.Users().List(ctx)
				})
				if err != nil {
					return err
				}
				candidates := make([]resolve.Candidate, 0, len(users))
				for _, u := range users {
					candidates = append(candidates, resolve.Candidate{ID: int(u.ID), Name: u.DisplayName(), Aliases: []string{u.Login, u.Email}})
				}
				return printMatches(cmd, strings.Join(args, " "), candidates, opts)
			})
		},
	}
	opts.register(cmd)
	return cmd
}

// cachedList returns a decoded listing, served from the on-disk cache when
// it is fresh. Only successful listings are cached.
func cachedList[T any](ctx context.Context, client *api.Client, resource string, refresh bool, list func(context.Context) (*api.Response, error)) ([]T, error) {
	var store *cache.Store[T]
	if dir, err := cacheDir(); err == nil {
		store = cache.New[T](dir, resource, client.Options().Domain, cache.DefaultTTL)
		if !refresh {
			if items, ok := store.Load(); ok {
				return items, nil
			}
		}
	}

	resp, err := list(ctx)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("listing %s: %w", resource, &StatusError{StatusCode: resp.StatusCode})
	}
	var items []T
	if err := resp.Decode(&items); err != nil {
		return nil, err
	}
	if store != nil {
		store.Save(items)
	}
	return items, nil
}

func printMatches(cmd *cobra.Command, query string, candidates []resolve.Candidate, opts findOptions) error {
	var matches []resolve.Match
	if opts.best {
		best, err := resolve.Best(query, candidates)
		if err != nil {
			return err
		}
		matches = []resolve.Match{{Candidate: best}}
	} else {
		matches = resolve.Rank(query, candidates, opts.limit)
	}

	f := formatter(cmd)
	if len(matches) == 0 {
		f.Empty(fmt.Sprintf("No matches for %q", query))
		return &resolve.NotFoundError{Query: query}
	}

	if f.Tabular() {
		f.Row("ID", "NAME", "ALSO")
		for _, m := range matches {
			f.Row(strconv.Itoa(m.ID), m.Name, strings.Join(nonEmpty(m.Aliases), ", "))
		}
		return f.Flush()
	}

	out := make([]map[string]any, 0, len(matches))
	for _, m := range matches {
		out = append(out, map[string]any{"id": m.ID, "name": m.Name, "aliases": nonEmpty(m.Aliases), "score": m.Score})
	}
	return f.Output(out)
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
