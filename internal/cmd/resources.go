package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/talentlms/talentlms-go/internal/api"
)

// argKind says what a resource operation takes on the command line.
type argKind int

const (
	argsNone   argKind = iota // no arguments
	argsID                    // a single positional ID
	argsParams                // key=value pairs encoded into the endpoint
	argsData                  // key=value pairs sent as a form body
)

type operation struct {
	name  string
	short string
	kind  argKind
	// idKey names the parameter an ID fills in when the operation is run
	// through "bulk". Empty for argsID operations, which take the ID directly.
	idKey string
	call  func(ctx context.Context, c *api.Client, id int, p api.Params) (*api.Response, error)
}

// bulkable reports whether the operation can be driven by an ID list.
func (op operation) bulkable() bool {
	return op.kind == argsID || op.idKey != ""
}

type resource struct {
	name    string
	aliases []string
	short   string
	ops     []operation
	extra   []func() *cobra.Command
}

func (r resource) op(name string) (operation, bool) {
	for _, op := range r.ops {
		if op.name == name {
			return op, true
		}
	}
	return operation{}, false
}

func resources() []resource {
	return []resource{
		{
			name: "branches", aliases: []string{"branch", "br"}, short: "Manage branches",
			ops: []operation{
				{name: "list", short: "List branches", kind: argsNone, call: func(ctx context.Context, c *api.Client, _ int, _ api.Params) (*api.Response, error) {
					return c.Branches().List(ctx)
				}},
				{name: "get", short: "Get a branch by ID", kind: argsID, call: func(ctx context.Context, c *api.Client, id int, _ api.Params) (*api.Response, error) {
					return c.Branches().Get(ctx, id)
				}},
				{name: "create", short: "Create a branch", kind: argsData, call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Branches().Create(ctx, p)
				}},
				{name: "delete", short: "Delete a branch", kind: argsData, idKey: "branch_id", call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Branches().Delete(ctx, p)
				}},
				{name: "add-user", short: "Add a user to a branch", kind: argsParams, idKey: "user_id", call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Branches().AddUser(ctx, p)
				}},
				{name: "remove-user", short: "Remove a user from a branch", kind: argsParams, idKey: "user_id", call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Branches().RemoveUser(ctx, p)
				}},
				{name: "add-course", short: "Add a course to a branch", kind: argsParams, idKey: "course_id", call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Branches().AddCourse(ctx, p)
				}},
				{name: "set-status", short: "Activate or deactivate a branch", kind: argsParams, idKey: "branch_id", call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Branches().SetStatus(ctx, p)
				}},
			},
		},
		{
			name: "categories", aliases: []string{"category", "cat"}, short: "Browse course categories",
			ops: []operation{
				{name: "list", short: "List categories", kind: argsNone, call: func(ctx context.Context, c *api.Client, _ int, _ api.Params) (*api.Response, error) {
					return c.Categories().List(ctx)
				}},
				{name: "get", short: "Get a category by ID", kind: argsID, call: func(ctx context.Context, c *api.Client, id int, _ api.Params) (*api.Response, error) {
					return c.Categories().Get(ctx, id)
				}},
				{name: "tree", short: "Get a category with its sub-categories and courses", kind: argsID, call: func(ctx context.Context, c *api.Client, id int, _ api.Params) (*api.Response, error) {
					return c.Categories().LeafsAndCourses(ctx, id)
				}},
				{name: "buy", short: "Buy every course in a category for a user", kind: argsData, idKey: "user_id", call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Categories().BuyCourses(ctx, p)
				}},
			},
		},
		{
			name: "courses", aliases: []string{"course", "co"}, short: "Manage courses and enrollments",
			extra: []func() *cobra.Command{newCoursesFindCmd},
			ops: []operation{
				{name: "list", short: "List courses", kind: argsNone, call: func(ctx context.Context, c *api.Client, _ int, _ api.Params) (*api.Response, error) {
					return c.Courses().List(ctx)
				}},
				{name: "get", short: "Get a course by ID", kind: argsID, call: func(ctx context.Context, c *api.Client, id int, _ api.Params) (*api.Response, error) {
					return c.Courses().Get(ctx, id)
				}},
				{name: "create", short: "Create a course", kind: argsData, call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Courses().Create(ctx, p)
				}},
				{name: "delete", short: "Delete a course", kind: argsData, idKey: "course_id", call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Courses().Delete(ctx, p)
				}},
				{name: "add-user", short: "Enroll a user in a course", kind: argsData, idKey: "user_id", call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Courses().AddUser(ctx, p)
				}},
				{name: "remove-user", short: "Remove a user from a course", kind: argsParams, idKey: "user_id", call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Courses().RemoveUser(ctx, p)
				}},
				{name: "goto", short: "Get a one-off URL that logs a user into a course", kind: argsParams, call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Courses().GoTo(ctx, p)
				}},
				{name: "buy", short: "Buy a course for a user", kind: argsData, idKey: "user_id", call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Courses().Buy(ctx, p)
				}},
				{name: "user-status", short: "Show a user's progress in a course", kind: argsParams, idKey: "user_id", call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Courses().UserStatus(ctx, p)
				}},
				{name: "custom-fields", short: "List custom course fields", kind: argsNone, call: func(ctx context.Context, c *api.Client, _ int, _ api.Params) (*api.Response, error) {
					return c.Courses().CustomFields(ctx)
				}},
				{name: "by-custom-field", short: "List courses matching a custom field value", kind: argsParams, call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Courses().ByCustomField(ctx, p)
				}},
				{name: "reset-progress", short: "Reset a user's progress in a course", kind: argsParams, idKey: "user_id", call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Courses().ResetUserProgress(ctx, p)
				}},
			},
		},
		{
			name: "groups", aliases: []string{"group", "gr"}, short: "Manage groups",
			ops: []operation{
				{name: "list", short: "List groups", kind: argsNone, call: func(ctx context.Context, c *api.Client, _ int, _ api.Params) (*api.Response, error) {
					return c.Groups().List(ctx)
				}},
				{name: "get", short: "Get a group by ID", kind: argsID, call: func(ctx context.Context, c *api.Client, id int, _ api.Params) (*api.Response, error) {
					return c.Groups().Get(ctx, id)
				}},
				{name: "create", short: "Create a group", kind: argsData, call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Groups().Create(ctx, p)
				}},
				{name: "delete", short: "Delete a group", kind: argsData, idKey: "group_id", call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Groups().Delete(ctx, p)
				}},
				{name: "add-user", short: "Add a user to a group", kind: argsParams, idKey: "user_id", call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Groups().AddUser(ctx, p)
				}},
				{name: "remove-user", short: "Remove a user from a group", kind: argsParams, idKey: "user_id", call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Groups().RemoveUser(ctx, p)
				}},
				{name: "add-course", short: "Add a course to a group", kind: argsParams, idKey: "course_id", call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Groups().AddCourse(ctx, p)
				}},
			},
		},
		{
			name: "site", aliases: []string{"site-info"}, short: "Domain information and quota",
			ops: []operation{
				{name: "info", short: "Show domain details", kind: argsNone, call: func(ctx context.Context, c *api.Client, _ int, _ api.Params) (*api.Response, error) {
					return c.SiteInfo().Get(ctx)
				}},
				{name: "rate-limit", short: "Show the hourly API quota", kind: argsNone, call: func(ctx context.Context, c *api.Client, _ int, _ api.Params) (*api.Response, error) {
					return c.SiteInfo().RateLimit(ctx)
				}},
				{name: "timeline", short: "Show timeline events", kind: argsData, call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.SiteInfo().Timeline(ctx, p)
				}},
			},
		},
		{
			name: "units", aliases: []string{"unit"}, short: "Unit progress and answers",
			ops: []operation{
				{name: "progress", short: "Show users' progress in a unit", kind: argsParams, call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Units().UserProgress(ctx, p)
				}},
				{name: "test-answers", short: "Show a user's test answers", kind: argsParams, idKey: "user_id", call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Units().TestAnswers(ctx, p)
				}},
				{name: "survey-answers", short: "Show a user's survey answers", kind: argsParams, idKey: "user_id", call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Units().SurveyAnswers(ctx, p)
				}},
				{name: "ilt-sessions", short: "List instructor-led training sessions", kind: argsParams, call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Units().ILTSessions(ctx, p)
				}},
			},
		},
		{
			name: "users", aliases: []string{"user", "us"}, short: "Manage users",
			extra: []func() *cobra.Command{newUsersFindCmd},
			ops: []operation{
				{name: "list", short: "List users", kind: argsNone, call: func(ctx context.Context, c *api.Client, _ int, _ api.Params) (*api.Response, error) {
					return c.Users().List(ctx)
				}},
				{name: "get", short: "Get a user by ID", kind: argsID, call: func(ctx context.Context, c *api.Client, id int, _ api.Params) (*api.Response, error) {
					return c.Users().Get(ctx, id)
				}},
				{name: "lookup", short: "Get a user by email or username", kind: argsParams, call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Users().Find(ctx, p)
				}},
				{name: "signup", short: "Register a new user", kind: argsData, call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Users().Signup(ctx, p)
				}},
				{name: "edit", short: "Update a user's profile", kind: argsData, idKey: "user_id", call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Users().Edit(ctx, p)
				}},
				{name: "delete", short: "Delete a user", kind: argsData, idKey: "user_id", call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Users().Delete(ctx, p)
				}},
				{name: "login", short: "Get a login URL for a user", kind: argsData, call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Users().Login(ctx, p)
				}},
				{name: "logout", short: "End a user's session", kind: argsData, idKey: "user_id", call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Users().Logout(ctx, p)
				}},
				{name: "set-status", short: "Activate or deactivate a user", kind: argsParams, idKey: "user_id", call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Users().SetStatus(ctx, p)
				}},
				{name: "registration-fields", short: "List custom registration fields", kind: argsNone, call: func(ctx context.Context, c *api.Client, _ int, _ api.Params) (*api.Response, error) {
					return c.Users().CustomRegistrationFields(ctx)
				}},
				{name: "by-custom-field", short: "List users matching a custom field value", kind: argsParams, call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Users().ByCustomField(ctx, p)
				}},
				{name: "forgot-username", short: "Send a username reminder", kind: argsParams, call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Users().ForgotUsername(ctx, p)
				}},
				{name: "forgot-password", short: "Send a password reset", kind: argsParams, call: func(ctx context.Context, c *api.Client, _ int, p api.Params) (*api.Response, error) {
					return c.Users().ForgotPassword(ctx, p)
				}},
			},
		},
	}
}

func findResource(name string) (resource, bool) {
	for _, r := range resources() {
		if r.name == name {
			return r, true
		}
		for _, alias := range r.aliases {
			if alias == name {
				return r, true
			}
		}
	}
	return resource{}, false
}

func newResourceCmd(r resource) *cobra.Command {
	cmd := &cobra.Command{
		Use:     r.name,
		Aliases: r.aliases,
		Short:   r.short,
	}
	for _, op := range r.ops {
		cmd.AddCommand(newOperationCmd(op))
	}
	for _, extra := range r.extra {
		cmd.AddCommand(extra())
	}
	return cmd
}

func newOperationCmd(op operation) *cobra.Command {
	cmd := &cobra.Command{
		Use:   op.name + usageSuffix(op.kind),
		Short: op.short,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, params, err := operationArgs(op.kind, args)
			if err != nil {
				return err
			}
			return withClient(cmd, func(ctx context.Context, client *api.Client) error {
				resp, err := op.call(ctx, client, id, params)
				if err != nil {
					return err
				}
				return printResponse(cmd, resp)
			})
		},
	}
	switch op.kind {
	case argsNone:
		cmd.Args = cobra.NoArgs
	case argsID:
		cmd.Args = cobra.ExactArgs(1)
	}
	return cmd
}

func usageSuffix(kind argKind) string {
	switch kind {
	case argsID:
		return " <id>"
	case argsParams, argsData:
		return " [key=value ...]"
	default:
		return ""
	}
}

func operationArgs(kind argKind, args []string) (int, api.Params, error) {
	switch kind {
	case argsID:
		id, err := parseID(args[0])
		return id, nil, err
	case argsParams, argsData:
		params, err := parseParams(args)
		return 0, params, err
	default:
		return 0, nil, nil
	}
}

// opNames lists operation names for help and error messages.
func opNames(ops []operation, keep func(operation) bool) string {
	var names []string
	for _, op := range ops {
		if keep == nil || keep(op) {
			names = append(names, op.name)
		}
	}
	return strings.Join(names, ", ")
}
