package api

import (
	"context"
	"strconv"
)

// idEndpoint returns "base/id:<id>".
func idEndpoint(base string, id int) string {
	return base + "/id:" + strconv.Itoa(id)
}

// Create creates a branch. Data holds fields such as name, description and
// purchase settings.
func (s BranchesService) Create(ctx context.Context, data Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "createBranch", Data: data})
}

// Get retrieves a branch by ID.
func (s BranchesService) Get(ctx context.Context, id int) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: idEndpoint("branches", id)})
}

// List retrieves all branches.
func (s BranchesService) List(ctx context.Context) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "branches"})
}

// Delete deletes a branch (branch_id, deleted_by_user_id).
func (s BranchesService) Delete(ctx context.Context, data Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "deleteBranch", Data: data})
}

// AddUser adds a user to a branch (user_id, branch_id).
func (s BranchesService) AddUser(ctx context.Context, params Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "addUserToBranch", Params: params})
}

// RemoveUser removes a user from a branch (user_id, branch_id).
func (s BranchesService) RemoveUser(ctx context.Context, params Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "removeUserFromBranch", Params: params})
}

// AddCourse adds a course to a branch (course_id, branch_id).
func (s BranchesService) AddCourse(ctx context.Context, params Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "addCourseToBranch", Params: params})
}

// SetStatus activates or deactivates a branch (branch_id, status).
func (s BranchesService) SetStatus(ctx context.Context, params Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "branchSetStatus", Params: params})
}
