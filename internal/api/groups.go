package api

import "context"

// Create creates a group.
func (s GroupsService) Create(ctx context.Context, data Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "createGroup", Data: data})
}

// Get retrieves a group by ID.
func (s GroupsService) Get(ctx context.Context, id int) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: idEndpoint("groups", id)})
}

// List retrieves all groups.
func (s GroupsService) List(ctx context.Context) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "groups"})
}

// Delete deletes a group (group_id, deleted_by_user_id).
func (s GroupsService) Delete(ctx context.Context, data Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "deleteGroup", Data: data})
}

// AddUser adds a user to a group (user_id, group_key).
func (s GroupsService) AddUser(ctx context.Context, params Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "addUserToGroup", Params: params})
}

// RemoveUser removes a user from a group (user_id, group_id).
func (s GroupsService) RemoveUser(ctx context.Context, params Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "removeUserFromGroup", Params: params})
}

// AddCourse adds a course to a group (course_id, group_id).
func (s GroupsService) AddCourse(ctx context.Context, params Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "addCourseToGroup", Params: params})
}
