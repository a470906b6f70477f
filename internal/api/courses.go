package api

import "context"

// Create creates a course.
func (s CoursesService) Create(ctx context.Context, data Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "createCourse", Data: data})
}

// Get retrieves a course by ID.
func (s CoursesService) Get(ctx context.Context, id int) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: idEndpoint("courses", id)})
}

// List retrieves all courses.
func (s CoursesService) List(ctx context.Context) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "courses"})
}

// Delete deletes a course (course_id, deleted_by_user_id).
func (s CoursesService) Delete(ctx context.Context, data Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "deleteCourse", Data: data})
}

// AddUser enrolls a user in a course (user_id, course_id, role).
func (s CoursesService) AddUser(ctx context.Context, data Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "addUserToCourse", Data: data})
}

// RemoveUser removes a user from a course (user_id, course_id).
func (s CoursesService) RemoveUser(ctx context.Context, params Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "removeUserFromCourse", Params: params})
}

// GoTo returns a one-off login URL that lands the user in a course.
// logout_redirect and course_completed_redirect are sent base64 encoded.
func (s CoursesService) GoTo(ctx context.Context, params Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "goToCourse", Params: params})
}

// Buy purchases a course for a user (user_id, course_id, coupon).
func (s CoursesService) Buy(ctx context.Context, data Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "buyCourse", Data: data})
}

// UserStatus reports a user's progress in a course (user_id, course_id).
func (s CoursesService) UserStatus(ctx context.Context, params Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "getUserStatusInCourse", Params: params})
}

// CustomFields lists the custom course fields.
func (s CoursesService) CustomFields(ctx context.Context) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "getCustomCourseFields"})
}

// ByCustomField lists courses whose custom field matches (custom_field_value).
func (s CoursesService) ByCustomField(ctx context.Context, params Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "getCoursesByCustomField", Params: params})
}

// ResetUserProgress clears a user's progress in a course (user_id, course_id).
func (s CoursesService) ResetUserProgress(ctx context.Context, params Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "resetUserProgress", Params: params})
}
