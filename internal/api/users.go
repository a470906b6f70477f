package api

import "context"

// Get retrieves a user by ID.
func (s UsersService) Get(ctx context.Context, id int) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: idEndpoint("users", id)})
}

// Find retrieves a user by other identifiers such as email or username.
func (s UsersService) Find(ctx context.Context, params Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "users", Params: params})
}

// List retrieves all users.
func (s UsersService) List(ctx context.Context) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "users"})
}

// Delete deletes a user (user_id, deleted_by_user_id, permanent).
func (s UsersService) Delete(ctx context.Context, data Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "deleteUser", Data: data})
}

// Login returns a login URL for a user (login, password, logout_redirect).
func (s UsersService) Login(ctx context.Context, data Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "userLogin", Data: data})
}

// Logout ends a user's session (user_id, next).
func (s UsersService) Logout(ctx context.Context, data Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "userLogout", Data: data})
}

// Signup registers a new user.
func (s UsersService) Signup(ctx context.Context, data Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "userSignup", Data: data})
}

// CustomRegistrationFields lists the custom user registration fields.
func (s UsersService) CustomRegistrationFields(ctx context.Context) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "getCustomRegistrationFields"})
}

// SetStatus activates or deactivates a user (user_id, status).
func (s UsersService) SetStatus(ctx context.Context, params Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "userSetStatus", Params: params})
}

// ForgotUsername sends a username reminder (email, domain_url).
func (s UsersService) ForgotUsername(ctx context.Context, params Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "forgotUsername", Params: params})
}

// ForgotPassword sends a password reset (username, domain_url, redirect_url).
func (s UsersService) ForgotPassword(ctx context.Context, params Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "forgotPassword", Params: params})
}

// Edit updates a user's profile.
func (s UsersService) Edit(ctx context.Context, data Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "editUser", Data: data})
}

// ByCustomField lists users whose custom field matches (custom_field_value).
func (s UsersService) ByCustomField(ctx context.Context, params Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "getUsersByCustomField", Params: params})
}
