package api

// Service accessors group operations by resource. Each service wraps the
// Caller it was created from.

// BranchesService calls the branch endpoints.
type BranchesService struct{ Caller }

// CategoriesService calls the course category endpoints.
type CategoriesService struct{ Caller }

// CoursesService calls the course endpoints.
type CoursesService struct{ Caller }

// GroupsService calls the group endpoints.
type GroupsService struct{ Caller }

// SiteInfoService calls the portal-wide endpoints such as siteInfo and timeline.
type SiteInfoService struct{ Caller }

// UnitsService calls the unit progress, answer and ILT session endpoints.
type UnitsService struct{ Caller }

// UsersService calls the user endpoints.
type UsersService struct{ Caller }

// Branches returns the BranchesService bound to c.
func (c *Client) Branches() BranchesService {
	return BranchesService{c}
}

// Categories returns the CategoriesService bound to c.
func (c *Client) Categories() CategoriesService {
	return CategoriesService{c}
}

// Courses returns the CoursesService bound to c.
func (c *Client) Courses() CoursesService {
	return CoursesService{c}
}

// Groups returns the GroupsService bound to c.
func (c *Client) Groups() GroupsService {
	return GroupsService{c}
}

// SiteInfo returns the SiteInfoService bound to c.
func (c *Client) SiteInfo() SiteInfoService {
	return SiteInfoService{c}
}

// Units returns the UnitsService bound to c.
func (c *Client) Units() UnitsService {
	return UnitsService{c}
}

// Users returns the UsersService bound to c.
func (c *Client) Users() UsersService {
	return UsersService{c}
}
