package api

import "context"

// Get retrieves a category by ID.
func (s CategoriesService) Get(ctx context.Context, id int) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: idEndpoint("categories", id)})
}

// List retrieves all categories.
func (s CategoriesService) List(ctx context.Context) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "categories"})
}

// LeafsAndCourses retrieves a category with its sub-categories and courses.
func (s CategoriesService) LeafsAndCourses(ctx context.Context, id int) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: idEndpoint("categoryLeafsAndCourses", id)})
}

// BuyCourses purchases every course in a category (user_id, category_id, coupon).
func (s CategoriesService) BuyCourses(ctx context.Context, data Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "buyCategoryCourses", Data: data})
}
