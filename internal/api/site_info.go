package api

import "context"

// Get retrieves domain details such as user and course totals.
func (s SiteInfoService) Get(ctx context.Context) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "siteInfo"})
}

// RateLimit retrieves the hourly API quota (limit, remaining, reset).
// It never triggers a quota refresh.
func (s SiteInfoService) RateLimit(ctx context.Context) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: QuotaEndpoint})
}

// Timeline retrieves timeline events (event_type, plus an optional
// user_id, course_id, branch_id, group_id or unit_id filter).
func (s SiteInfoService) Timeline(ctx context.Context, data Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "getTimeline", Data: data})
}
