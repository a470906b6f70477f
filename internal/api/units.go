package api

import "context"

// UserProgress reports the progress of a user in a unit (unit_id, user_id).
func (s UnitsService) UserProgress(ctx context.Context, params Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "getUsersProgressInUnits", Params: params})
}

// TestAnswers returns a user's answers to a test unit (test_id, user_id).
func (s UnitsService) TestAnswers(ctx context.Context, params Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "getTestAnswers", Params: params})
}

// SurveyAnswers returns a user's answers to a survey unit (survey_id, user_id).
func (s UnitsService) SurveyAnswers(ctx context.Context, params Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "getSurveyAnswers", Params: params})
}

// ILTSessions lists the instructor-led training sessions of a unit (ilt_id).
func (s UnitsService) ILTSessions(ctx context.Context, params Params) (*Response, error) {
	return s.Call(ctx, Request{Endpoint: "getIltSessions", Params: params})
}
