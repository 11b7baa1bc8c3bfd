package models

import (
	"strings"
	"testing"
)

func TestStartSessionRequestDefaults(t *testing.T) {
	req := &StartSessionRequest{UserID: "u1", Track: "SWE_Intern"}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
	if req.Track != "swe_intern" {
		t.Fatalf("track should be normalized, got %s", req.Track)
	}
	if req.CompanyStyle != string(StyleGeneral) {
		t.Fatalf("expected default company style general, got %s", req.CompanyStyle)
	}
	if req.Difficulty != string(DifficultyMedium) {
		t.Fatalf("expected default difficulty medium, got %s", req.Difficulty)
	}
	if req.MaxQuestions != DefaultMaxQuestions {
		t.Fatalf("expected default max questions %d, got %d", DefaultMaxQuestions, req.MaxQuestions)
	}
}

func TestStartSessionRequestValidation(t *testing.T) {
	cases := []struct {
		name     string
		req      StartSessionRequest
		wantCode string
	}{
		{"missing user", StartSessionRequest{Track: "swe_intern"}, "missing_user_id"},
		{"bad track", StartSessionRequest{UserID: "u", Track: "astrology"}, "invalid_track"},
		{"bad style", StartSessionRequest{UserID: "u", Track: "swe_intern", CompanyStyle: "netflix"}, "invalid_company_style"},
		{"bad difficulty", StartSessionRequest{UserID: "u", Track: "swe_intern", Difficulty: "insane"}, "invalid_difficulty"},
		{"too many questions", StartSessionRequest{UserID: "u", Track: "swe_intern", MaxQuestions: 13}, "invalid_max_questions"},
		{"negative behavioral", StartSessionRequest{UserID: "u", Track: "swe_intern", BehavioralTarget: -1}, "invalid_behavioral_target"},
		{"behavioral over max", StartSessionRequest{UserID: "u", Track: "swe_intern", MaxQuestions: 2, BehavioralTarget: 3}, "invalid_behavioral_target"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			resp, ok := err.(*ErrorResponse)
			if !ok {
				t.Fatalf("expected *ErrorResponse, got %T", err)
			}
			if resp.Code != tc.wantCode {
				t.Fatalf("expected code %s, got %s", tc.wantCode, resp.Code)
			}
		})
	}
}

func TestUserMessageRequestValidation(t *testing.T) {
	if err := (&UserMessageRequest{Content: "hello there"}).Validate(); err != nil {
		t.Fatalf("expected valid message, got %v", err)
	}
	if err := (&UserMessageRequest{Content: "   "}).Validate(); err == nil {
		t.Fatalf("expected error for blank content")
	}
	long := strings.Repeat("a", maxMessageContentLength+1)
	if err := (&UserMessageRequest{Content: long}).Validate(); err == nil {
		t.Fatalf("expected error for oversized content")
	}
}

func TestEvaluationSummaryRoundTrip(t *testing.T) {
	eval := &Evaluation{SessionID: "s"}
	eval.SetSummary([]string{"clear"}, nil, []string{"practice", "review"})

	strengths, weaknesses, nextSteps := eval.Summary()
	if len(strengths) != 1 || strengths[0] != "clear" {
		t.Fatalf("strengths lost: %v", strengths)
	}
	if len(weaknesses) != 0 {
		t.Fatalf("nil list should decode empty, got %v", weaknesses)
	}
	if len(nextSteps) != 2 {
		t.Fatalf("next steps lost: %v", nextSteps)
	}
}
