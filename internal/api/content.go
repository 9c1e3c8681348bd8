// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
)

// =============================================================================
// CONTENT GENERATION
// =============================================================================

// WelcomeEmail generates a welcome email for a new hire.
func (c *Client) WelcomeEmail(ctx context.Context, info EmployeeInfo) (*Email, error) {
	var result welcomeEmailResponse
	if err := c.postJSON(ctx, "/api/content/welcome-email", welcomeEmailRequest{EmployeeInfo: info}, &result); err != nil {
		return nil, err
	}
	if result.Email == nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "response has no email"}
	}
	return result.Email, nil
}

// Summarize summarizes a document. An empty SummaryType means general.
func (c *Client) Summarize(ctx context.Context, req SummaryRequest) (string, error) {
	if req.SummaryType == "" {
		req.SummaryType = SummaryGeneral
	}

	var result summaryResponse
	if err := c.postJSON(ctx, "/api/content/summarize", req, &result); err != nil {
		return "", err
	}
	if result.Summary == nil {
		return "", &ClientError{Type: ErrTypeInvalidResponse, Message: "response has no summary"}
	}
	return result.Summary.String(), nil
}

// TrainingQuestions generates training questions from content. A missing or
// non-array questions field yields an empty slice.
func (c *Client) TrainingQuestions(ctx context.Context, req QuestionsRequest) ([]Question, error) {
	if req.QuestionType == "" {
		req.QuestionType = QuestionMixed
	}
	if req.NumQuestions <= 0 {
		req.NumQuestions = 5
	}

	var result questionsResponse
	if err := c.postJSON(ctx, "/api/content/training-questions", req, &result); err != nil {
		return nil, err
	}

	var questions []Question
	if !decodeArray(result.Questions, &questions) {
		return []Question{}, nil
	}
	return questions, nil
}

// OnboardingChecklist generates a phased checklist. A missing or non-array
// checklist field yields an empty slice, which the UI shows as "no data".
func (c *Client) OnboardingChecklist(ctx context.Context, req ChecklistRequest) ([]ChecklistPhase, error) {
	var result checklistResponse
	if err := c.postJSON(ctx, "/api/content/onboarding-checklist", req, &result); err != nil {
		return nil, err
	}

	var phases []ChecklistPhase
	if !decodeArray(result.Checklist, &phases) {
		return []ChecklistPhase{}, nil
	}
	return phases, nil
}

// decodeArray decodes raw into out when raw is a JSON array.
func decodeArray(raw json.RawMessage, out any) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}
