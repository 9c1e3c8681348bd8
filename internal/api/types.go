// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"encoding/json"
	"strings"
)

// =============================================================================
// TOLERANT SCALARS
// =============================================================================

// Text is a string field that also accepts numbers, booleans and null.
// Model output is not strict about JSON types (a phone number may arrive as
// a number, a correct answer as a boolean).
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	*t = Text(b)
	return nil
}

// String returns the text.
func (t Text) String() string {
	return string(t)
}

// =============================================================================
// CHAT
// =============================================================================

// ChatRequest is the body of POST /api/chatbot.
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse is the answer of POST /api/chatbot. Response is nil when the
// backend omitted the field.
type ChatResponse struct {
	Response *string `json:"response"`
}

// SuggestionsRequest is the body of POST /api/chatbot/suggestions.
type SuggestionsRequest struct {
	History []string `json:"history"`
}

// SuggestionEntry is one element of the suggestions array. The backend is a
// language model, so an element may be a string or a nested array of
// strings. Anything else decodes to an empty entry.
type SuggestionEntry struct {
	Text   string
	Items  []string
	IsList bool
}

// UnmarshalJSON implements json.Unmarshaler. It never fails.
func (e *SuggestionEntry) UnmarshalJSON(b []byte) error {
	*e = SuggestionEntry{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '"':
		_ = json.Unmarshal(b, &e.Text)
	case '[':
		var raw []json.RawMessage
		if json.Unmarshal(b, &raw) != nil {
			return nil
		}
		e.IsList = true
		for _, item := range raw {
			var s string
			if json.Unmarshal(item, &s) == nil {
				e.Items = append(e.Items, s)
			}
		}
	}
	return nil
}

type suggestionsResponse struct {
	Suggestions json.RawMessage `json:"suggestions"`
}

// =============================================================================
// ROADMAP
// =============================================================================

// RoadmapRequest is the body of POST /api/roadmap/generate.
type RoadmapRequest struct {
	Position        string `json:"position"`
	ExperienceLevel string `json:"experience_level"`
}

// RoadmapResponse is the answer of POST /api/roadmap/generate.
type RoadmapResponse struct {
	Roadmap *string `json:"roadmap"`
}

type positionsResponse struct {
	Positions []string `json:"positions"`
}

// =============================================================================
// CONTENT
// =============================================================================

// EmployeeInfo is the payload of the welcome email request.
type EmployeeInfo struct {
	EmployeeName string `json:"employee_name"`
	CompanyName  string `json:"company_name"`
	Position     string `json:"position"`
	StartDate    string `json:"start_date"`
	Department   string `json:"department"`
	ManagerName  string `json:"manager_name"`
}

type welcomeEmailRequest struct {
	EmployeeInfo EmployeeInfo `json:"employee_info"`
}

// Email is a generated welcome email.
type Email struct {
	Subject Text `json:"subject"`
	Body    Text `json:"body"`
}

// Plain renders the email the way it is copied to the clipboard.
func (e Email) Plain() string {
	return string(e.Subject) + "\n\n" + string(e.Body)
}

type welcomeEmailResponse struct {
	Email *Email `json:"email"`
}

// Summary types accepted by the summarize endpoint.
const (
	SummaryGeneral     = "general"
	SummaryKeyPoints   = "key_points"
	SummaryActionItems = "action_items"
)

// SummaryRequest is the body of POST /api/content/summarize.
type SummaryRequest struct {
	DocumentText string `json:"document_text"`
	SummaryType  string `json:"summary_type"`
}

type summaryResponse struct {
	Summary *Text `json:"summary"`
}

// Question types accepted by the training questions endpoint.
const (
	QuestionMixed          = "mixed"
	QuestionMultipleChoice = "multiple_choice"
	QuestionTrueFalse      = "true_false"
)

// QuestionsRequest is the body of POST /api/content/training-questions.
type QuestionsRequest struct {
	Content      string `json:"content"`
	QuestionType string `json:"question_type"`
	NumQuestions int    `json:"num_questions"`
}

// Question is one generated training question.
type Question struct {
	Question      Text   `json:"question"`
	Type          Text   `json:"type"`
	Options       []Text `json:"options,omitempty"`
	CorrectAnswer Text   `json:"correct_answer,omitempty"`
	Explanation   Text   `json:"explanation,omitempty"`
}

type questionsResponse struct {
	Questions json.RawMessage `json:"questions"`
}

// Task priorities used by checklists.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// ChecklistRequest is the body of POST /api/content/onboarding-checklist.
type ChecklistRequest struct {
	Position   string `json:"position"`
	Department string `json:"department"`
}

// ChecklistTask is one task inside a checklist phase.
type ChecklistTask struct {
	Task          Text `json:"task"`
	Description   Text `json:"description"`
	Priority      Text `json:"priority"`
	Responsible   Text `json:"responsible"`
	EstimatedTime Text `json:"estimated_time"`
}

// ChecklistPhase groups tasks under a timeline label such as "Tuần 1".
type ChecklistPhase struct {
	Timeline Text            `json:"timeline"`
	Tasks    []ChecklistTask `json:"tasks"`
}

type checklistResponse struct {
	Checklist json.RawMessage `json:"checklist"`
}

// =============================================================================
// EXTRACTION
// =============================================================================

// Document types accepted by the upload endpoint.
const (
	DocumentCV      = "cv"
	DocumentIDCard  = "id_card"
	DocumentDiploma = "diploma"
	DocumentOther   = "other"
)

// DocumentTypes lists the accepted document types in display order.
var DocumentTypes = []string{DocumentCV, DocumentIDCard, DocumentDiploma, DocumentOther}

// PersonalInfo is the personal_info block of extracted CV data.
type PersonalInfo struct {
	FullName  Text `json:"full_name"`
	Email     Text `json:"email"`
	Phone     Text `json:"phone"`
	Address   Text `json:"address"`
	BirthDate Text `json:"birth_date"`
	IDNumber  Text `json:"id_number"`
}

// Education is one education entry.
type Education struct {
	Degree Text `json:"degree"`
	School Text `json:"school"`
	Year   Text `json:"year,omitempty"`
}

// Experience is one work experience entry.
type Experience struct {
	Position Text `json:"position"`
	Company  Text `json:"company"`
	Duration Text `json:"duration"`
}

// Skills lists technical and language skills.
type Skills struct {
	Technical []Text `json:"technical"`
	Languages []Text `json:"languages"`
}

// ExtractedData is the extracted_data object of an upload result. The typed
// fields cover what the employee form needs; Raw keeps every key the
// backend sent, for display and for the auto-fill round trip.
type ExtractedData struct {
	PersonalInfo PersonalInfo `json:"personal_info"`
	Education    []Education  `json:"education"`
	Experience   []Experience `json:"experience"`
	Skills       Skills       `json:"skills"`

	Raw map[string]any `json:"-"`
}

// UnmarshalJSON decodes both the typed view and the raw map. Typed blocks
// with an unexpected shape are left empty instead of failing the decode.
func (d *ExtractedData) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	out := ExtractedData{}
	if v, ok := raw["personal_info"]; ok {
		_ = json.Unmarshal(v, &out.PersonalInfo)
	}
	if v, ok := raw["education"]; ok {
		_ = json.Unmarshal(v, &out.Education)
	}
	if v, ok := raw["experience"]; ok {
		_ = json.Unmarshal(v, &out.Experience)
	}
	if v, ok := raw["skills"]; ok {
		_ = json.Unmarshal(v, &out.Skills)
	}

	if err := json.Unmarshal(b, &out.Raw); err != nil {
		return err
	}
	*d = out
	return nil
}

// MarshalJSON re-emits the raw map when present so nothing the backend sent
// is lost on the auto-fill round trip.
func (d ExtractedData) MarshalJSON() ([]byte, error) {
	if d.Raw != nil {
		return json.Marshal(d.Raw)
	}
	type plain ExtractedData
	return json.Marshal(plain(d))
}

// UploadResult is the result object of POST /api/extract/upload. Exactly one
// of ExtractedData and Error is meaningful.
type UploadResult struct {
	ExtractedData *ExtractedData `json:"extracted_data,omitempty"`
	Error         string         `json:"error,omitempty"`
}

// Failed reports whether the backend reported an extraction error.
func (r *UploadResult) Failed() bool {
	return strings.TrimSpace(r.Error) != ""
}

type uploadResponse struct {
	Result *UploadResult `json:"result"`
}

type autoFillRequest struct {
	ExtractedInfo *ExtractedData `json:"extracted_info"`
}

type autoFillResponse struct {
	FormData map[string]Text `json:"form_data"`
}
