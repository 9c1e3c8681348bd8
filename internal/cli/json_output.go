// json_output.go - JSON output support for scripting.
//
// Every command accepts --json and then prints exactly one JSONResponse
// on stdout; human-readable progress goes to stderr.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jeranaias/onboard-tui/internal/api"
	"github.com/jeranaias/onboard-tui/internal/extract"
)

// JSONResponse is the standardized response format for all CLI commands.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// ErrorType classifies Error (validation_error, backend_timeout, ...)
	ErrorType string `json:"error_type,omitempty"`

	// Timestamp is the ISO8601 timestamp when the response was generated
	Timestamp string `json:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Error:     nil,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Data:      nil,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print outputs the JSON response to stdout.
func (r *JSONResponse) Print() error {
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// String returns the JSON response as a string.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"failed to marshal response: %s","timestamp":"%s"}`,
			err.Error(), time.Now().UTC().Format(time.RFC3339))
	}
	return string(data)
}

// StderrPrint prints a message to stderr (for human-readable output in JSON mode).
func StderrPrint(format string, args ...interface{}) {
	fmt.Fprintf(stderr, format, args...)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// AskData is returned by the ask command.
type AskData struct {
	Question    string   `json:"question"`
	Response    string   `json:"response"`
	Suggestions []string `json:"suggestions"`
}

// RoadmapData is returned by the roadmap command.
type RoadmapData struct {
	Position string `json:"position"`
	Level    string `json:"level"`
	Roadmap  string `json:"roadmap"`
}

// PositionsData is returned by the positions command.
type PositionsData struct {
	Positions []string `json:"positions"`
	Fallback  bool     `json:"fallback"`
}

// ExtractData is returned by the extract command.
type ExtractData struct {
	File          string             `json:"file"`
	MIME          string             `json:"mime"`
	Size          int64              `json:"size"`
	DocumentType  string             `json:"document_type"`
	ExtractedData *api.ExtractedData `json:"extracted_data"`
	Form          extract.Form       `json:"form"`
	ExportedTo    string             `json:"exported_to,omitempty"`
}

// ContentData is returned by the content command.
type ContentData struct {
	Kind      string               `json:"kind"`
	Email     *api.Email           `json:"email,omitempty"`
	Summary   string               `json:"summary,omitempty"`
	Questions []api.Question       `json:"questions,omitempty"`
	Checklist []api.ChecklistPhase `json:"checklist,omitempty"`
}

// ConfigData is returned by config show, get and path.
type ConfigData struct {
	Path   string            `json:"path,omitempty"`
	Values map[string]string `json:"values,omitempty"`
}
