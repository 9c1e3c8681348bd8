// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/jeranaias/onboard-tui/internal/api"
	"github.com/jeranaias/onboard-tui/internal/config"
	"github.com/jeranaias/onboard-tui/internal/extract"
	"github.com/jeranaias/onboard-tui/internal/session"
	"github.com/jeranaias/onboard-tui/internal/ui/content"
	"github.com/jeranaias/onboard-tui/internal/ui/extractor"
	"github.com/jeranaias/onboard-tui/internal/ui/roadmap"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// setup isolates config and logs in a temp ONBOARD_HOME, starts a fake
// backend and captures stdout and stderr.
func setup(t *testing.T, register func(r chi.Router)) (Args, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("ONBOARD_HOME", home)
	t.Setenv("ONBOARD_API_BASE", "")
	config.ResetGlobalForTesting()
	cfg := config.Default()
	cfg.Log.File = filepath.Join(home, "onboard.log")
	config.SetGlobal(cfg)
	t.Cleanup(config.ResetGlobalForTesting)

	r := chi.NewRouter()
	if register != nil {
		register(r)
	}
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	var out, errOut bytes.Buffer
	oldOut, oldErr, oldIn := stdout, stderr, stdin
	stdout, stderr = &out, &errOut
	t.Cleanup(func() { stdout, stderr, stdin = oldOut, oldErr, oldIn })

	return Args{API: srv.URL, Options: map[string]string{}}, &out, &errOut
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		t.Errorf("decode request body: %v", err)
	}
	return body
}

// decodeResponse parses the single JSON document printed in --json mode.
func decodeResponse(t *testing.T, out *bytes.Buffer, data any) JSONResponse {
	t.Helper()
	resp := JSONResponse{Data: data}
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("stdout is not a JSON response: %v\n%s", err, out.String())
	}
	return resp
}

func noSuggestions(r chi.Router) {
	r.Post("/api/chatbot/suggestions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"suggestions": []string{}})
	})
}

// =============================================================================
// ARG PARSER TESTS (args.go)
// =============================================================================

func TestArgParser_BasicParsing(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		bools    []string
		wantSub  string
		validate func(*testing.T, *ArgParser)
	}{
		{
			name:    "simple subcommand",
			args:    []string{"email"},
			wantSub: "email",
		},
		{
			name:    "subcommand with flag",
			args:    []string{"questions", "--count", "10"},
			wantSub: "questions",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("count") != "10" {
					t.Errorf("Flag(count) = %q, want %q", p.Flag("count"), "10")
				}
			},
		},
		{
			name:    "flag with equals",
			args:    []string{"summary", "--type=key_points"},
			wantSub: "summary",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("type") != "key_points" {
					t.Errorf("Flag(type) = %q, want %q", p.Flag("type"), "key_points")
				}
			},
		},
		{
			name:    "declared boolean does not take the next argument",
			args:    []string{"--force", "cv.pdf"},
			bools:   []string{"force"},
			wantSub: "cv.pdf",
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("force") {
					t.Error("BoolFlag(force) should be true")
				}
			},
		},
		{
			name:    "trailing flag is boolean",
			args:    []string{"show", "--all"},
			wantSub: "show",
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("all") || !p.HasFlag("all") {
					t.Error("--all should be a boolean flag")
				}
			},
		},
		{
			name:    "dash is a value",
			args:    []string{"questions", "--file", "-"},
			wantSub: "questions",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("file") != "-" {
					t.Errorf("Flag(file) = %q, want -", p.Flag("file"))
				}
			},
		},
		{
			name:    "negative number is a value",
			args:    []string{"questions", "--count", "-3"},
			wantSub: "questions",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("count") != "-3" {
					t.Errorf("Flag(count) = %q, want -3", p.Flag("count"))
				}
			},
		},
		{
			name:    "double dash ends flags",
			args:    []string{"ask", "--", "--json", "là gì?"},
			wantSub: "ask",
			validate: func(t *testing.T, p *ArgParser) {
				if got := p.JoinPositional(1); got != "--json là gì?" {
					t.Errorf("JoinPositional(1) = %q", got)
				}
			},
		},
		{
			name:    "short and long spellings",
			args:    []string{"x", "-t", "diploma"},
			wantSub: "x",
			validate: func(t *testing.T, p *ArgParser) {
				if p.FlagAny("type", "t") != "diploma" {
					t.Errorf("FlagAny = %q, want diploma", p.FlagAny("type", "t"))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArgParser(tt.args, tt.bools...)
			if p.Subcommand() != tt.wantSub {
				t.Errorf("Subcommand() = %q, want %q", p.Subcommand(), tt.wantSub)
			}
			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestArgParser_FlagInt(t *testing.T) {
	p := NewArgParser([]string{"--count", "7", "--bad", "x"})
	if n, err := p.FlagInt("count"); err != nil || n != 7 {
		t.Errorf("FlagInt(count) = %d, %v", n, err)
	}
	if _, err := p.FlagInt("bad"); err == nil {
		t.Error("FlagInt(bad) should fail")
	}
	if _, err := p.FlagInt("missing"); err == nil {
		t.Error("FlagInt(missing) should fail")
	}
	if p.FlagOrDefault("missing", "5") != "5" {
		t.Error("FlagOrDefault should return the default")
	}
	if p.Positional(9) != "" || p.PositionalFrom(9) != nil {
		t.Error("out of range positionals should be empty")
	}
}

// =============================================================================
// PARSE TESTS (cli.go)
// =============================================================================

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		argv  []string
		want  Command
		check func(*testing.T, Args)
	}{
		{"no args starts the TUI", nil, CmdTUI, nil},
		{"tui with tab", []string{"tui", "--tab", "roadmap"}, CmdTUI, func(t *testing.T, a Args) {
			if a.Tab != "roadmap" {
				t.Errorf("Tab = %q", a.Tab)
			}
		}},
		{"ask joins words and reads globals", []string{"--api", "http://10.0.0.5:5001", "ask", "Giờ", "làm", "việc?", "--json"}, CmdAsk, func(t *testing.T, a Args) {
			if a.Query != "Giờ làm việc?" {
				t.Errorf("Query = %q", a.Query)
			}
			if a.API != "http://10.0.0.5:5001" || !a.JSON {
				t.Errorf("globals not parsed: %+v", a)
			}
		}},
		{"api with equals", []string{"--api=http://h:1", "-q", "-v", "chat"}, CmdChat, func(t *testing.T, a Args) {
			if a.API != "http://h:1" || !a.Quiet || !a.Verbose {
				t.Errorf("globals not parsed: %+v", a)
			}
		}},
		{"roadmap positional position", []string{"roadmap", "designer", "--level", "senior"}, CmdRoadmap, func(t *testing.T, a Args) {
			if a.Options["position"] != "designer" || a.Options["level"] != "senior" {
				t.Errorf("Options = %v", a.Options)
			}
		}},
		{"roadmap flag position", []string{"roadmap", "-p", "hr"}, CmdRoadmap, func(t *testing.T, a Args) {
			if a.Options["position"] != "hr" {
				t.Errorf("Options = %v", a.Options)
			}
		}},
		{"positions", []string{"positions"}, CmdPositions, nil},
		{"extract", []string{"extract", "cv.pdf", "-t", "id_card", "--export", "out.yaml"}, CmdExtract, func(t *testing.T, a Args) {
			if a.File != "cv.pdf" || a.Options["type"] != "id_card" || a.Options["export"] != "out.yaml" {
				t.Errorf("extract args = %+v", a)
			}
		}},
		{"content from stdin", []string{"content", "Questions", "--file", "-", "--count", "10"}, CmdContent, func(t *testing.T, a Args) {
			if a.Subcommand != "questions" || a.File != "-" || a.Options["count"] != "10" {
				t.Errorf("content args = %+v", a)
			}
		}},
		{"content email", []string{"content", "email", "--name", "Nguyễn Văn An", "--start", "2025-01-02"}, CmdContent, func(t *testing.T, a Args) {
			if a.Options["name"] != "Nguyễn Văn An" || a.Options["start"] != "2025-01-02" {
				t.Errorf("Options = %v", a.Options)
			}
		}},
		{"config value with dashes", []string{"config", "set", "tts.player_args", "-nodisp", "-autoexit"}, CmdConfig, func(t *testing.T, a Args) {
			if a.Subcommand != "set" || a.ConfigKey != "tts.player_args" || a.ConfigVal != "-nodisp -autoexit" {
				t.Errorf("config args = %+v", a)
			}
		}},
		{"version flag", []string{"--version"}, CmdVersion, nil},
		{"help", []string{"-h"}, CmdHelp, nil},
		{"unknown command", []string{"frobnicate"}, CmdHelp, func(t *testing.T, a Args) {
			if a.Subcommand != "frobnicate" {
				t.Errorf("Subcommand = %q", a.Subcommand)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := Parse(tt.argv)
			if cmd != tt.want {
				t.Fatalf("Parse(%v) = %v, want %v", tt.argv, cmd, tt.want)
			}
			if args.Options == nil {
				t.Error("Options should never be nil")
			}
			if tt.check != nil {
				tt.check(t, args)
			}
		})
	}
}

func TestHandleHelp(t *testing.T) {
	_, out, _ := setup(t, nil)

	if err := HandleHelp(Args{}); err != nil {
		t.Fatalf("HandleHelp: %v", err)
	}
	if !strings.Contains(out.String(), "onboard content questions") {
		t.Error("usage should list the content generators")
	}

	err := HandleHelp(Args{Subcommand: "frobnicate"})
	if GetExitCode(err) != ExitUsageError || !strings.Contains(err.Error(), "frobnicate") {
		t.Errorf("unknown command error = %v", err)
	}
}

func TestHandleVersion_JSON(t *testing.T) {
	_, out, _ := setup(t, nil)

	if err := HandleVersion(Args{JSON: true}); err != nil {
		t.Fatal(err)
	}
	var data VersionData
	resp := decodeResponse(t, out, &data)
	if !resp.Success || resp.Command != "version" || data.Version != Version {
		t.Errorf("version response = %+v, data = %+v", resp, data)
	}
}

// =============================================================================
// ERROR TESTS (errors.go)
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"validation", NewValidationError("level", "x", "bad"), ExitUsageError},
		{"usage", &UsageError{Message: "unknown"}, ExitUsageError},
		{"not found", &NotFoundError{Resource: "file", ID: "cv.pdf"}, ExitNotFoundError},
		{"unsupported file", fmt.Errorf("%w: data.zip", extract.ErrUnsupportedType), ExitUsageError},
		{"config", config.ValidateErrors{{Field: "api.timeout_secs", Message: "bad"}}, ExitConfigError},
		{"timeout", &api.ClientError{Type: api.ErrTypeTimeout}, ExitTimeoutError},
		{"unreachable", &api.ClientError{Type: api.ErrTypeConnection}, ExitNetworkError},
		{"bad request", &api.ClientError{Type: api.ErrTypeHTTPStatus, StatusCode: 400}, ExitUsageError},
		{"server error", &api.ClientError{Type: api.ErrTypeHTTPStatus, StatusCode: 500}, ExitBackendError},
		{"wrapped backend", NewCommandError("ask", "chat", "x", &api.ClientError{Type: api.ErrTypeTimeout}), ExitTimeoutError},
		{"generic", errors.New("boom"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestDisplayError_JSON(t *testing.T) {
	_, out, errOut := setup(t, nil)

	DisplayError(&NotFoundError{Resource: "file", ID: "cv.pdf"}, "extract", true)
	resp := decodeResponse(t, out, nil)
	if resp.Success || resp.Error == nil || resp.ErrorType != "not_found_error" || resp.Command != "extract" {
		t.Errorf("error response = %+v", resp)
	}
	if errOut.Len() != 0 {
		t.Error("JSON errors belong on stdout")
	}

	out.Reset()
	DisplayError(errors.New("boom"), "ask", false)
	if out.Len() != 0 || !strings.Contains(errOut.String(), "boom") {
		t.Errorf("text errors belong on stderr: out=%q err=%q", out, errOut)
	}
}

// =============================================================================
// ASK TESTS
// =============================================================================

func TestHandleAsk(t *testing.T) {
	var question string
	args, out, _ := setup(t, func(r chi.Router) {
		r.Post("/api/chatbot", func(w http.ResponseWriter, r *http.Request) {
			question, _ = decodeBody(t, r)["question"].(string)
			writeJSON(w, http.StatusOK, map[string]any{"response": "**Giờ làm việc** từ 8h30."})
		})
		noSuggestions(r)
	})
	args.Query = "abc xyz"

	if err := HandleAsk(args); err != nil {
		t.Fatalf("HandleAsk: %v", err)
	}
	if question != "abc xyz" {
		t.Errorf("question = %q", question)
	}
	got := out.String()
	if !strings.Contains(got, "**Giờ làm việc** từ 8h30.") {
		t.Errorf("piped output should be the raw markdown:\n%s", got)
	}
	if !strings.Contains(got, "Gợi ý:") || !strings.Contains(got, "[1] help") {
		t.Errorf("suggestions missing:\n%s", got)
	}
}

func TestHandleAsk_JSON(t *testing.T) {
	args, out, _ := setup(t, func(r chi.Router) {
		r.Post("/api/chatbot", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{})
		})
		noSuggestions(r)
	})
	args.Query = "abc xyz"
	args.JSON = true

	if err := HandleAsk(args); err != nil {
		t.Fatalf("HandleAsk: %v", err)
	}
	var data AskData
	resp := decodeResponse(t, out, &data)
	if !resp.Success || data.Response != session.ApologyMissing {
		t.Errorf("missing response field should be the apology: %+v", data)
	}
	if len(data.Suggestions) == 0 {
		t.Error("suggestions should be included")
	}
}

func TestHandleAsk_Errors(t *testing.T) {
	args, _, _ := setup(t, func(r chi.Router) {
		r.Post("/api/chatbot", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		noSuggestions(r)
	})

	if err := HandleAsk(args); GetExitCode(err) != ExitUsageError {
		t.Errorf("empty question: %v", err)
	}

	args.Query = "abc"
	err := HandleAsk(args)
	if GetExitCode(err) != ExitBackendError {
		t.Errorf("exit code = %d for %v", GetExitCode(err), err)
	}
	if err == nil || !strings.Contains(err.Error(), session.ApologyNetwork) {
		t.Errorf("error should carry the apology: %v", err)
	}
}

// =============================================================================
// ROADMAP TESTS
// =============================================================================

func TestHandleRoadmap(t *testing.T) {
	var body map[string]any
	args, out, _ := setup(t, func(r chi.Router) {
		r.Post("/api/roadmap/generate", func(w http.ResponseWriter, r *http.Request) {
			body = decodeBody(t, r)
			writeJSON(w, http.StatusOK, map[string]any{"roadmap": "## Tuần 1\n- Làm quen"})
		})
	})
	args.Options["position"] = "developer"

	if err := HandleRoadmap(args); err != nil {
		t.Fatalf("HandleRoadmap: %v", err)
	}
	if body["position"] != "developer" || body["experience_level"] != "fresher" {
		t.Errorf("request body = %v", body)
	}
	got := out.String()
	if !strings.Contains(got, "Lộ trình: developer · Fresher (0-1 năm)") || !strings.Contains(got, "## Tuần 1") {
		t.Errorf("output:\n%s", got)
	}
}

func TestHandleRoadmap_EmptyAndInvalid(t *testing.T) {
	args, out, _ := setup(t, func(r chi.Router) {
		r.Post("/api/roadmap/generate", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"roadmap": "  "})
		})
	})

	if err := HandleRoadmap(args); GetExitCode(err) != ExitUsageError {
		t.Errorf("missing position: %v", err)
	}

	args.Options["position"] = "hr"
	args.Options["level"] = "guru"
	if err := HandleRoadmap(args); GetExitCode(err) != ExitUsageError {
		t.Errorf("bad level: %v", err)
	}

	args.Options["level"] = "Senior"
	args.JSON = true
	if err := HandleRoadmap(args); err != nil {
		t.Fatal(err)
	}
	var data RoadmapData
	decodeResponse(t, out, &data)
	if data.Roadmap != roadmap.MissingText || data.Level != "senior" {
		t.Errorf("blank roadmap = %+v", data)
	}
}

func TestHandlePositions(t *testing.T) {
	args, out, _ := setup(t, func(r chi.Router) {
		r.Get("/api/roadmap/positions", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"positions": []string{"developer", "qa"}})
		})
	})

	if err := HandlePositions(args); err != nil {
		t.Fatal(err)
	}
	if out.String() != "developer\nqa\n" {
		t.Errorf("positions output = %q", out.String())
	}
}

func TestHandlePositions_Fallback(t *testing.T) {
	args, out, _ := setup(t, func(r chi.Router) {
		r.Get("/api/roadmap/positions", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
	})
	args.JSON = true

	if err := HandlePositions(args); err != nil {
		t.Fatal(err)
	}
	var data PositionsData
	decodeResponse(t, out, &data)
	if !data.Fallback || strings.Join(data.Positions, ",") != strings.Join(roadmap.FallbackPositions, ",") {
		t.Errorf("fallback = %+v", data)
	}
}

// =============================================================================
// EXTRACT TESTS
// =============================================================================

var cvData = map[string]any{
	"personal_info": map[string]any{
		"full_name":  "Nguyễn Văn An",
		"email":      "an@example.com",
		"birth_date": "5/3/1995",
	},
	"experience": []map[string]string{
		{"position": "Lead", "company": "B", "duration": "2020 - nay"},
	},
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestHandleExtract(t *testing.T) {
	var docType, filename string
	args, out, _ := setup(t, func(r chi.Router) {
		r.Post("/api/extract/upload", func(w http.ResponseWriter, r *http.Request) {
			docType = r.FormValue("document_type")
			if _, hdr, err := r.FormFile("file"); err == nil {
				filename = hdr.Filename
			}
			writeJSON(w, http.StatusOK, map[string]any{"result": map[string]any{"extracted_data": cvData}})
		})
	})
	args.File = writeFile(t, "cv.txt", "Nguyễn Văn An\nLead")
	exportPath := filepath.Join(t.TempDir(), "form.yaml")
	args.Options["export"] = exportPath

	if err := HandleExtract(args); err != nil {
		t.Fatalf("HandleExtract: %v", err)
	}
	if docType != "cv" || filename != "cv.txt" {
		t.Errorf("upload document_type=%q filename=%q", docType, filename)
	}

	got := out.String()
	for _, want := range []string{"cv.txt", "Họ và tên:", "Nguyễn Văn An", "1995-03-05", "Lead", "Đã lưu biểu mẫu"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	saved, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(saved), "full_name: Nguyễn Văn An") {
		t.Errorf("exported YAML:\n%s", saved)
	}
}

func TestHandleExtract_JSONWithType(t *testing.T) {
	var docType string
	args, out, _ := setup(t, func(r chi.Router) {
		r.Post("/api/extract/upload", func(w http.ResponseWriter, r *http.Request) {
			docType = r.FormValue("document_type")
			writeJSON(w, http.StatusOK, map[string]any{"result": map[string]any{"extracted_data": cvData}})
		})
	})
	args.File = writeFile(t, "bang.txt", "Bằng kỹ sư")
	args.Options["type"] = "Diploma"
	args.JSON = true

	if err := HandleExtract(args); err != nil {
		t.Fatal(err)
	}
	if docType != "diploma" {
		t.Errorf("document_type = %q", docType)
	}
	var data ExtractData
	decodeResponse(t, out, &data)
	if data.Form["full_name"] != "Nguyễn Văn An" || data.MIME != extract.MIMETXT || data.DocumentType != "diploma" {
		t.Errorf("extract data = %+v", data)
	}
}

func TestHandleExtract_Rejected(t *testing.T) {
	uploads := 0
	args, _, _ := setup(t, func(r chi.Router) {
		r.Post("/api/extract/upload", func(w http.ResponseWriter, r *http.Request) {
			uploads++
			writeJSON(w, http.StatusOK, map[string]any{"result": map[string]any{"error": "không đọc được"}})
		})
	})

	if err := HandleExtract(args); GetExitCode(err) != ExitUsageError {
		t.Errorf("missing file argument: %v", err)
	}

	args.File = filepath.Join(t.TempDir(), "missing.pdf")
	if err := HandleExtract(args); GetExitCode(err) != ExitNotFoundError {
		t.Errorf("missing file: %v", err)
	}

	args.File = writeFile(t, "data.zip", "PK\x03\x04")
	err := HandleExtract(args)
	if GetExitCode(err) != ExitUsageError || !strings.Contains(err.Error(), "data.zip") {
		t.Errorf("unsupported type: %v", err)
	}

	args.File = writeFile(t, "cv.txt", "cv")
	args.Options["type"] = "passport"
	if err := HandleExtract(args); GetExitCode(err) != ExitUsageError {
		t.Errorf("bad document type: %v", err)
	}
	if uploads != 0 {
		t.Errorf("rejected inputs must not upload, got %d", uploads)
	}

	delete(args.Options, "type")
	err = HandleExtract(args)
	if err == nil || !strings.Contains(err.Error(), extractor.RemoteErrorMessage("không đọc được")) {
		t.Errorf("remote error: %v", err)
	}
	if GetExitCode(err) != ExitBackendError {
		t.Errorf("remote error exit code = %d", GetExitCode(err))
	}
}

// =============================================================================
// CONTENT TESTS
// =============================================================================

func TestHandleContent_Email(t *testing.T) {
	var info map[string]any
	args, out, _ := setup(t, func(r chi.Router) {
		r.Post("/api/content/welcome-email", func(w http.ResponseWriter, r *http.Request) {
			info, _ = decodeBody(t, r)["employee_info"].(map[string]any)
			writeJSON(w, http.StatusOK, map[string]any{"email": map[string]string{
				"subject": "Chào mừng An",
				"body":    "Chào An,\nChúc mừng bạn.",
			}})
		})
	})
	args.Subcommand = "email"
	args.Options["name"] = "Nguyễn Văn An"
	args.Options["manager"] = "Chị Lan"

	if err := HandleContent(args); err != nil {
		t.Fatalf("HandleContent: %v", err)
	}
	if info["employee_name"] != "Nguyễn Văn An" || info["manager_name"] != "Chị Lan" {
		t.Errorf("employee_info = %v", info)
	}
	if !strings.Contains(out.String(), "## Chủ đề:\nChào mừng An") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestHandleContent_QuestionsFromStdin(t *testing.T) {
	var body map[string]any
	args, out, _ := setup(t, func(r chi.Router) {
		r.Post("/api/content/training-questions", func(w http.ResponseWriter, r *http.Request) {
			body = decodeBody(t, r)
			writeJSON(w, http.StatusOK, map[string]any{"questions": []map[string]any{{
				"question":       "Giờ vào làm?",
				"type":           "multiple_choice",
				"options":        []string{"8h", "9h"},
				"correct_answer": "A",
			}}})
		})
	})
	stdin = strings.NewReader("Nội quy: vào làm lúc 8h.\n")
	args.Subcommand = "questions"
	args.File = "-"
	args.Options["count"] = "50"
	args.Options["type"] = "multiple_choice"
	args.JSON = true

	if err := HandleContent(args); err != nil {
		t.Fatalf("HandleContent: %v", err)
	}
	if body["content"] != "Nội quy: vào làm lúc 8h." || body["num_questions"] != float64(content.MaxQuestions) {
		t.Errorf("request body = %v", body)
	}
	var data ContentData
	decodeResponse(t, out, &data)
	if data.Kind != "questions" || len(data.Questions) != 1 || data.Questions[0].Options[1] != "9h" {
		t.Errorf("content data = %+v", data)
	}
}

func TestHandleContent_SummaryFromFile(t *testing.T) {
	var body map[string]any
	args, out, _ := setup(t, func(r chi.Router) {
		r.Post("/api/content/summarize", func(w http.ResponseWriter, r *http.Request) {
			body = decodeBody(t, r)
			writeJSON(w, http.StatusOK, map[string]any{"summary": "- Điểm 1"})
		})
	})
	args.Subcommand = "summary"
	args.File = writeFile(t, "handbook.txt", "Sổ tay nhân viên")
	args.Options["type"] = "key_points"
	args.Quiet = true

	if err := HandleContent(args); err != nil {
		t.Fatal(err)
	}
	if body["document_text"] != "Sổ tay nhân viên" || body["summary_type"] != "key_points" {
		t.Errorf("request body = %v", body)
	}
	if out.String() != "- Điểm 1\n" {
		t.Errorf("quiet output = %q", out.String())
	}
}

func TestHandleContent_Validation(t *testing.T) {
	args, _, _ := setup(t, nil)

	tests := []struct {
		name    string
		sub     string
		options map[string]string
		file    string
		want    int
	}{
		{"no generator", "", nil, "", ExitUsageError},
		{"unknown generator", "poem", nil, "", ExitUsageError},
		{"email without name", "email", map[string]string{"company": "ACME"}, "", ExitUsageError},
		{"summary without text", "summary", nil, "", ExitUsageError},
		{"summary bad type", "summary", map[string]string{"text": "x", "type": "haiku"}, "", ExitUsageError},
		{"questions missing file", "questions", nil, filepath.Join(t.TempDir(), "none.txt"), ExitNotFoundError},
		{"checklist without position", "checklist", map[string]string{"department": "IT"}, "", ExitUsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := args
			a.Subcommand = tt.sub
			a.File = tt.file
			a.Options = map[string]string{}
			for k, v := range tt.options {
				a.Options[k] = v
			}
			if err := HandleContent(a); GetExitCode(err) != tt.want {
				t.Errorf("exit code = %d, want %d (%v)", GetExitCode(err), tt.want, err)
			}
		})
	}
}

func TestHandleContent_ChecklistFailure(t *testing.T) {
	args, _, _ := setup(t, func(r chi.Router) {
		r.Post("/api/content/onboarding-checklist", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
	})
	args.Subcommand = "checklist"
	args.Options["position"] = "Designer"

	err := HandleContent(args)
	if err == nil || !strings.Contains(err.Error(), content.ChecklistError) {
		t.Errorf("checklist failure: %v", err)
	}
}

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestHandleConfig_SetGetPath(t *testing.T) {
	args, out, _ := setup(t, nil)
	path, _ := config.ConfigPathTOML()

	args.Subcommand = "set"
	args.ConfigKey = "api.timeout_secs"
	args.ConfigVal = "30"
	if err := HandleConfig(args); err != nil {
		t.Fatalf("config set: %v", err)
	}
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.TimeoutSecs != 30 {
		t.Errorf("saved timeout = %d", cfg.API.TimeoutSecs)
	}

	args.ConfigVal = "abc"
	if err := HandleConfig(args); err == nil {
		t.Error("non-integer value should fail")
	}
	args.ConfigKey = "ui.default_tab"
	args.ConfigVal = "settings"
	if err := HandleConfig(args); GetExitCode(err) != ExitConfigError {
		t.Errorf("invalid tab: %v", err)
	}

	out.Reset()
	args.Subcommand = "path"
	if err := HandleConfig(args); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != path {
		t.Errorf("path = %q, want %q", out.String(), path)
	}

	out.Reset()
	args.Subcommand = "get"
	args.ConfigKey = "extract.export_format"
	if err := HandleConfig(args); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != "json" {
		t.Errorf("get = %q", out.String())
	}

	args.ConfigKey = "api.nope"
	if err := HandleConfig(args); GetExitCode(err) != ExitNotFoundError {
		t.Errorf("unknown key: %v", err)
	}

	args.Subcommand = "explode"
	if err := HandleConfig(args); GetExitCode(err) != ExitUsageError {
		t.Errorf("unknown subcommand: %v", err)
	}
}

func TestHandleConfig_ShowJSON(t *testing.T) {
	args, out, _ := setup(t, nil)
	args.JSON = true

	if err := HandleConfig(args); err != nil {
		t.Fatal(err)
	}
	var data ConfigData
	decodeResponse(t, out, &data)
	if data.Values["api.base_url"] != api.DefaultBaseURL || data.Values["ui.default_tab"] != "chat" {
		t.Errorf("config values = %v", data.Values)
	}
}

// =============================================================================
// CHAT REPL TESTS
// =============================================================================

// scriptReader feeds fixed lines to the REPL and then reports EOF.
type scriptReader struct {
	lines   []string
	history []string
}

func (s *scriptReader) Prompt(string) (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scriptReader) AppendHistory(item string) { s.history = append(s.history, item) }
func (s *scriptReader) Close() error              { return nil }

func TestChatREPL(t *testing.T) {
	var (
		mu        sync.Mutex
		questions []string
	)
	args, out, errOut := setup(t, func(r chi.Router) {
		r.Post("/api/chatbot", func(w http.ResponseWriter, r *http.Request) {
			q, _ := decodeBody(t, r)["question"].(string)
			mu.Lock()
			questions = append(questions, q)
			mu.Unlock()
			writeJSON(w, http.StatusOK, map[string]any{"response": "Trả lời: " + q})
		})
		noSuggestions(r)
	})

	env := NewEnv(args)
	defer env.Close()
	in := &scriptReader{lines: []string{"/suggest", "abc xyz", "  ", "/ask 1", "/ask 9", "/say", "/bogus", "/history", "quit", "never sent"}}
	repl := &chatREPL{
		chat:   session.New(env.Client, env.Client, env.Logger),
		in:     in,
		logger: env.Logger,
	}

	if err := repl.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if strings.Join(questions, "|") != "abc xyz|help" {
		t.Errorf("questions sent = %v", questions)
	}
	got := out.String()
	for _, want := range []string{"Xin chào!", "Onboarding Bot #2", "Trả lời: abc xyz", "Onboarding Bot #3", "Trả lời: help", "Bạn: abc xyz"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	errs := errOut.String()
	for _, want := range []string{"không có gợi ý số 9", "đọc văn bản đang tắt", "lệnh không hợp lệ: /bogus"} {
		if !strings.Contains(errs, want) {
			t.Errorf("stderr missing %q:\n%s", want, errs)
		}
	}
	if len(in.history) != 8 {
		t.Errorf("history = %v", in.history)
	}
}

// =============================================================================
// TERMINAL TESTS
// =============================================================================

func TestWrapText(t *testing.T) {
	got := WrapText("Chào mừng bạn đến với công ty", 16)
	for _, line := range strings.Split(got, "\n") {
		if len([]rune(line)) > 14 {
			t.Errorf("line %q is wider than 14 columns", line)
		}
	}
	if strings.ReplaceAll(got, "\n", " ") != "Chào mừng bạn đến với công ty" {
		t.Errorf("wrapping lost words: %q", got)
	}
	if WrapText("ngắn\n\ndòng", 40) != "ngắn\n\ndòng" {
		t.Error("short lines and blank lines should be kept")
	}
}
