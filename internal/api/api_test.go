// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer starts a backend fake routed with chi and returns a client
// pointed at it.
func newTestServer(t *testing.T, register func(r chi.Router)) *Client {
	t.Helper()
	r := chi.NewRouter()
	register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return NewClientWithConfig(&ClientConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestNewClientWithConfig_Defaults(t *testing.T) {
	c := NewClientWithConfig(&ClientConfig{})
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, 60*time.Second, c.httpClient.Timeout)
	assert.Equal(t, 180*time.Second, c.uploadClient.Timeout)

	c.SetBaseURL("http://10.0.0.5:5001/")
	assert.Equal(t, "http://10.0.0.5:5001", c.BaseURL())
}

// =============================================================================
// CHAT TESTS
// =============================================================================

func TestChat_SendsQuestionAndRequestID(t *testing.T) {
	ids := make(chan string, 1)
	c := newTestServer(t, func(r chi.Router) {
		r.Post("/api/chatbot", func(w http.ResponseWriter, r *http.Request) {
			ids <- r.Header.Get("X-Request-ID")
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req ChatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "help", req.Question)
			writeJSON(w, http.StatusOK, map[string]string{"response": "Hướng dẫn sử dụng"})
		})
	})

	resp, err := c.Chat(context.Background(), "help")
	require.NoError(t, err)
	require.NotNil(t, resp.Response)
	assert.Equal(t, "Hướng dẫn sử dụng", *resp.Response)
	assert.Len(t, <-ids, 36)
}

func TestChat_MissingResponseField(t *testing.T) {
	c := newTestServer(t, func(r chi.Router) {
		r.Post("/api/chatbot", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"other": "x"})
		})
	})

	resp, err := c.Chat(context.Background(), "help")
	require.NoError(t, err)
	assert.Nil(t, resp.Response)
}

func TestChat_ErrorStatuses(t *testing.T) {
	c := newTestServer(t, func(r chi.Router) {
		r.Post("/api/chatbot", func(w http.ResponseWriter, r *http.Request) {
			var req ChatRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Question == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No query provided"})
				return
			}
			http.Error(w, "boom", http.StatusInternalServerError)
		})
	})

	_, err := c.Chat(context.Background(), "help")
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusInternalServerError))
	var ce *ClientError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrTypeHTTPStatus, ce.Type)

	_, err = c.Chat(context.Background(), "")
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrTypeRemote, ce.Type)
	assert.Equal(t, "No query provided", ce.Message)
}

func TestChat_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := NewClientWithConfig(&ClientConfig{BaseURL: base, Timeout: 2 * time.Second})
	_, err := c.Chat(context.Background(), "help")
	require.Error(t, err)
	assert.True(t, IsUnreachable(err))
}

func TestChat_Timeout(t *testing.T) {
	c := newTestServer(t, func(r chi.Router) {
		r.Post("/api/chatbot", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		})
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Chat(ctx, "help")
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
}

// =============================================================================
// SUGGESTION TESTS
// =============================================================================

func TestSuggestions_MixedEntries(t *testing.T) {
	c := newTestServer(t, func(r chi.Router) {
		r.Post("/api/chatbot/suggestions", func(w http.ResponseWriter, r *http.Request) {
			var req SuggestionsRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, []string{"email"}, req.History)
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"suggestions": ["[\"A\", \"B\"]", ["C", 4, "D"], 7, {"x": 1}, "E"]}`)
		})
	})

	entries, err := c.Suggestions(context.Background(), []string{"email"})
	require.NoError(t, err)
	require.Len(t, entries, 5)

	assert.Equal(t, `["A", "B"]`, entries[0].Text)
	assert.False(t, entries[0].IsList)

	assert.True(t, entries[1].IsList)
	assert.Equal(t, []string{"C", "D"}, entries[1].Items)

	assert.Equal(t, SuggestionEntry{}, entries[2])
	assert.Equal(t, SuggestionEntry{}, entries[3])
	assert.Equal(t, "E", entries[4].Text)
}

func TestSuggestions_NonArrayIsEmpty(t *testing.T) {
	c := newTestServer(t, func(r chi.Router) {
		r.Post("/api/chatbot/suggestions", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"suggestions": "not a list"})
		})
	})

	entries, err := c.Suggestions(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// =============================================================================
// TTS TESTS
// =============================================================================

func TestSynthesize_ReturnsAudio(t *testing.T) {
	wav := []byte("RIFF\x24\x00\x00\x00WAVEfmt ")
	c := newTestServer(t, func(r chi.Router) {
		r.Post("/api/tts", func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Xin chào", body["text"])
			w.Header().Set("Content-Type", "audio/wav")
			w.Write(wav)
		})
	})

	audio, err := c.Synthesize(context.Background(), "Xin chào")
	require.NoError(t, err)
	assert.Equal(t, wav, audio)
}

// =============================================================================
// ROADMAP AND CONTENT TESTS
// =============================================================================

func TestRoadmapEndpoints(t *testing.T) {
	c := newTestServer(t, func(r chi.Router) {
		r.Get("/api/roadmap/positions", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"positions": []string{"developer", "tester"}})
		})
		r.Post("/api/roadmap/generate", func(w http.ResponseWriter, r *http.Request) {
			var req RoadmapRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, RoadmapRequest{Position: "developer", ExperienceLevel: "junior"}, req)
			writeJSON(w, http.StatusOK, map[string]string{"roadmap": "# Tuần 1"})
		})
	})

	positions, err := c.Positions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"developer", "tester"}, positions)

	resp, err := c.GenerateRoadmap(context.Background(), "developer", "junior")
	require.NoError(t, err)
	require.NotNil(t, resp.Roadmap)
	assert.Equal(t, "# Tuần 1", *resp.Roadmap)
}

func TestContentEndpoints(t *testing.T) {
	c := newTestServer(t, func(r chi.Router) {
		r.Route("/api/content", func(r chi.Router) {
			r.Post("/welcome-email", func(w http.ResponseWriter, r *http.Request) {
				var req welcomeEmailRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "Lan", req.EmployeeInfo.EmployeeName)
				writeJSON(w, http.StatusOK, map[string]any{"email": map[string]string{"subject": "Chào mừng", "body": "Xin chào Lan"}})
			})
			r.Post("/summarize", func(w http.ResponseWriter, r *http.Request) {
				var req SummaryRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, SummaryGeneral, req.SummaryType)
				writeJSON(w, http.StatusOK, map[string]string{"summary": "Tóm tắt"})
			})
			r.Post("/training-questions", func(w http.ResponseWriter, r *http.Request) {
				var req QuestionsRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, 5, req.NumQuestions)
				assert.Equal(t, QuestionMixed, req.QuestionType)
				io.WriteString(w, `{"questions":[{"question":"Q1","type":"true_false","correct_answer":true},{"question":"Q2","type":"multiple_choice","options":["x","y"],"correct_answer":"A"}]}`)
			})
			r.Post("/onboarding-checklist", func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, `{"checklist":[{"timeline":"Tuần 1","tasks":[{"task":"Nhận laptop","priority":"High","responsible":"IT","estimated_time":"1h"}]}]}`)
			})
		})
	})
	ctx := context.Background()

	email, err := c.WelcomeEmail(ctx, EmployeeInfo{EmployeeName: "Lan"})
	require.NoError(t, err)
	assert.Equal(t, "Chào mừng\n\nXin chào Lan", email.Plain())

	summary, err := c.Summarize(ctx, SummaryRequest{DocumentText: "..."})
	require.NoError(t, err)
	assert.Equal(t, "Tóm tắt", summary)

	questions, err := c.TrainingQuestions(ctx, QuestionsRequest{Content: "..."})
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, Text("true"), questions[0].CorrectAnswer)
	assert.Equal(t, []Text{"x", "y"}, questions[1].Options)

	phases, err := c.OnboardingChecklist(ctx, ChecklistRequest{Position: "dev"})
	require.NoError(t, err)
	require.Len(t, phases, 1)
	assert.Equal(t, Text("Tuần 1"), phases[0].Timeline)
	assert.Equal(t, Text(PriorityHigh), phases[0].Tasks[0].Priority)
}

func TestChecklist_NonArray(t *testing.T) {
	c := newTestServer(t, func(r chi.Router) {
		r.Post("/api/content/onboarding-checklist", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"checklist":"Tuần 1: nhận laptop"}`)
		})
	})

	phases, err := c.OnboardingChecklist(context.Background(), ChecklistRequest{})
	require.NoError(t, err)
	assert.Empty(t, phases)
}

// =============================================================================
// EXTRACTION TESTS
// =============================================================================

func TestUpload_MultipartAndDecode(t *testing.T) {
	c := newTestServer(t, func(r chi.Router) {
		r.Post("/api/extract/upload", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			assert.Equal(t, "cv", r.FormValue("document_type"))

			f, hdr, err := r.FormFile("file")
			require.NoError(t, err)
			defer f.Close()
			assert.Equal(t, "cv.pdf", hdr.Filename)
			assert.Equal(t, "application/pdf", hdr.Header.Get("Content-Type"))
			data, _ := io.ReadAll(f)
			assert.Equal(t, "%PDF-1.4", string(data))

			io.WriteString(w, `{"result":{"extracted_data":{
				"personal_info":{"full_name":"Ngoc","phone":912345678,"birth_date":"3/7/1998"},
				"experience":[{"position":"QA","company":"X","duration":"2019-2021"}],
				"skills":{"technical":["Go"],"languages":["English"]},
				"summary":"extra key"}}}`)
		})
	})

	res, err := c.Upload(context.Background(), "/tmp/cv.pdf", "application/pdf", strings.NewReader("%PDF-1.4"), "")
	require.NoError(t, err)
	require.False(t, res.Failed())
	require.NotNil(t, res.ExtractedData)

	d := res.ExtractedData
	assert.Equal(t, Text("Ngoc"), d.PersonalInfo.FullName)
	assert.Equal(t, Text("912345678"), d.PersonalInfo.Phone)
	assert.Equal(t, Text("QA"), d.Experience[0].Position)
	assert.Equal(t, "extra key", d.Raw["summary"])

	// Raw keys survive re-encoding.
	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"summary":"extra key"`)
}

func TestUpload_EmbeddedError(t *testing.T) {
	c := newTestServer(t, func(r chi.Router) {
		r.Post("/api/extract/upload", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"result":{"error":"Không đọc được tệp"}}`)
		})
	})

	res, err := c.Upload(context.Background(), "cv.txt", "text/plain", strings.NewReader("x"), DocumentCV)
	require.NoError(t, err)
	assert.True(t, res.Failed())
	assert.Equal(t, "Không đọc được tệp", res.Error)
	assert.Nil(t, res.ExtractedData)
}

func TestAutoFill(t *testing.T) {
	c := newTestServer(t, func(r chi.Router) {
		r.Post("/api/extract/auto-fill", func(w http.ResponseWriter, r *http.Request) {
			var body map[string]map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Contains(t, body["extracted_info"], "personal_info")
			io.WriteString(w, `{"form_data":{"full_name":"Ngoc","phone":912345678,"note":null}}`)
		})
	})

	var data ExtractedData
	require.NoError(t, json.Unmarshal([]byte(`{"personal_info":{"full_name":"Ngoc"}}`), &data))

	form, err := c.AutoFill(context.Background(), &data)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"full_name": "Ngoc", "phone": "912345678", "note": ""}, form)
}
