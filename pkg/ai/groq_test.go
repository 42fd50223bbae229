package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/omniscope-hq/meeting-intel/pkg/config"
)

const validAnalysisJSON = `{
	"executive_summary": "Discussed the co-investment.",
	"strategic_highlights": ["Fund II"],
	"opportunities": [],
	"risks": [],
	"key_quotes": [],
	"sectors": ["Private Equity"],
	"jurisdictions": ["UAE"],
	"meeting_type": "Deal Review",
	"action_items": [{"title": "Send the deck", "description": "", "assigned_to": "Hassan", "priority": "high", "due_date": "2026-03-03"}]
}`

func chatCompletionResponse(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	}
}

func TestExtractAnalysis_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openai/v1/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header %q", got)
		}
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("invalid request body: %v", err)
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
			t.Fatalf("expected json_object response format, got %+v", req.ResponseFormat)
		}
		json.NewEncoder(w).Encode(chatCompletionResponse(validAnalysisJSON))
	}))
	defer ts.Close()

	client := NewGroqClient(&config.GroqConfig{APIKey: "test-key", BaseURL: ts.URL})

	result, err := client.ExtractAnalysis(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("ExtractAnalysis failed: %v", err)
	}
	if result.ExecutiveSummary != "Discussed the co-investment." {
		t.Errorf("unexpected summary %q", result.ExecutiveSummary)
	}
	if len(result.ActionItems) != 1 || result.ActionItems[0].AssignedTo != "Hassan" {
		t.Errorf("unexpected action items %+v", result.ActionItems)
	}
}

func TestExtractAnalysis_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewGroqClient(&config.GroqConfig{APIKey: "test-key", BaseURL: ts.URL})

	if _, err := client.ExtractAnalysis(context.Background(), "system", "user"); err == nil {
		t.Fatal("expected error on 500 response")
	}
}

func TestExtractAnalysis_MissingAPIKey(t *testing.T) {
	client := NewGroqClient(&config.GroqConfig{})

	if _, err := client.ExtractAnalysis(context.Background(), "system", "user"); err == nil {
		t.Fatal("expected error when API key is not configured")
	}
}

func TestParseAnalysisJSON_MarkdownFences(t *testing.T) {
	for _, wrapped := range []string{
		"```json\n" + validAnalysisJSON + "\n```",
		"```\n" + validAnalysisJSON + "\n```",
		validAnalysisJSON,
	} {
		result, err := ParseAnalysisJSON(wrapped)
		if err != nil {
			t.Fatalf("ParseAnalysisJSON failed: %v", err)
		}
		if result.MeetingType != "Deal Review" {
			t.Errorf("unexpected meeting type %q", result.MeetingType)
		}
	}
}

func TestParseAnalysisJSON_IncompleteResponse(t *testing.T) {
	cases := map[string]string{
		"not json":                `analysis complete`,
		"missing summary":         `{"meeting_type": "General", "strategic_highlights": [], "opportunities": [], "risks": [], "key_quotes": [], "sectors": [], "jurisdictions": [], "action_items": []}`,
		"missing meeting type":    `{"executive_summary": "x", "strategic_highlights": [], "opportunities": [], "risks": [], "key_quotes": [], "sectors": [], "jurisdictions": [], "action_items": []}`,
		"missing list fields":     `{"executive_summary": "x", "meeting_type": "General"}`,
		"null list is incomplete": `{"executive_summary": "x", "meeting_type": "General", "strategic_highlights": null, "opportunities": [], "risks": [], "key_quotes": [], "sectors": [], "jurisdictions": [], "action_items": []}`,
	}

	for name, content := range cases {
		if _, err := ParseAnalysisJSON(content); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestExtractJSON(t *testing.T) {
	in := "```json\n{\"a\": 1}\n```"
	if got := extractJSON(in); strings.Contains(got, "```") {
		t.Errorf("fences not stripped: %q", got)
	}
}
