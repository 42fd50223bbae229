package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/omniscope-hq/meeting-intel/internal/domain/entities"
	"github.com/omniscope-hq/meeting-intel/pkg/config"
)

// GroqClient is a minimal client for Groq chat completions, used for
// structured meeting analysis. It implements the analyzer's
// StructuredExtractor capability.
type GroqClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewGroqClient creates a Groq client using values from the provided config
func NewGroqClient(cfg *config.GroqConfig) *GroqClient {
	var apiKey, base, model string
	timeout := 30 * time.Second
	if cfg != nil {
		apiKey = cfg.APIKey
		base = cfg.BaseURL
		model = cfg.Model
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
	}
	if base == "" {
		base = "https://api.groq.com"
	}
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}

	return &GroqClient{
		apiKey:  apiKey,
		baseURL: base,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model          string              `json:"model,omitempty"`
	Messages       []map[string]string `json:"messages,omitempty"`
	Temperature    float64             `json:"temperature"`
	MaxTokens      int                 `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat     `json:"response_format,omitempty"`
}

// ResponseFormat requests strict JSON output from the model
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ExtractAnalysis sends the prompts to Groq in JSON mode and parses the
// response into an AnalysisResult. Any transport, status, or parse problem is
// returned as an error; the caller owns fallback behavior.
func (g *GroqClient) ExtractAnalysis(ctx context.Context, systemPrompt, userPrompt string) (*entities.AnalysisResult, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("groq API key is not configured")
	}

	reqBody := ChatRequest{
		Model: g.model,
		Messages: []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
		Temperature:    0.2,
		MaxTokens:      4000,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := g.baseURL + "/openai/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("groq returned status %d", resp.StatusCode)
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, err
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("empty response from groq")
	}

	return ParseAnalysisJSON(cr.Choices[0].Message.Content)
}

// ParseAnalysisJSON parses model output into an AnalysisResult. All fields of
// the schema are required: a structurally incomplete response is an error, not
// a partial result.
func ParseAnalysisJSON(content string) (*entities.AnalysisResult, error) {
	content = extractJSON(content)

	var result entities.AnalysisResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if result.ExecutiveSummary == "" {
		return nil, fmt.Errorf("missing executive_summary in response")
	}
	if result.MeetingType == "" {
		return nil, fmt.Errorf("missing meeting_type in response")
	}
	if result.StrategicHighlights == nil || result.Opportunities == nil ||
		result.Risks == nil || result.KeyQuotes == nil ||
		result.Sectors == nil || result.Jurisdictions == nil ||
		result.ActionItems == nil {
		return nil, fmt.Errorf("response is missing required list fields")
	}

	return &result, nil
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
