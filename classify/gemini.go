package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// ============================================================================
// GEMINI STRATEGY — Delegated classification via Google Gemini
// ============================================================================
// Sends a constrained prompt instructing the model to emit ONLY a JSON
// object matching the TaskIntent shape. Any transport error, non-200
// status, or parse failure falls through to the deterministic keyword
// strategy — the delegated path can only improve on the fallback, never
// fail a task.
//
// This is the only file in the package that makes external calls.
// ============================================================================

// Config holds delegated-classifier configuration.
type Config struct {
	APIKey   string // provider API key
	Model    string // model name (empty = default)
	Endpoint string // API endpoint override (empty = default)
	Timeout  time.Duration
}

// DefaultGeminiConfig returns a Config with sensible Gemini defaults.
func DefaultGeminiConfig(apiKey string) Config {
	return Config{
		APIKey:   apiKey,
		Model:    "gemini-2.0-flash",
		Endpoint: "https://generativelanguage.googleapis.com/v1beta/models",
		Timeout:  30 * time.Second,
	}
}

// Gemini is the delegated classifier.
type Gemini struct {
	config   Config
	client   *http.Client
	fallback Keyword
}

// NewGemini creates a delegated classifier backed by the Gemini API.
func NewGemini(cfg Config) *Gemini {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://generativelanguage.googleapis.com/v1beta/models"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Gemini{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Classify asks Gemini for a TaskIntent and falls back to the keyword
// strategy on any failure. The returned error is always nil by contract;
// degraded classification is signalled only through log output.
func (g *Gemini) Classify(ctx context.Context, task string) (*TaskIntent, error) {
	response, err := g.callGemini(ctx, buildPrompt(task))
	if err != nil {
		log.Printf("classify: delegated call failed, using keyword fallback: %v", err)
		return g.fallback.Classify(ctx, task)
	}

	intent, err := parseIntent(response)
	if err != nil {
		cerr := &ClassificationError{Reason: "malformed model output", Err: err}
		log.Printf("classify: %v — using keyword fallback", cerr)
		return g.fallback.Classify(ctx, task)
	}

	// The model is unreliable at verbatim question extraction; the
	// deterministic numbered-list pattern fills the gap.
	if len(intent.Questions) == 0 {
		intent.Questions = ExtractQuestions(task)
	}

	log.Printf("classify: source=%s analysis=%s viz=%t", intent.DataSource, intent.AnalysisType, intent.VisualizationNeeded)
	return intent, nil
}

// ============================================================================
// GEMINI API CALL
// ============================================================================

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func (g *Gemini) callGemini(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/%s:generateContent?key=%s",
		g.config.Endpoint, g.config.Model, g.config.APIKey)

	reqBody := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{{Text: prompt}},
		}},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Gemini API returned %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("failed to parse Gemini response: %w", err)
	}

	if geminiResp.Error != nil {
		return "", fmt.Errorf("Gemini error %d: %s", geminiResp.Error.Code, geminiResp.Error.Message)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("Gemini returned empty response")
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
