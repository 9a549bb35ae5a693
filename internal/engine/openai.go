package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"npcnerd/internal/logging"
)

// OpenAIConfig holds configuration for the OpenAI-style client.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration

	// Models maps tiers to model names. Missing tiers fall back to defaults.
	Models map[ModelTier]string
}

// DefaultOpenAIConfig returns sensible defaults for the legacy completion
// and classification endpoints.
func DefaultOpenAIConfig(apiKey string) OpenAIConfig {
	return OpenAIConfig{
		APIKey:  apiKey,
		BaseURL: "https://api.openai.com/v1",
		Timeout: 60 * time.Second,
		Models: map[ModelTier]string{
			TierFast:     "ada",
			TierStandard: "curie",
			TierPremium:  "davinci",
		},
	}
}

// OpenAIClient implements CompletionEngine and ClassificationEngine against
// an OpenAI-compatible HTTP API.
type OpenAIClient struct {
	apiKey      string
	baseURL     string
	models      map[ModelTier]string
	httpClient  *http.Client
	mu          sync.Mutex
	lastRequest time.Time
}

// NewOpenAIClient creates a client with default config.
func NewOpenAIClient(apiKey string) *OpenAIClient {
	return NewOpenAIClientWithConfig(DefaultOpenAIConfig(apiKey))
}

// NewOpenAIClientWithConfig creates a client with custom config.
func NewOpenAIClientWithConfig(config OpenAIConfig) *OpenAIClient {
	models := make(map[ModelTier]string)
	for tier, model := range DefaultOpenAIConfig("").Models {
		models[tier] = model
	}
	for tier, model := range config.Models {
		if model != "" {
			models[tier] = model
		}
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &OpenAIClient{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		models:  models,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type openAICompletionRequest struct {
	Model     string   `json:"model"`
	Prompt    string   `json:"prompt"`
	MaxTokens int      `json:"max_tokens"`
	Stop      []string `json:"stop,omitempty"`
}

type openAICompletionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
	Error *openAIError `json:"error,omitempty"`
}

type openAIClassificationRequest struct {
	Model       string      `json:"model"`
	SearchModel string      `json:"search_model"`
	Query       string      `json:"query"`
	Examples    [][2]string `json:"examples"`
	Labels      []string    `json:"labels"`
}

type openAIClassificationResponse struct {
	Label string       `json:"label"`
	Error *openAIError `json:"error,omitempty"`
}

type openAIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Complete sends a completion request and returns the generated text.
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	timer := logging.StartTimer(logging.CategoryEngine, "OpenAIClient.Complete")
	defer timer.Stop()

	if c.apiKey == "" {
		return "", fmt.Errorf("API key not configured")
	}

	body := openAICompletionRequest{
		Model:     c.models[req.Tier],
		Prompt:    req.Prompt,
		MaxTokens: req.MaxTokens,
	}
	if req.Stop != "" {
		body.Stop = []string{req.Stop}
	}

	logging.EngineDebug("[OpenAI] Complete: model=%s max_tokens=%d prompt_len=%d",
		body.Model, body.MaxTokens, len(req.Prompt))

	raw, ok, err := c.post(ctx, "/completions", body)
	if err != nil {
		return "", err
	}
	if !ok {
		return SentinelNone, nil
	}

	var resp openAICompletionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		// Malformed responses degrade to the raw payload.
		logging.EngineWarn("[OpenAI] Complete: unparseable response (%v), returning raw text", err)
		return string(raw), nil
	}
	if resp.Error != nil {
		logging.EngineWarn("[OpenAI] Complete: API error: %s", resp.Error.Message)
		return SentinelNone, nil
	}
	if len(resp.Choices) == 0 {
		return SentinelNone, nil
	}
	return resp.Choices[0].Text, nil
}

// Classify sends a classification request and returns the chosen label.
func (c *OpenAIClient) Classify(ctx context.Context, req ClassificationRequest) (string, error) {
	timer := logging.StartTimer(logging.CategoryEngine, "OpenAIClient.Classify")
	defer timer.Stop()

	if c.apiKey == "" {
		return "", fmt.Errorf("API key not configured")
	}

	body := openAIClassificationRequest{
		Model:       c.models[TierStandard],
		SearchModel: c.models[TierFast],
		Query:       req.Query,
		Examples:    req.Examples,
		Labels:      req.Labels,
	}

	logging.EngineDebug("[OpenAI] Classify: model=%s search=%s examples=%d labels=%v",
		body.Model, body.SearchModel, len(req.Examples), req.Labels)

	raw, ok, err := c.post(ctx, "/classifications", body)
	if err != nil {
		return "", err
	}
	if !ok {
		return SentinelNone, nil
	}

	var resp openAIClassificationResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		logging.EngineWarn("[OpenAI] Classify: unparseable response (%v), returning raw text", err)
		return string(raw), nil
	}
	if resp.Error != nil {
		logging.EngineWarn("[OpenAI] Classify: API error: %s", resp.Error.Message)
		return SentinelNone, nil
	}
	return resp.Label, nil
}

// post issues one JSON POST with rate limiting and retry on 429/5xx. The
// second return value is false when the service answered but cannot serve
// the request (4xx), which callers translate to the sentinel.
func (c *OpenAIClient) post(ctx context.Context, path string, body interface{}) ([]byte, bool, error) {
	// Keep at least 100ms between requests.
	c.mu.Lock()
	elapsed := time.Since(c.lastRequest)
	if elapsed < 100*time.Millisecond {
		time.Sleep(100*time.Millisecond - elapsed)
	}
	c.lastRequest = time.Now()
	c.mu.Unlock()

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal request: %w", err)
	}

	const maxRetries = 3
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, false, ctx.Err()
			case <-time.After(time.Duration(1<<uint(attempt-1)) * time.Second):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return nil, false, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		raw, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return raw, true, nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("status %d: %s", resp.StatusCode, FirstLine(string(raw)))
			continue
		default:
			// The service answered and refused: unsupported model tier,
			// bad request. Degrades to the sentinel at the call site.
			logging.EngineWarn("[OpenAI] %s returned status %d", path, resp.StatusCode)
			return raw, false, nil
		}
	}

	return nil, false, fmt.Errorf("exhausted retries: %w", lastErr)
}
