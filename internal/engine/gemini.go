package engine

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"npcnerd/internal/logging"
)

// GeminiConfig holds configuration for the Gemini engine.
type GeminiConfig struct {
	APIKey string

	// Models maps tiers to Gemini model names.
	Models map[ModelTier]string
}

// DefaultGeminiConfig returns sensible defaults.
func DefaultGeminiConfig(apiKey string) GeminiConfig {
	return GeminiConfig{
		APIKey: apiKey,
		Models: map[ModelTier]string{
			TierFast:     "gemini-2.0-flash-lite",
			TierStandard: "gemini-2.0-flash",
			TierPremium:  "gemini-2.5-pro",
		},
	}
}

// GeminiEngine implements CompletionEngine and ClassificationEngine on top
// of the Google GenAI SDK. Gemini has no classification endpoint, so
// classification is emulated with the few-shot completion format and the
// first response line is taken as the label.
type GeminiEngine struct {
	client *genai.Client
	models map[ModelTier]string
}

// NewGeminiEngine creates a Gemini-backed engine.
func NewGeminiEngine(ctx context.Context, config GeminiConfig) (*GeminiEngine, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: config.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	models := make(map[ModelTier]string)
	for tier, model := range DefaultGeminiConfig("x").Models {
		models[tier] = model
	}
	for tier, model := range config.Models {
		if model != "" {
			models[tier] = model
		}
	}

	return &GeminiEngine{client: client, models: models}, nil
}

// Complete generates text for the prompt at the requested tier.
func (e *GeminiEngine) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	timer := logging.StartTimer(logging.CategoryEngine, "GeminiEngine.Complete")
	defer timer.Stop()

	model := e.models[req.Tier]
	cfg := &genai.GenerateContentConfig{}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.Stop != "" {
		cfg.StopSequences = []string{req.Stop}
	}

	logging.EngineDebug("[Gemini] Complete: model=%s max_tokens=%d prompt_len=%d",
		model, req.MaxTokens, len(req.Prompt))

	resp, err := e.client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), cfg)
	if err != nil {
		logging.EngineWarn("[Gemini] Complete failed: %v", err)
		return SentinelNone, nil
	}

	return resp.Text(), nil
}

// Classify emulates the classification endpoint through a few-shot
// completion prompt over the standard tier.
func (e *GeminiEngine) Classify(ctx context.Context, req ClassificationRequest) (string, error) {
	var b strings.Builder
	b.WriteString("Classify the input as one of: ")
	b.WriteString(strings.Join(req.Labels, ", "))
	b.WriteString(". Answer with the label only.\n")
	for _, pair := range req.Examples {
		fmt.Fprintf(&b, "Input: %s\nType: %s\n###\n", pair[0], pair[1])
	}
	fmt.Fprintf(&b, "Input: %s\nType: ", req.Query)

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 5
	}
	out, err := e.Complete(ctx, CompletionRequest{
		Prompt:    b.String(),
		Tier:      TierStandard,
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", err
	}
	return FirstLine(out), nil
}
