package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToOpenAI(t *testing.T) {
	engines, err := New(context.Background(), Options{APIKey: "k"})
	require.NoError(t, err)

	client, ok := engines.Completion.(*OpenAIClient)
	require.True(t, ok)
	assert.Same(t, client, engines.Classification)
	assert.Equal(t, "davinci", client.models[TierPremium])
}

func TestNewAppliesModelOverrides(t *testing.T) {
	engines, err := New(context.Background(), Options{
		Provider: ProviderOpenAI,
		APIKey:   "k",
		BaseURL:  "http://localhost:9",
		Models:   map[ModelTier]string{TierPremium: "davinci-002"},
	})
	require.NoError(t, err)

	client := engines.Completion.(*OpenAIClient)
	assert.Equal(t, "davinci-002", client.models[TierPremium])
	assert.Equal(t, "curie", client.models[TierStandard])
	assert.Equal(t, "http://localhost:9", client.baseURL)
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), Options{Provider: "oracle"})
	assert.Error(t, err)
}

func TestDetectProvider(t *testing.T) {
	t.Run("prefers OpenAI", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "ok")
		t.Setenv("GEMINI_API_KEY", "gk")
		opts, err := DetectProvider()
		require.NoError(t, err)
		assert.Equal(t, ProviderOpenAI, opts.Provider)
		assert.Equal(t, "ok", opts.APIKey)
	})

	t.Run("falls back to Gemini", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		t.Setenv("GEMINI_API_KEY", "gk")
		opts, err := DetectProvider()
		require.NoError(t, err)
		assert.Equal(t, ProviderGemini, opts.Provider)
	})

	t.Run("errors when nothing is set", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		t.Setenv("GEMINI_API_KEY", "")
		_, err := DetectProvider()
		assert.Error(t, err)
	})
}
