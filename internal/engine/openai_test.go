package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *OpenAIClient {
	client := NewOpenAIClient("test-key")
	client.baseURL = url
	return client
}

func TestOpenAIClient_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body openAICompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "davinci", body.Model)
		assert.Equal(t, 75, body.MaxTokens)
		assert.Equal(t, []string{"###"}, body.Stop)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"text":"I keep the inn.\nAnd more."}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	out, err := client.Complete(context.Background(), CompletionRequest{
		Prompt:    "Who are you?",
		Tier:      TierPremium,
		MaxTokens: 75,
		Stop:      "###",
	})
	require.NoError(t, err)
	assert.Equal(t, "I keep the inn.", FirstLine(out))
}

func TestOpenAIClient_Classify_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/classifications", r.URL.Path)

		var body openAIClassificationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "curie", body.Model)
		assert.Equal(t, "ada", body.SearchModel)
		assert.Equal(t, []string{"Question", "Command"}, body.Labels)
		assert.NotEmpty(t, body.Examples)

		w.Write([]byte(`{"label":"Command"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	label, err := client.Classify(context.Background(), ClassificationRequest{
		Examples: [][2]string{{"Dance", "Command"}, {"Where am I?", "Question"}},
		Query:    "Follow me",
		Labels:   []string{"Question", "Command"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Command", label)
}

func TestOpenAIClient_RetriesRateLimits(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"label":"Question"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	label, err := client.Classify(context.Background(), ClassificationRequest{
		Query:  "Where is the well?",
		Labels: []string{"Question", "Command"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Question", label)
	assert.Equal(t, 2, attempts)
}

func TestOpenAIClient_UnsupportedModelDegradesToSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"message":"model not found","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	out, err := client.Complete(context.Background(), CompletionRequest{Prompt: "x", Tier: TierPremium})
	require.NoError(t, err)
	assert.Equal(t, SentinelNone, out)

	label, err := client.Classify(context.Background(), ClassificationRequest{Query: "x"})
	require.NoError(t, err)
	assert.Equal(t, SentinelNone, label)
}

func TestOpenAIClient_MalformedResponsePassesThroughRaw(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	out, err := client.Complete(context.Background(), CompletionRequest{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "not json at all", out)
}

func TestOpenAIClient_MissingAPIKey(t *testing.T) {
	client := NewOpenAIClientWithConfig(OpenAIConfig{BaseURL: "http://127.0.0.1:0"})

	_, err := client.Complete(context.Background(), CompletionRequest{Prompt: "x"})
	assert.Error(t, err)

	_, err = client.Classify(context.Background(), ClassificationRequest{Query: "x"})
	assert.Error(t, err)
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "hello", FirstLine("hello\nworld"))
	assert.Equal(t, "hello", FirstLine("  hello  "))
	assert.Equal(t, "", FirstLine("\nrest"))
	assert.Equal(t, "one", FirstLine("one"))
}

func TestModelTierString(t *testing.T) {
	assert.Equal(t, "fast", TierFast.String())
	assert.Equal(t, "standard", TierStandard.String())
	assert.Equal(t, "premium", TierPremium.String())
	assert.Equal(t, "unknown", ModelTier(42).String())
}
