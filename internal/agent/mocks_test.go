package agent

import (
	"context"

	"npcnerd/internal/engine"
)

// mockClassifier replays scripted labels in order and records each request.
type mockClassifier struct {
	labels   []string
	requests []engine.ClassificationRequest
	err      error
}

func (m *mockClassifier) Classify(_ context.Context, req engine.ClassificationRequest) (string, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return "", m.err
	}
	if len(m.labels) == 0 {
		return engine.SentinelNone, nil
	}
	label := m.labels[0]
	m.labels = m.labels[1:]
	return label, nil
}

// mockCompletion answers every prompt with a fixed response, or through a
// respond func when one is set.
type mockCompletion struct {
	response string
	respond  func(prompt string) string
	prompts  []string
	err      error
}

func (m *mockCompletion) Complete(_ context.Context, req engine.CompletionRequest) (string, error) {
	m.prompts = append(m.prompts, req.Prompt)
	if m.err != nil {
		return "", m.err
	}
	if m.respond != nil {
		return m.respond(req.Prompt), nil
	}
	return m.response, nil
}
