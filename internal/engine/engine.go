// Package engine defines the contracts to the external language-completion
// service and the provider clients that implement them. The core treats the
// service as a black box: a completion call and a classification call, both
// blocking, both degrading to the sentinel "None" when the service cannot
// serve the request.
package engine

import (
	"context"
	"strings"
)

// SentinelNone is the overloaded engine return value meaning either "no
// match found" or "engine unavailable". Callers can only tell the two apart
// from context.
const SentinelNone = "None"

// ModelTier selects the capability class for a call. Providers map tiers to
// concrete model names; the core never handles model names directly.
type ModelTier int

const (
	// TierFast backs classification search (cheapest, lowest latency).
	TierFast ModelTier = 0

	// TierStandard backs classification and inventory verification.
	TierStandard ModelTier = 1

	// TierPremium backs free-form dialogue generation.
	TierPremium ModelTier = 2
)

// String returns the tier name.
func (t ModelTier) String() string {
	switch t {
	case TierFast:
		return "fast"
	case TierStandard:
		return "standard"
	case TierPremium:
		return "premium"
	default:
		return "unknown"
	}
}

// CompletionRequest is one generation call.
type CompletionRequest struct {
	Prompt    string
	Tier      ModelTier
	MaxTokens int
	// Stop is an optional stop sequence; empty means none.
	Stop string
}

// CompletionEngine generates text from a prompt. Implementations block until
// the service responds or the context is done.
type CompletionEngine interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ClassificationRequest is one few-shot label-selection call. Examples are
// ordered (text, label) pairs; Labels is the closed label set the engine
// chooses from.
type ClassificationRequest struct {
	Examples [][2]string
	Query    string
	Labels   []string

	// MaxTokens bounds emulated classification backends; zero means the
	// backend default. The native classification endpoint ignores it.
	MaxTokens int
}

// ClassificationEngine picks a label for a query given labeled examples. On
// success the result is a member of Labels; SentinelNone signals that the
// service could not serve the call.
type ClassificationEngine interface {
	Classify(ctx context.Context, req ClassificationRequest) (string, error)
}

// FirstLine returns the substring of s before the first newline, trimmed of
// surrounding whitespace. Engine responses are consumed one line at a time.
func FirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
