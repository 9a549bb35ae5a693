// Package prompt renders labeled examples and queries into the textual
// formats the external engines consume: a completion-style few-shot prompt
// and an examples array for the classification endpoint. Builders shuffle a
// copy of the example set on every call so repeated renders never present
// the same ordering; membership and count stay deterministic.
package prompt

import (
	"fmt"
	"math/rand"
	"strings"

	"npcnerd/internal/knowledge"
	"npcnerd/internal/logging"
)

// Separator terminates every example block in completion-style prompts.
const Separator = "###"

// Completion renders examples as a few-shot completion prompt:
//
//	Input: {prompt}
//	Type: {answer}
//	###
//	...
//	Input: {query}
//	Type:
//
// With an empty query the example-only block is returned with the trailing
// separator dropped. Callers pass a pre-filtered example set; an empty set
// yields an empty body.
func Completion(rng *rand.Rand, examples []knowledge.Example, query string) string {
	shuffled := shuffledCopy(rng, examples)

	var b strings.Builder
	for _, e := range shuffled {
		fmt.Fprintf(&b, "Input: %s\nType: %s\n%s\n", e.Prompt, e.Answer, Separator)
	}

	if query != "" {
		fmt.Fprintf(&b, "Input: %s\nType: ", query)
		return b.String()
	}

	out := b.String()
	return strings.TrimSuffix(out, Separator+"\n")
}

// Array renders examples in the classification-array format:
//
//	["{prompt}", "{answer}"],
//	...
//
// with the trailing separator trimmed.
func Array(rng *rand.Rand, examples []knowledge.Example) string {
	shuffled := shuffledCopy(rng, examples)

	var b strings.Builder
	for _, e := range shuffled {
		fmt.Fprintf(&b, "[%q, %q],\n", e.Prompt, e.Answer)
	}

	return strings.TrimSuffix(b.String(), ",\n")
}

// Pairs returns the shuffled (text, label) pairs for the classification
// endpoint's structured examples parameter.
func Pairs(rng *rand.Rand, examples []knowledge.Example) [][2]string {
	shuffled := shuffledCopy(rng, examples)

	out := make([][2]string, len(shuffled))
	for i, e := range shuffled {
		out[i] = [2]string{e.Prompt, e.Answer}
	}
	return out
}

func shuffledCopy(rng *rand.Rand, examples []knowledge.Example) []knowledge.Example {
	if len(examples) == 0 {
		logging.PromptDebug("rendering with empty example set")
	}
	shuffled := make([]knowledge.Example, len(examples))
	copy(shuffled, examples)
	knowledge.Shuffle(rng, shuffled)
	return shuffled
}
