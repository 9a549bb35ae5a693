package knowledge

import "math/rand"

// Base is the assembled knowledge of one agent: the preset banks followed by
// the character's custom examples, concatenated once at construction and
// read-only afterwards.
type Base struct {
	examples []Example
}

// NewBase builds the ordered union of the preset banks and the supplied
// custom examples.
func NewBase(custom []Example) *Base {
	var examples []Example
	examples = append(examples, PresetCoarseQuestion()...)
	examples = append(examples, PresetCoarseCommand()...)
	examples = append(examples, PresetQuestion()...)
	examples = append(examples, PresetCommand()...)
	examples = append(examples, custom...)
	return &Base{examples: examples}
}

// Len returns the total number of examples, inert ones included.
func (b *Base) Len() int {
	return len(b.examples)
}

// All returns a copy of the full example list.
func (b *Base) All() []Example {
	out := make([]Example, len(b.examples))
	copy(out, b.examples)
	return out
}

// CoarseExamples returns the examples whose coarse tier is Question or
// Command. BackStory and inert entries are excluded.
func (b *Base) CoarseExamples() []Example {
	var out []Example
	for _, e := range b.examples {
		if e.Coarse == CoarseQuestion || e.Coarse == CoarseCommand {
			out = append(out, e)
		}
	}
	return out
}

// QuestionExamples returns the examples with a non-None question tier.
func (b *Base) QuestionExamples() []Example {
	var out []Example
	for _, e := range b.examples {
		if e.Question != QuestionNone {
			out = append(out, e)
		}
	}
	return out
}

// CommandExamples returns the examples with a non-None command tier.
func (b *Base) CommandExamples() []Example {
	var out []Example
	for _, e := range b.examples {
		if e.Command != CommandNone {
			out = append(out, e)
		}
	}
	return out
}

// Shuffle permutes xs in place with a Fisher-Yates walk over rng. Every
// permutation of xs is reachable. Prompt builders shuffle before every render
// so the external classifier cannot learn positional bias.
func Shuffle[T any](rng *rand.Rand, xs []T) {
	for n := len(xs); n > 1; {
		n--
		k := rng.Intn(n + 1)
		xs[k], xs[n] = xs[n], xs[k]
	}
}
