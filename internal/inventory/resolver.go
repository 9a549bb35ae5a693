package inventory

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"npcnerd/internal/engine"
	"npcnerd/internal/knowledge"
	"npcnerd/internal/logging"
)

// probeCount is the number of probe samples synthesized per page.
const probeCount = 6

// probePair is one genuine Q&A template. The question verb takes the item
// name; the answer takes quantity then name.
type probePair struct {
	question string
	answer   string
}

var probePairs = []probePair{
	{"How many %ss do you have?", "I have %d %ss"},
	{"How much %s do you have?", "I have %d %s"},
	{"How many %ss are there?", "There are %d %ss"},
	{"Is there a %s?", "There is %d %s"},
}

// decoyNames is the fixed bank of implausible items used for nonexistent-
// item probes. These must never collide with real inventory names.
var decoyNames = []string{"Bazooka", "Plutonium", "Hydrochloric Acid", "Super TNT"}

// DecoyNames returns the decoy item bank. Test fixtures assert their real
// item names stay disjoint from it.
func DecoyNames() []string {
	out := make([]string, len(decoyNames))
	copy(out, decoyNames)
	return out
}

// Config tunes the resolver.
type Config struct {
	// MaxItemsPerPage bounds the number of items sent per verification
	// round (default 10).
	MaxItemsPerPage int

	// MaxTokens is the completion budget per page (default 75).
	MaxTokens int

	// MaxAttempts bounds the top-level retry loop. Zero means unbounded,
	// matching the reference behavior; tests set a cap to stay
	// deterministic.
	MaxAttempts int
}

// DefaultConfig returns the reference settings.
func DefaultConfig() Config {
	return Config{
		MaxItemsPerPage: 10,
		MaxTokens:       75,
		MaxAttempts:     0,
	}
}

// Resolver runs the paged verification protocol against a completion engine.
type Resolver struct {
	completion engine.CompletionEngine
	rng        *rand.Rand
	cfg        Config
}

// NewResolver creates a resolver. rng must be the owning agent's random
// source; the resolver shares it with the rest of the pipeline.
func NewResolver(completion engine.CompletionEngine, rng *rand.Rand, cfg Config) *Resolver {
	if cfg.MaxItemsPerPage <= 0 {
		cfg.MaxItemsPerPage = 10
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 75
	}
	return &Resolver{completion: completion, rng: rng, cfg: cfg}
}

// Resolve answers query from a snapshot of items. Pages are walked until one
// produces a non-sentinel answer; an exhausted pass restarts the whole
// protocol with a fresh shuffle and fresh probes. With MaxAttempts 0 and an
// absent item this loops indefinitely, mirroring the reference behavior.
func (r *Resolver) Resolve(ctx context.Context, query string, items []Item) (string, error) {
	if len(items) == 0 {
		logging.Inventory("resolve %q: empty inventory", query)
		return engine.SentinelNone, nil
	}

	timer := logging.StartTimer(logging.CategoryInventory, "Resolver.Resolve")
	defer timer.Stop()

	for attempt := 0; r.cfg.MaxAttempts == 0 || attempt < r.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		answer, err := r.resolveOnce(ctx, query, items)
		if err != nil {
			return "", err
		}
		if answer != engine.SentinelNone {
			logging.Inventory("resolve %q: answered on attempt %d", query, attempt+1)
			return answer, nil
		}
		logging.InventoryDebug("resolve %q: attempt %d exhausted all pages", query, attempt+1)
	}

	logging.Inventory("resolve %q: gave up after %d attempts", query, r.cfg.MaxAttempts)
	return engine.SentinelNone, nil
}

// resolveOnce shuffles a snapshot and walks its pages once.
func (r *Resolver) resolveOnce(ctx context.Context, query string, items []Item) (string, error) {
	shuffled := make([]Item, len(items))
	copy(shuffled, items)
	knowledge.Shuffle(r.rng, shuffled)

	pageCount := (len(shuffled) + r.cfg.MaxItemsPerPage - 1) / r.cfg.MaxItemsPerPage
	for p := 0; p < pageCount; p++ {
		start := p * r.cfg.MaxItemsPerPage
		end := start + r.cfg.MaxItemsPerPage
		if end > len(shuffled) {
			end = len(shuffled)
		}
		page := shuffled[start:end]

		prompt := r.pagePrompt(page, query)
		logging.InventoryDebug("page %d/%d: %d items, prompt_len=%d", p+1, pageCount, len(page), len(prompt))

		out, err := r.completion.Complete(ctx, engine.CompletionRequest{
			Prompt:    prompt,
			Tier:      engine.TierStandard,
			MaxTokens: r.cfg.MaxTokens,
		})
		if err != nil {
			return "", err
		}

		answer := engine.FirstLine(out)
		if answer != engine.SentinelNone {
			return answer, nil
		}
	}

	return engine.SentinelNone, nil
}

// pagePrompt renders one verification page: the item lines, six probe
// samples, then the unanswered query. Genuine probes recall a real
// quantity; denial probes reject an inflated quantity; decoy probes ask
// about items that do not exist and answer "None".
func (r *Resolver) pagePrompt(page []Item, query string) string {
	var b strings.Builder

	for _, item := range page {
		fmt.Fprintf(&b, "Item: %s Description: %s Quantity: %d \n%s\n",
			item.Name, item.Description, item.Quantity, "###")
	}

	used := make(map[Item]bool)
	for i := 0; i < probeCount; i++ {
		item := page[r.rng.Intn(len(page))]
		pair := probePairs[i%len(probePairs)]

		genuine := r.rng.Intn(100) >= 50
		switch {
		case genuine && !used[item]:
			fmt.Fprintf(&b, "Question: %s\nAnswer: %s\n###\n",
				fmt.Sprintf(pair.question, item.Name),
				fmt.Sprintf(pair.answer, item.Quantity, item.Name))
			used[item] = true
		case !genuine:
			if r.rng.Intn(100) >= 50 {
				fmt.Fprintf(&b, "Question: Do you have %d %ss? \nAnswer: No I only have %d\n###\n",
					item.Quantity+10, item.Name, item.Quantity)
			} else {
				fmt.Fprintf(&b, "Question: %s\nAnswer: None\n###\n",
					fmt.Sprintf(pair.question, decoyNames[i%len(decoyNames)]))
			}
		}
		// A genuine sample of an already-probed item emits nothing.
	}

	fmt.Fprintf(&b, "Question: %s\nAnswer: ", query)
	return b.String()
}
