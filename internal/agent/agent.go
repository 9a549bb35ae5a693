// Package agent wires the classification cascade together: an utterance is
// coarse-classified into Question or Command, then branch-classified, then
// dispatched to the personal-answer generator, the inventory resolver, or
// back to the host. One Agent owns one conversation.
package agent

import (
	"context"
	"math/rand"
	"time"

	"npcnerd/internal/dialogue"
	"npcnerd/internal/engine"
	"npcnerd/internal/inventory"
	"npcnerd/internal/knowledge"
	"npcnerd/internal/logging"
	"npcnerd/internal/prompt"
)

// Config holds the tunable limits for one agent.
type Config struct {
	// ClassifyMaxTokens bounds each classification call.
	ClassifyMaxTokens int

	// PersonalMaxTokens bounds free-form dialogue generation.
	PersonalMaxTokens int

	// Inventory configures the paged resolver.
	Inventory inventory.Config
}

// DefaultConfig returns the reference settings.
func DefaultConfig() Config {
	return Config{
		ClassifyMaxTokens: 5,
		PersonalMaxTokens: 75,
		Inventory:         inventory.DefaultConfig(),
	}
}

// Options describes the host-supplied state for one agent.
type Options struct {
	// Name identifies the character, for logs only.
	Name string

	// Backstory is the character text prepended to personal prompts.
	Backstory string

	// Player is the player identifier used in dialogue templates.
	Player string

	// Custom examples are appended to the built-in preset banks.
	Custom []knowledge.Example

	// Items is the inventory snapshot the agent answers from.
	Items []inventory.Item

	// Completion and Classification are the external engines.
	Completion     engine.CompletionEngine
	Classification engine.ClassificationEngine

	// Rand is the agent's private random source. Nil seeds one from the
	// clock; agents never share a source.
	Rand *rand.Rand
}

// Agent routes utterances for a single conversation. Not safe for concurrent
// use; run independent agents for concurrent conversations.
type Agent struct {
	name       string
	backstory  string
	player     string
	base       *knowledge.Base
	history    *dialogue.Context
	items      []inventory.Item
	resolver   *inventory.Resolver
	rng        *rand.Rand
	completion engine.CompletionEngine
	classifier engine.ClassificationEngine
	cfg        Config
}

// New builds an agent with the default configuration.
func New(opts Options) *Agent {
	return NewWithConfig(opts, DefaultConfig())
}

// NewWithConfig builds an agent with explicit limits.
func NewWithConfig(opts Options, cfg Config) *Agent {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.ClassifyMaxTokens <= 0 {
		cfg.ClassifyMaxTokens = 5
	}
	if cfg.PersonalMaxTokens <= 0 {
		cfg.PersonalMaxTokens = 75
	}

	items := make([]inventory.Item, len(opts.Items))
	copy(items, opts.Items)

	return &Agent{
		name:       opts.Name,
		backstory:  opts.Backstory,
		player:     opts.Player,
		base:       knowledge.NewBase(opts.Custom),
		history:    dialogue.NewContext(),
		items:      items,
		resolver:   inventory.NewResolver(opts.Completion, rng, cfg.Inventory),
		rng:        rng,
		completion: opts.Completion,
		classifier: opts.Classification,
		cfg:        cfg,
	}
}

// Name returns the character name.
func (a *Agent) Name() string { return a.name }

// History returns the dialogue context accumulated so far.
func (a *Agent) History() *dialogue.Context { return a.history }

// Items returns a copy of the inventory snapshot.
func (a *Agent) Items() []inventory.Item {
	out := make([]inventory.Item, len(a.items))
	copy(out, a.items)
	return out
}

var (
	coarseLabels   = []string{knowledge.CoarseQuestion.String(), knowledge.CoarseCommand.String()}
	questionLabels = []string{
		knowledge.QuestionEnvironment.String(),
		knowledge.QuestionPersonal.String(),
		knowledge.QuestionInventory.String(),
	}
	commandLabels = []string{
		knowledge.CommandEnvironment.String(),
		knowledge.CommandAction.String(),
	}
)

// Interact runs one utterance through the full cascade. A non-nil error
// means a transport failure; an out-of-label classification is not an error
// and yields an unresolved result.
func (a *Agent) Interact(ctx context.Context, utterance string) (Result, error) {
	label, err := a.classify(ctx, a.base.CoarseExamples(), utterance, coarseLabels)
	if err != nil {
		return Result{}, err
	}

	switch label {
	case knowledge.CoarseQuestion.String():
		logging.Cascade("%s: %q classified as question", a.name, utterance)
		return a.questionBranch(ctx, utterance)
	case knowledge.CoarseCommand.String():
		logging.Cascade("%s: %q classified as command", a.name, utterance)
		return a.commandBranch(ctx, utterance)
	default:
		logging.CascadeDebug("%s: coarse label %q outside offered set, no branch taken", a.name, label)
		return Result{}, nil
	}
}

func (a *Agent) questionBranch(ctx context.Context, utterance string) (Result, error) {
	label, err := a.classify(ctx, a.base.QuestionExamples(), utterance, questionLabels)
	if err != nil {
		return Result{}, err
	}

	res := Result{Coarse: knowledge.CoarseQuestion}
	switch label {
	case knowledge.QuestionEnvironment.String():
		logging.Cascade("%s: environment question, dispatching to host", a.name)
		res.Kind = KindDispatch
		res.Question = knowledge.QuestionEnvironment
		return res, nil
	case knowledge.QuestionPersonal.String():
		return a.answerPersonal(ctx, utterance)
	case knowledge.QuestionInventory.String():
		return a.answerInventory(ctx, utterance)
	default:
		logging.CascadeDebug("%s: question label %q outside offered set, no branch taken", a.name, label)
		return Result{}, nil
	}
}

func (a *Agent) commandBranch(ctx context.Context, utterance string) (Result, error) {
	label, err := a.classify(ctx, a.base.CommandExamples(), utterance, commandLabels)
	if err != nil {
		return Result{}, err
	}

	res := Result{Kind: KindDispatch, Coarse: knowledge.CoarseCommand}
	switch label {
	case knowledge.CommandEnvironment.String():
		logging.Cascade("%s: environment command, dispatching to host", a.name)
		res.Command = knowledge.CommandEnvironment
		return res, nil
	case knowledge.CommandAction.String():
		logging.Cascade("%s: action command, dispatching to host", a.name)
		res.Command = knowledge.CommandAction
		return res, nil
	default:
		logging.CascadeDebug("%s: command label %q outside offered set, no branch taken", a.name, label)
		return Result{}, nil
	}
}

func (a *Agent) classify(ctx context.Context, examples []knowledge.Example, query string, labels []string) (string, error) {
	return a.classifier.Classify(ctx, engine.ClassificationRequest{
		Examples:  prompt.Pairs(a.rng, examples),
		Query:     query,
		Labels:    labels,
		MaxTokens: a.cfg.ClassifyMaxTokens,
	})
}

// answerPersonal generates a free-form reply from backstory plus the
// dialogue history, then records the turn. The turn is appended only after
// a successful completion, so a transport failure leaves no partial state.
func (a *Agent) answerPersonal(ctx context.Context, utterance string) (Result, error) {
	p := prompt.Personal(a.backstory, a.player, utterance, a.history.Turns())

	raw, err := a.completion.Complete(ctx, engine.CompletionRequest{
		Prompt:    p,
		Tier:      engine.TierPremium,
		MaxTokens: a.cfg.PersonalMaxTokens,
		Stop:      prompt.Separator,
	})
	if err != nil {
		return Result{}, err
	}

	answer := engine.FirstLine(raw)
	a.history.Append(a.player, utterance, answer)
	logging.Dialogue("%s: personal answer recorded, history now %d turns", a.name, a.history.Len())

	return Result{
		Kind:     KindDialogue,
		Coarse:   knowledge.CoarseQuestion,
		Question: knowledge.QuestionPersonal,
		Answer:   answer,
	}, nil
}

func (a *Agent) answerInventory(ctx context.Context, utterance string) (Result, error) {
	answer, err := a.resolver.Resolve(ctx, utterance, a.items)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Kind:     KindInventory,
		Coarse:   knowledge.CoarseQuestion,
		Question: knowledge.QuestionInventory,
		Answer:   answer,
	}, nil
}
