package agent

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"npcnerd/internal/engine"
	"npcnerd/internal/inventory"
	"npcnerd/internal/knowledge"
	"npcnerd/internal/prompt"
)

func newTestAgent(classifier *mockClassifier, completion *mockCompletion) *Agent {
	return NewWithConfig(Options{
		Name:           "Greta",
		Backstory:      "You are Greta, a blacksmith in the village of Thorn.",
		Player:         "Aldric",
		Completion:     completion,
		Classification: classifier,
		Rand:           rand.New(rand.NewSource(7)),
	}, DefaultConfig())
}

func TestInteractRoutesCommandToAction(t *testing.T) {
	classifier := &mockClassifier{labels: []string{"Command", "Action"}}
	completion := &mockCompletion{response: "should not be called"}
	a := newTestAgent(classifier, completion)

	res, err := a.Interact(context.Background(), "Dance")
	require.NoError(t, err)

	assert.Equal(t, KindDispatch, res.Kind)
	assert.Equal(t, knowledge.CoarseCommand, res.Coarse)
	assert.Equal(t, knowledge.CommandAction, res.Command)
	assert.Equal(t, knowledge.QuestionNone, res.Question)
	assert.Empty(t, res.Answer)

	// Action dispatch never touches the completion engine or the history.
	assert.Empty(t, completion.prompts)
	assert.Equal(t, 0, a.History().Len())

	require.Len(t, classifier.requests, 2)
	assert.Equal(t, []string{"Question", "Command"}, classifier.requests[0].Labels)
	assert.Equal(t, []string{"Environment", "Action"}, classifier.requests[1].Labels)
}

func TestInteractClassificationRequestShape(t *testing.T) {
	classifier := &mockClassifier{labels: []string{"Question", "Environment"}}
	a := newTestAgent(classifier, &mockCompletion{})

	_, err := a.Interact(context.Background(), "Where is the tavern?")
	require.NoError(t, err)
	require.Len(t, classifier.requests, 2)

	coarse := classifier.requests[0]
	assert.Equal(t, "Where is the tavern?", coarse.Query)
	assert.Len(t, coarse.Examples, len(knowledge.PresetCoarseQuestion())+len(knowledge.PresetCoarseCommand()))
	for _, pair := range coarse.Examples {
		assert.Contains(t, []string{"Question", "Command"}, pair[1])
	}

	branch := classifier.requests[1]
	assert.Len(t, branch.Examples, len(knowledge.PresetQuestion()))
}

func TestInteractPersonalGrowsHistory(t *testing.T) {
	classifier := &mockClassifier{labels: []string{
		"Question", "Personal",
		"Question", "Personal",
	}}
	completion := &mockCompletion{response: "I forge blades for the garrison.\nignored tail"}
	a := newTestAgent(classifier, completion)

	res, err := a.Interact(context.Background(), "Who are you?")
	require.NoError(t, err)
	assert.Equal(t, KindDialogue, res.Kind)
	assert.Equal(t, knowledge.QuestionPersonal, res.Question)
	assert.Equal(t, "I forge blades for the garrison.", res.Answer)
	assert.Equal(t, 1, a.History().Len())

	completion.response = "Since my father handed me the forge.\n"
	res, err = a.Interact(context.Background(), "How long have you worked here?")
	require.NoError(t, err)
	assert.Equal(t, "Since my father handed me the forge.", res.Answer)
	assert.Equal(t, 2, a.History().Len())

	// The second prompt serializes the first turn verbatim.
	require.Len(t, completion.prompts, 2)
	first := a.History().Turns()[0]
	assert.Contains(t, completion.prompts[1], prompt.RenderTurn(first))
	assert.Contains(t, completion.prompts[1], "have been talking already")

	// The first prompt is the zero-history template.
	assert.Contains(t, completion.prompts[0], "approaches you and asks")
}

func TestInteractInventoryBranch(t *testing.T) {
	classifier := &mockClassifier{labels: []string{"Question", "Inventory"}}
	completion := &mockCompletion{respond: func(p string) string {
		if strings.Contains(p, "Item: gold ") {
			return "5"
		}
		return engine.SentinelNone
	}}

	a := NewWithConfig(Options{
		Name:      "Greta",
		Backstory: "backstory",
		Player:    "Aldric",
		Items: []inventory.Item{
			{Name: "sword", Description: "a blade", Quantity: 1},
			{Name: "gold", Description: "shiny", Quantity: 5},
		},
		Completion:     completion,
		Classification: classifier,
		Rand:           rand.New(rand.NewSource(11)),
	}, DefaultConfig())

	res, err := a.Interact(context.Background(), "How many gold do you have?")
	require.NoError(t, err)
	assert.Equal(t, KindInventory, res.Kind)
	assert.Equal(t, knowledge.QuestionInventory, res.Question)
	assert.Equal(t, "5", res.Answer)

	// Inventory answers never touch the dialogue history.
	assert.Equal(t, 0, a.History().Len())
}

func TestInteractOutOfLabelIsSilent(t *testing.T) {
	t.Run("coarse tier", func(t *testing.T) {
		classifier := &mockClassifier{labels: []string{"Gibberish"}}
		completion := &mockCompletion{}
		a := newTestAgent(classifier, completion)

		res, err := a.Interact(context.Background(), "mumble")
		require.NoError(t, err)
		assert.True(t, res.Unresolved())
		assert.Empty(t, completion.prompts)
	})

	t.Run("question tier", func(t *testing.T) {
		classifier := &mockClassifier{labels: []string{"Question", engine.SentinelNone}}
		completion := &mockCompletion{}
		a := newTestAgent(classifier, completion)

		res, err := a.Interact(context.Background(), "mumble?")
		require.NoError(t, err)
		assert.True(t, res.Unresolved())
		assert.Empty(t, completion.prompts)
	})
}

func TestInteractPropagatesTransportErrors(t *testing.T) {
	boom := errors.New("connection refused")

	t.Run("classification", func(t *testing.T) {
		classifier := &mockClassifier{err: boom}
		a := newTestAgent(classifier, &mockCompletion{})

		_, err := a.Interact(context.Background(), "Who are you?")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("completion leaves history untouched", func(t *testing.T) {
		classifier := &mockClassifier{labels: []string{"Question", "Personal"}}
		completion := &mockCompletion{err: boom}
		a := newTestAgent(classifier, completion)

		_, err := a.Interact(context.Background(), "Who are you?")
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 0, a.History().Len())
	})
}

func TestNewCopiesInventorySnapshot(t *testing.T) {
	items := []inventory.Item{{Name: "sword", Description: "a blade", Quantity: 1}}
	a := New(Options{
		Items:          items,
		Completion:     &mockCompletion{},
		Classification: &mockClassifier{},
	})

	items[0].Quantity = 99
	assert.Equal(t, 1, a.Items()[0].Quantity)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "unresolved", KindUnresolved.String())
	assert.Equal(t, "dialogue", KindDialogue.String())
	assert.Equal(t, "inventory", KindInventory.String())
	assert.Equal(t, "dispatch", KindDispatch.String())
}
