package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"npcnerd/internal/dialogue"
)

func TestPersonalZeroHistory(t *testing.T) {
	got := Personal("You are Brenna, the innkeeper.", "Progyo", "Who are you?", nil)

	assert.Equal(t,
		"You are Brenna, the innkeeper.\nA player named Progyo approaches you and asks: Who are you?\n###\nYou respond by saying: ",
		got)
}

func TestPersonalWithHistory(t *testing.T) {
	turns := []dialogue.Turn{
		{Speaker: "Progyo", Utterance: "Who are you?", Response: "I am Brenna."},
		{Speaker: "Progyo", Utterance: "Do you live here?", Response: "Above the taproom."},
	}

	got := Personal("You are Brenna, the innkeeper.", "Progyo", "Why stay?", turns)

	t.Run("contains each serialized turn verbatim", func(t *testing.T) {
		for _, turn := range turns {
			assert.Contains(t, got, RenderTurn(turn))
		}
	})

	t.Run("uses the history-aware preamble", func(t *testing.T) {
		assert.Contains(t, got, "You and a player named Progyo have been talking already.")
		assert.Contains(t, got, "Progyo now asks you: Why stay?")
		assert.Contains(t, got, "You respond by saying: ")
	})
}

func TestRenderTurn(t *testing.T) {
	turn := dialogue.Turn{Speaker: "Progyo", Utterance: "Hello", Response: "Well met."}
	assert.Equal(t, "Progyo: Hello\n###\nYou: Well met.", RenderTurn(turn))
}
