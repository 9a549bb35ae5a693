package prompt

import (
	"fmt"
	"strings"

	"npcnerd/internal/dialogue"
)

// RenderTurn serializes one completed turn the way it appears inside a
// history-aware prompt. The same rendering is stored back into the dialogue
// context so every later prompt sees a consistent representation.
func RenderTurn(t dialogue.Turn) string {
	return fmt.Sprintf("%s: %s\n%s\nYou: %s", t.Speaker, t.Utterance, Separator, t.Response)
}

// Personal builds the generation prompt for a personal question: backstory,
// optionally the serialized prior dialogue, then the new question.
func Personal(backstory, player, utterance string, turns []dialogue.Turn) string {
	if len(turns) == 0 {
		return fmt.Sprintf("%s\nA player named %s approaches you and asks: %s\n%s\nYou respond by saying: ",
			backstory, player, utterance, Separator)
	}

	var previous strings.Builder
	for _, t := range turns {
		previous.WriteString(RenderTurn(t))
		previous.WriteString("\n" + Separator + "\n")
	}

	return fmt.Sprintf("%s\nYou and a player named %s have been talking already. This was your previous dialog. %s%s now asks you: %s\n%s\nYou respond by saying: ",
		backstory, player, previous.String(), player, utterance, Separator)
}
