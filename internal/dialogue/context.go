// Package dialogue holds the per-agent conversation history used by the
// personal-answer path. The log is append-only and unbounded; it is the only
// cross-call mutable state in the core.
package dialogue

import (
	"github.com/google/uuid"

	"npcnerd/internal/logging"
)

// Turn is one completed exchange. A turn is appended strictly after a
// personal answer has been produced; partial turns are never visible.
type Turn struct {
	ID        string
	Speaker   string
	Utterance string
	Response  string
}

// Context is the ordered log of prior turns for one agent instance. It is
// not safe for concurrent use; each agent owns exactly one Context.
type Context struct {
	turns []Turn
}

// NewContext returns an empty dialogue context.
func NewContext() *Context {
	return &Context{}
}

// Append records a completed turn and returns it with its assigned id.
func (c *Context) Append(speaker, utterance, response string) Turn {
	turn := Turn{
		ID:        uuid.NewString(),
		Speaker:   speaker,
		Utterance: utterance,
		Response:  response,
	}
	c.turns = append(c.turns, turn)
	logging.DialogueDebug("appended turn %s (speaker=%s, turns=%d)", turn.ID, speaker, len(c.turns))
	return turn
}

// Turns returns a copy of the history in order.
func (c *Context) Turns() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of completed turns.
func (c *Context) Len() int {
	return len(c.turns)
}
