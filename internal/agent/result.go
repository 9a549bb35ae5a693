package agent

import "npcnerd/internal/knowledge"

// Kind tags what an interaction produced. Classification outcomes are a
// closed set, so the cascade branches on tagged variants rather than on the
// raw label strings the engine returns.
type Kind int

const (
	// KindUnresolved: the cascade took no branch. Either the engine returned
	// a label outside the offered set or it signalled unavailability; the
	// two are indistinguishable here.
	KindUnresolved Kind = 0

	// KindDialogue: a generated personal answer. The turn has been appended
	// to the dialogue history.
	KindDialogue Kind = 1

	// KindInventory: an answer resolved from the inventory, possibly the
	// sentinel "None" when nothing matched.
	KindInventory Kind = 2

	// KindDispatch: an environment or action branch the host executes. The
	// core only routes these.
	KindDispatch Kind = 3
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDialogue:
		return "dialogue"
	case KindInventory:
		return "inventory"
	case KindDispatch:
		return "dispatch"
	default:
		return "unresolved"
	}
}

// Result is the outcome of one interaction. Question and Command record the
// branch taken; at most one of them is non-None. Answer carries text only
// for dialogue and inventory results.
type Result struct {
	Kind     Kind
	Coarse   knowledge.CoarseType
	Question knowledge.QuestionType
	Command  knowledge.CommandType
	Answer   string
}

// Unresolved reports whether the cascade produced no branch.
func (r Result) Unresolved() bool {
	return r.Kind == KindUnresolved
}
