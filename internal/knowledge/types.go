// Package knowledge holds the labeled few-shot example corpus used by the
// classification cascade. The corpus is assembled once per agent (presets +
// custom examples) and is read-only afterwards.
package knowledge

import "fmt"

// CoarseType is the first-tier classification of an utterance.
type CoarseType int

const (
	CoarseNone CoarseType = 0

	// CoarseQuestion marks utterances asking for information.
	CoarseQuestion CoarseType = 1

	// CoarseCommand marks utterances requesting an action.
	CoarseCommand CoarseType = 2

	// CoarseBackStory marks backstory text attached to a character sheet.
	// Backstory entries are never selected by any tier filter.
	CoarseBackStory CoarseType = 3
)

// String returns the classification label for the coarse tier.
func (t CoarseType) String() string {
	switch t {
	case CoarseQuestion:
		return "Question"
	case CoarseCommand:
		return "Command"
	case CoarseBackStory:
		return "BackStory"
	default:
		return "None"
	}
}

// QuestionType is the second-tier classification for question utterances.
type QuestionType int

const (
	QuestionNone QuestionType = 0

	// QuestionEnvironment: "Where is ...?", "Is ... here?": resolved by the
	// host's world registry, not by the core.
	QuestionEnvironment QuestionType = 1

	// QuestionPersonal: "Who are you?", "Why are you doing this?": answered
	// from backstory plus dialogue history.
	QuestionPersonal QuestionType = 2

	// QuestionInventory: "Do you have any gold?": answered by the paged
	// inventory resolver.
	QuestionInventory QuestionType = 3
)

// String returns the classification label for the question tier.
func (t QuestionType) String() string {
	switch t {
	case QuestionEnvironment:
		return "Environment"
	case QuestionPersonal:
		return "Personal"
	case QuestionInventory:
		return "Inventory"
	default:
		return "None"
	}
}

// CommandType is the second-tier classification for command utterances.
type CommandType int

const (
	CommandNone CommandType = 0

	// CommandEnvironment: "Show me where ...", "Run to ...": dispatched to
	// the host's navigation executor.
	CommandEnvironment CommandType = 1

	// CommandAction: "Dance", "Follow me": dispatched to the host's action
	// executor.
	CommandAction CommandType = 2
)

// String returns the classification label for the command tier.
func (t CommandType) String() string {
	switch t {
	case CommandEnvironment:
		return "Environment"
	case CommandAction:
		return "Action"
	default:
		return "None"
	}
}

// Example is one labeled few-shot example. Exactly one of the three tier
// fields is expected to be non-None; Answer must be the label implied by that
// tier. Examples with all tiers None are inert and never selected.
type Example struct {
	Coarse   CoarseType   `yaml:"coarse,omitempty"`
	Question QuestionType `yaml:"question,omitempty"`
	Command  CommandType  `yaml:"command,omitempty"`
	Prompt   string       `yaml:"prompt"`
	Answer   string       `yaml:"answer"`
}

// Inert reports whether the example is excluded from every tier filter.
func (e Example) Inert() bool {
	return e.Coarse == CoarseNone && e.Question == QuestionNone && e.Command == CommandNone
}

// yaml marshalling for the tier enums so character sheets can use the label
// names instead of raw integers.

func (t CoarseType) MarshalYAML() (interface{}, error) { return t.String(), nil }

func (t *CoarseType) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	switch s {
	case "", "None":
		*t = CoarseNone
	case "Question":
		*t = CoarseQuestion
	case "Command":
		*t = CoarseCommand
	case "BackStory":
		*t = CoarseBackStory
	default:
		return fmt.Errorf("unknown coarse type %q", s)
	}
	return nil
}

func (t QuestionType) MarshalYAML() (interface{}, error) { return t.String(), nil }

func (t *QuestionType) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	switch s {
	case "", "None":
		*t = QuestionNone
	case "Environment":
		*t = QuestionEnvironment
	case "Personal":
		*t = QuestionPersonal
	case "Inventory":
		*t = QuestionInventory
	default:
		return fmt.Errorf("unknown question type %q", s)
	}
	return nil
}

func (t CommandType) MarshalYAML() (interface{}, error) { return t.String(), nil }

func (t *CommandType) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	switch s {
	case "", "None":
		*t = CommandNone
	case "Environment":
		*t = CommandEnvironment
	case "Action":
		*t = CommandAction
	default:
		return fmt.Errorf("unknown command type %q", s)
	}
	return nil
}
