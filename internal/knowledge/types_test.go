package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTierLabels(t *testing.T) {
	assert.Equal(t, "Question", CoarseQuestion.String())
	assert.Equal(t, "Command", CoarseCommand.String())
	assert.Equal(t, "None", CoarseNone.String())
	assert.Equal(t, "Personal", QuestionPersonal.String())
	assert.Equal(t, "Inventory", QuestionInventory.String())
	assert.Equal(t, "Action", CommandAction.String())
	assert.Equal(t, "Environment", CommandEnvironment.String())
}

func TestExampleYAML(t *testing.T) {
	t.Run("round-trips through label names", func(t *testing.T) {
		in := Example{Question: QuestionInventory, Prompt: "Do you have any mead?", Answer: "Inventory"}
		data, err := yaml.Marshal(in)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Inventory")

		var out Example
		require.NoError(t, yaml.Unmarshal(data, &out))
		assert.Equal(t, in, out)
	})

	t.Run("missing tiers default to None", func(t *testing.T) {
		var e Example
		require.NoError(t, yaml.Unmarshal([]byte("prompt: hi\nanswer: Question\ncoarse: Question\n"), &e))
		assert.Equal(t, CoarseQuestion, e.Coarse)
		assert.Equal(t, QuestionNone, e.Question)
		assert.Equal(t, CommandNone, e.Command)
	})

	t.Run("rejects unknown labels", func(t *testing.T) {
		var e Example
		err := yaml.Unmarshal([]byte("coarse: Riddle\nprompt: x\nanswer: y\n"), &e)
		assert.Error(t, err)
	})
}
