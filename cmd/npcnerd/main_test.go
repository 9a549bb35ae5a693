package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"npcnerd/internal/agent"
	"npcnerd/internal/config"
	"npcnerd/internal/knowledge"
	"npcnerd/internal/world"
)

func TestRootCommandRegistration(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["say"])
	assert.True(t, names["chat"])
	assert.True(t, names["simulate"])
}

func TestDescribeDispatchEnvironmentQuestion(t *testing.T) {
	npc := &loadedNPC{
		agent: agent.New(agent.Options{Name: "Greta"}),
		registry: world.NewRegistry([]world.Object{
			{Name: "anvil", Tag: "obj-anvil-01", Location: "by the forge"},
		}),
		sheet: &config.Character{Name: "Greta"},
	}

	res := agent.Result{
		Kind:     agent.KindDispatch,
		Coarse:   knowledge.CoarseQuestion,
		Question: knowledge.QuestionEnvironment,
	}

	out := describeDispatch(npc, res, "Where is the Anvil?")
	assert.Contains(t, out, "by the forge")

	out = describeDispatch(npc, res, "Where is the chicken?")
	assert.Contains(t, out, "nothing here")
}

func TestDescribeDispatchAction(t *testing.T) {
	npc := &loadedNPC{
		agent:    agent.New(agent.Options{Name: "Greta"}),
		registry: world.NewRegistry(nil),
		sheet:    &config.Character{Name: "Greta"},
	}

	res := agent.Result{
		Kind:    agent.KindDispatch,
		Coarse:  knowledge.CoarseCommand,
		Command: knowledge.CommandAction,
	}

	out := describeDispatch(npc, res, "Dance")
	assert.Contains(t, out, "[action]")
	assert.Contains(t, out, "Dance")
}

func TestSimulationScriptParsing(t *testing.T) {
	var script simulationScript
	require.NoError(t, yaml.Unmarshal([]byte(`
conversations:
  - character: greta.yaml
    utterances:
      - Who are you?
      - How many gold do you have?
  - character: toll_keeper.yaml
    utterances:
      - Dance
`), &script))

	require.Len(t, script.Conversations, 2)
	assert.Equal(t, "greta.yaml", script.Conversations[0].Character)
	assert.Len(t, script.Conversations[0].Utterances, 2)
}

func TestContainsFold(t *testing.T) {
	assert.True(t, containsFold("Where is the Anvil?", "anvil"))
	assert.False(t, containsFold("Where is the door?", "anvil"))
}
