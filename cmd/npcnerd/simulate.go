package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"npcnerd/internal/agent"
)

// simulateCmd replays scripted conversations against several characters at
// once. Each character gets its own agent, so the runs are fully isolated.
var simulateCmd = &cobra.Command{
	Use:   "simulate [script.yaml]",
	Short: "Run scripted conversations against several characters concurrently",
	Long: `Reads a YAML script of characters and utterances, runs each
conversation on its own agent, and prints the transcripts.

Script format:
  conversations:
    - character: greta.yaml
      utterances:
        - Who are you?
        - How many gold do you have?
    - character: toll_keeper.yaml
      utterances:
        - Dance`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

type simulationScript struct {
	Conversations []scriptedConversation `yaml:"conversations"`
}

type scriptedConversation struct {
	Character  string   `yaml:"character"`
	Utterances []string `yaml:"utterances"`
}

func runSimulate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	var script simulationScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return fmt.Errorf("failed to parse script: %w", err)
	}
	if len(script.Conversations) == 0 {
		return fmt.Errorf("script has no conversations")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var printMu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)

	for _, conv := range script.Conversations {
		g.Go(func() error {
			npc, err := loadNPC(ctx, conv.Character)
			if err != nil {
				return fmt.Errorf("%s: %w", conv.Character, err)
			}

			lines := make([]string, 0, len(conv.Utterances)*2)
			for _, utterance := range conv.Utterances {
				res, err := npc.agent.Interact(ctx, utterance)
				if err != nil {
					return fmt.Errorf("%s: %q: %w", npc.agent.Name(), utterance, err)
				}

				lines = append(lines, fmt.Sprintf("> %s", utterance))
				switch res.Kind {
				case agent.KindDialogue, agent.KindInventory:
					lines = append(lines, fmt.Sprintf("%s: %s", npc.agent.Name(), res.Answer))
				case agent.KindDispatch:
					lines = append(lines, describeDispatch(npc, res, utterance))
				default:
					lines = append(lines, fmt.Sprintf("%s: (no response)", npc.agent.Name()))
				}
			}

			printMu.Lock()
			defer printMu.Unlock()
			fmt.Printf("=== %s ===\n", npc.agent.Name())
			for _, line := range lines {
				fmt.Println(line)
			}
			fmt.Println()
			return nil
		})
	}

	return g.Wait()
}
