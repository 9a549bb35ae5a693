package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"npcnerd/internal/agent"
)

// sayCmd runs a single utterance through the cascade and prints the outcome.
var sayCmd = &cobra.Command{
	Use:   "say [utterance]",
	Short: "Send one utterance to the character and print the reply",
	Long: `Classifies one utterance and prints the character's reply, the
resolved inventory answer, or the dispatch a game host would execute.

Example:
  npcnerd say -c greta.yaml "How many gold do you have?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSay,
}

func runSay(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	npc, err := loadNPC(ctx, characterPath)
	if err != nil {
		return err
	}

	utterance := strings.Join(args, " ")
	res, err := npc.agent.Interact(ctx, utterance)
	if err != nil {
		return fmt.Errorf("interaction failed: %w", err)
	}

	switch res.Kind {
	case agent.KindDialogue, agent.KindInventory:
		fmt.Printf("%s: %s\n", npc.agent.Name(), res.Answer)
	case agent.KindDispatch:
		fmt.Println(describeDispatch(npc, res, utterance))
	default:
		fmt.Printf("%s stares at you blankly.\n", npc.agent.Name())
	}
	return nil
}
