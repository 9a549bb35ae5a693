package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"npcnerd/internal/agent"
	"npcnerd/internal/config"
	"npcnerd/internal/engine"
	"npcnerd/internal/logging"
	"npcnerd/internal/world"
)

var (
	// Global flags
	configPath    string
	characterPath string
	playerName    string
	verbose       bool
	seed          int64

	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "npcnerd",
	Short: "npcNERD - few-shot dialogue engine for game NPCs",
	Long: `npcNERD routes free-text player utterances through a hierarchy of
few-shot classifiers backed by an external completion service, then answers
from the character's inventory, from accumulated dialogue history, or hands
the utterance back to the host as an environment/action dispatch.

Run without arguments to start the interactive chat interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		if err := logging.Initialize(level, cfg.Logging.Development); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch interactive chat
		return runInteractiveChat()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "npcnerd.yaml", "Configuration file")
	rootCmd.PersistentFlags().StringVarP(&characterPath, "character", "c", "character.yaml", "Character sheet to load")
	rootCmd.PersistentFlags().StringVarP(&playerName, "player", "p", "", "Player name (overrides the sheet)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Random seed (0 uses the clock)")

	rootCmd.AddCommand(sayCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(simulateCmd)

	rootCmd.SilenceUsage = true
}

// newEngines builds the provider clients from the loaded configuration.
func newEngines(ctx context.Context) (*engine.Engines, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	models := make(map[engine.ModelTier]string)
	for _, tier := range []engine.ModelTier{engine.TierFast, engine.TierStandard, engine.TierPremium} {
		if name, ok := cfg.Engine.Models[tier.String()]; ok {
			models[tier] = name
		}
	}

	return engine.New(ctx, engine.Options{
		Provider: engine.Provider(cfg.Engine.Provider),
		APIKey:   cfg.Engine.APIKey,
		BaseURL:  cfg.Engine.BaseURL,
		Timeout:  cfg.GetEngineTimeout(),
		Models:   models,
	})
}

// loadedNPC bundles one agent with the scene registry from its sheet.
type loadedNPC struct {
	agent    *agent.Agent
	registry *world.Registry
	sheet    *config.Character
}

// loadNPC loads a character sheet and wires an agent around it.
func loadNPC(ctx context.Context, sheetPath string) (*loadedNPC, error) {
	sheet, err := config.LoadCharacter(sheetPath)
	if err != nil {
		return nil, err
	}

	engines, err := newEngines(ctx)
	if err != nil {
		return nil, err
	}

	player := sheet.Player
	if playerName != "" {
		player = playerName
	}
	if player == "" {
		player = "Player"
	}

	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}

	agentCfg := agent.DefaultConfig()
	agentCfg.ClassifyMaxTokens = cfg.Limits.ClassifyMaxTokens
	agentCfg.PersonalMaxTokens = cfg.Limits.PersonalMaxTokens
	agentCfg.Inventory.MaxItemsPerPage = cfg.Limits.MaxItemsPerPage
	agentCfg.Inventory.MaxTokens = cfg.Limits.InventoryMaxTokens
	agentCfg.Inventory.MaxAttempts = cfg.Limits.ResolverMaxAttempts

	npc := agent.NewWithConfig(agent.Options{
		Name:           sheet.Name,
		Backstory:      sheet.Backstory,
		Player:         player,
		Custom:         sheet.Examples,
		Items:          sheet.Inventory,
		Completion:     engines.Completion,
		Classification: engines.Classification,
		Rand:           rng,
	}, agentCfg)

	logging.Boot("loaded character %s with %d custom examples, %d items",
		sheet.Name, len(sheet.Examples), len(sheet.Inventory))

	return &loadedNPC{
		agent:    npc,
		registry: world.NewRegistry(sheet.Environment),
		sheet:    sheet,
	}, nil
}

// describeDispatch renders an environment/action result for the host side of
// the conversation. The core only routes; the CLI narrates what a game host
// would execute.
func describeDispatch(npc *loadedNPC, res agent.Result, utterance string) string {
	switch {
	case res.Question.String() == "Environment":
		for _, obj := range npc.registry.Objects() {
			if containsFold(utterance, obj.Name) {
				return fmt.Sprintf("[environment] %s is %s", obj.Name, obj.Location)
			}
		}
		return "[environment] nothing here by that name"
	case res.Command.String() == "Environment":
		return "[environment] moving as instructed"
	default:
		return fmt.Sprintf("[action] %s performs: %s", npc.agent.Name(), utterance)
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
