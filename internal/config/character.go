package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"npcnerd/internal/inventory"
	"npcnerd/internal/knowledge"
	"npcnerd/internal/world"
)

// Character is one NPC sheet loaded from YAML: identity, backstory, the
// custom few-shot examples appended to the preset banks, the inventory
// snapshot, and the environment objects the host registers for the scene.
type Character struct {
	Name      string `yaml:"name"`
	Backstory string `yaml:"backstory"`

	// Player is the default player identifier; the CLI can override it.
	Player string `yaml:"player"`

	Examples    []knowledge.Example `yaml:"examples"`
	Inventory   []inventory.Item    `yaml:"inventory"`
	Environment []world.Object      `yaml:"environment"`
}

// LoadCharacter loads a character sheet from a YAML file.
func LoadCharacter(path string) (*Character, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read character sheet: %w", err)
	}

	var c Character
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse character sheet: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the sheet for fields the pipeline cannot run without.
func (c *Character) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("character sheet missing name")
	}
	if c.Backstory == "" {
		return fmt.Errorf("character %s missing backstory", c.Name)
	}
	for i, e := range c.Examples {
		if e.Inert() {
			return fmt.Errorf("character %s example %d has no classification tier", c.Name, i)
		}
	}
	for i, item := range c.Inventory {
		if item.Name == "" {
			return fmt.Errorf("character %s inventory item %d missing name", c.Name, i)
		}
		if item.Quantity < 0 {
			return fmt.Errorf("character %s inventory item %q has negative quantity", c.Name, item.Name)
		}
	}
	return nil
}
