// Package scenario supplies prompt-engineering training scenarios: a
// preset catalog plus AI-generated ones.
package scenario

import "fmt"

// Level is a scenario difficulty tier.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Levels lists all tiers in ascending difficulty.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// ParseLevel validates a level name.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return Level(s), nil
	}
	return "", fmt.Errorf("unknown level %q (want beginner, intermediate or advanced)", s)
}

// Prefix returns the scenario id prefix for the level ("b", "i", "a").
// A leading "a" on a scenario id marks it advanced-tier by convention.
func (l Level) Prefix() string {
	return string(l[0])
}

// Scenario is one training task the user writes a prompt for.
type Scenario struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Goal        string   `json:"goal"`
	Context     string   `json:"context"`
	Product     string   `json:"product"`
	Hints       []string `json:"hints"`
	ExampleGood string   `json:"example_good"`
}

// CatalogStats summarizes the preset catalog.
type CatalogStats struct {
	BeginnerCount     int `json:"beginner_count"`
	IntermediateCount int `json:"intermediate_count"`
	AdvancedCount     int `json:"advanced_count"`
	TotalPreset       int `json:"total_preset"`
}
