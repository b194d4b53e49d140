package scenario

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/abhisek/promptgym/internal/llm"
)

// Config tunes AI scenario generation.
type Config struct {
	// MaxTokens caps the generation response.
	MaxTokens int

	// Temperature for scenario generation. Higher than evaluation:
	// variety matters more than determinism here.
	Temperature float64

	// AIProbability is the chance Mixed picks an AI-generated scenario
	// over a preset. Range 0.0 - 1.0.
	AIProbability float64
}

// DefaultConfig returns the standard generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:     2048,
		Temperature:   0.7,
		AIProbability: 0.3,
	}
}

// Generator produces scenarios, mixing the preset catalog with
// AI-generated ones.
type Generator struct {
	provider llm.Provider
	config   Config
}

// NewGenerator creates a Generator. provider may be nil, in which case
// only presets are served.
func NewGenerator(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg}
}

// Generate asks the model for a fresh scenario at the given level, using
// presets as few-shot examples. It never fails: any provider or
// validation error yields the fallback scenario for the level.
func (g *Generator) Generate(ctx context.Context, level Level) Scenario {
	if g.provider == nil {
		return fallbackScenario(level, "no generation provider configured")
	}

	ctx = llm.WithPurpose(ctx, "scenario-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(level, Presets(level))},
		},
		Schema:      Schema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: scenario generation failed: %v\n", err)
		return fallbackScenario(level, "generation failed")
	}

	var s Scenario
	if err := json.Unmarshal(resp.Content, &s); err != nil {
		fmt.Fprintf(os.Stderr, "warning: scenario response unparseable: %v\n", err)
		return fallbackScenario(level, "generation failed")
	}
	return s
}

// Mixed returns either a preset or an AI-generated scenario, choosing AI
// with the configured probability.
func (g *Generator) Mixed(ctx context.Context, level Level) Scenario {
	if g.provider != nil && rand.Float64() < g.config.AIProbability {
		return g.Generate(ctx, level)
	}
	return RandomPreset(level)
}

// fallbackScenario is served when generation is unavailable. The id uses
// the reserved number 99 so fallbacks are recognizable in history.
func fallbackScenario(level Level, reason string) Scenario {
	return Scenario{
		ID:          level.Prefix() + "99",
		Title:       fmt.Sprintf("Fallback %s Scenario", titleCase(level)),
		Description: fmt.Sprintf("Generate a prompt for a %s level Microsoft 365 Copilot task.", level),
		Goal:        "Create an effective prompt",
		Context:     reason,
		Product:     "Microsoft 365 Copilot",
		Hints:       []string{"Be specific", "Provide context", "Include format requirements"},
		ExampleGood: fmt.Sprintf("Create a %s level prompt for Microsoft 365 Copilot that includes specific context and clear objectives", level),
	}
}

func titleCase(level Level) string {
	s := string(level)
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
