package scenario

import (
	"encoding/json"
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert Microsoft 365 Copilot trainer and scenario designer.
Your job is to generate realistic, practical training scenarios for prompt engineering practice.

Guidelines:
- Make scenarios realistic and business-relevant
- Ensure difficulty matches the requested level
- Include specific Microsoft 365 products
- Provide actionable hints
- Create diverse scenarios (avoid repetition)
- Focus on real workplace challenges`

// levelDescriptions guides the model on expected difficulty.
var levelDescriptions = map[Level]string{
	LevelBeginner:     "Simple, single-task scenarios requiring basic prompts. Focus on one Microsoft 365 product with straightforward goals.",
	LevelIntermediate: "Multi-step scenarios requiring more detailed prompts. May involve data analysis, content creation, or coordination across products.",
	LevelAdvanced:     "Complex scenarios requiring sophisticated prompts. Often involve strategic thinking, multiple products, automation, or enterprise-level challenges.",
}

// buildUserMessage constructs the generation request, using up to two
// presets of the target level as few-shot examples.
func buildUserMessage(level Level, examples []Scenario) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate a NEW Microsoft 365 Copilot training scenario for %s level.\n\n", strings.ToUpper(string(level)))
	fmt.Fprintf(&b, "Level Requirements:\n%s\n", levelDescriptions[level])

	if len(examples) > 0 {
		if len(examples) > 2 {
			examples = examples[:2]
		}
		b.WriteString("\nHere are examples of well-crafted scenarios for this level:\n")
		for i, s := range examples {
			data, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				continue
			}
			fmt.Fprintf(&b, "\nExample %d:\n%s\n", i+1, data)
		}
	}

	b.WriteString("\nCreate a unique scenario that:\n")
	b.WriteString("1. Is different from the examples above\n")
	fmt.Fprintf(&b, "2. Matches the %s difficulty level\n", level)
	b.WriteString("3. Uses a Microsoft 365 product appropriately\n")
	b.WriteString("4. Represents a realistic workplace challenge\n")
	fmt.Fprintf(&b, "\nUse id prefix %q followed by a number (e.g. %q).\n", level.Prefix(), level.Prefix()+"4")

	return b.String()
}
