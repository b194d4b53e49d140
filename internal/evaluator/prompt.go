package evaluator

import (
	"fmt"
	"strings"

	"github.com/abhisek/promptgym/internal/scenario"
)

const systemPrompt = `You are an expert prompt engineering evaluator.
Your job is to assess user prompts based on:
1. Clarity (25 points): Is the prompt clear and unambiguous?
2. Specificity (25 points): Does it provide enough context and details?
3. Structure (25 points): Is it well-organized with proper formatting?
4. Task Alignment (25 points): Does it align with the given scenario/goal?

Be constructive but honest. Provide specific examples of what works and what could be improved.`

// buildUserMessage lays out the scenario and the prompt under evaluation.
func buildUserMessage(userPrompt string, scn scenario.Scenario) string {
	var b strings.Builder

	b.WriteString("SCENARIO:\n")
	fmt.Fprintf(&b, "%s\n", scn.Title)
	fmt.Fprintf(&b, "%s\n", scn.Description)
	fmt.Fprintf(&b, "Goal: %s\n", scn.Goal)
	fmt.Fprintf(&b, "Context: %s\n", scn.Context)

	b.WriteString("\nUSER'S PROMPT:\n")
	b.WriteString(userPrompt)

	b.WriteString("\n\nEvaluate this prompt against the scenario.")

	return b.String()
}
