package scenario

import "github.com/abhisek/promptgym/internal/llm"

// Schema defines the JSON schema for AI-generated scenarios.
var Schema = &llm.Schema{
	Name:        "training-scenario",
	Description: "A prompt-engineering training scenario for Microsoft 365 Copilot practice",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id": map[string]any{
				"type":        "string",
				"description": "Level prefix followed by a number, e.g. \"b4\", \"i4\", \"a4\"",
			},
			"title": map[string]any{
				"type":        "string",
				"description": "Clear, specific title",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "2-3 sentence scenario description",
			},
			"goal": map[string]any{
				"type":        "string",
				"description": "What the user needs to accomplish",
			},
			"context": map[string]any{
				"type":        "string",
				"description": "Relevant background information",
			},
			"product": map[string]any{
				"type":        "string",
				"description": "Microsoft 365 product (e.g. 'Excel Copilot', 'Teams Copilot')",
			},
			"hints": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Actionable hints for writing a good prompt",
			},
			"example_good": map[string]any{
				"type":        "string",
				"description": "Example of a well-crafted prompt for this scenario",
			},
		},
		"required":             []any{"id", "title", "description", "goal", "context", "product", "hints", "example_good"},
		"additionalProperties": false,
	},
}
