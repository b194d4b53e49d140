package evaluator

import "github.com/abhisek/promptgym/internal/llm"

// Schema defines the JSON schema for prompt evaluation responses. The
// ledger only ever receives records that passed this schema (or the
// documented fallback).
var Schema = &llm.Schema{
	Name:        "prompt-evaluation",
	Description: "A structured quality assessment of a user-written prompt",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"clarity_score": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     25,
				"description": "Is the prompt clear and unambiguous?",
			},
			"specificity_score": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     25,
				"description": "Does it provide enough context and details?",
			},
			"structure_score": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     25,
				"description": "Is it well-organized with proper formatting?",
			},
			"task_alignment_score": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     25,
				"description": "Does it align with the given scenario/goal?",
			},
			"total_score": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     100,
				"description": "Overall score out of 100",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Detailed constructive feedback",
			},
			"strengths": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "What works well in the prompt",
			},
			"improvements": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Specific suggestions to improve the prompt",
			},
		},
		"required": []any{
			"clarity_score", "specificity_score", "structure_score",
			"task_alignment_score", "total_score", "feedback",
			"strengths", "improvements",
		},
		"additionalProperties": false,
	},
}
