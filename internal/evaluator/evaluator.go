// Package evaluator scores user-written prompts through the LLM layer.
// It is the evaluation-provider boundary: whatever happens upstream, the
// progress ledger always receives a well-formed evaluation record.
package evaluator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/abhisek/promptgym/internal/llm"
	"github.com/abhisek/promptgym/internal/scenario"
	"github.com/abhisek/promptgym/internal/store"
)

// Config tunes prompt evaluation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard evaluation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   3072,
		Temperature: 0.4,
	}
}

// Evaluator grades prompts against scenarios.
type Evaluator struct {
	provider llm.Provider
	config   Config
}

// New creates an Evaluator over the given provider.
func New(provider llm.Provider, cfg Config) *Evaluator {
	return &Evaluator{provider: provider, config: cfg}
}

// evaluationOutput is the raw schema-validated LLM response.
type evaluationOutput struct {
	ClarityScore       int      `json:"clarity_score"`
	SpecificityScore   int      `json:"specificity_score"`
	StructureScore     int      `json:"structure_score"`
	TaskAlignmentScore int      `json:"task_alignment_score"`
	TotalScore         int      `json:"total_score"`
	Feedback           string   `json:"feedback"`
	Strengths          []string `json:"strengths"`
	Improvements       []string `json:"improvements"`
}

// Evaluate grades userPrompt against the scenario. It never fails: on any
// provider or validation error a documented fallback record is returned,
// so the caller can always record the attempt.
func (e *Evaluator) Evaluate(ctx context.Context, userPrompt string, scn scenario.Scenario) store.Evaluation {
	ctx = llm.WithPurpose(ctx, "prompt-eval")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(userPrompt, scn)},
		},
		Schema:      Schema,
		MaxTokens:   e.config.MaxTokens,
		Temperature: e.config.Temperature,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: prompt evaluation failed: %v\n", err)
		return fallbackEvaluation(err)
	}

	var out evaluationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		fmt.Fprintf(os.Stderr, "warning: evaluation response unparseable: %v\n", err)
		return fallbackEvaluation(&llm.ErrInvalidResponse{Content: resp.Content, Err: err})
	}

	return store.Evaluation{
		ClarityScore:       out.ClarityScore,
		SpecificityScore:   out.SpecificityScore,
		StructureScore:     out.StructureScore,
		TaskAlignmentScore: out.TaskAlignmentScore,
		TotalScore:         out.TotalScore,
		Feedback:           out.Feedback,
		Strengths:          out.Strengths,
		Improvements:       out.Improvements,
	}
}

// fallbackEvaluation is the neutral mid-range record substituted when the
// provider is unavailable or returns unusable output. All sub-scores 15,
// total 60.
func fallbackEvaluation(err error) store.Evaluation {
	ev := store.Evaluation{
		ClarityScore:       15,
		SpecificityScore:   15,
		StructureScore:     15,
		TaskAlignmentScore: 15,
		TotalScore:         60,
		Strengths:          []string{"Prompt submitted"},
	}

	var invalid *llm.ErrInvalidResponse
	if errors.As(err, &invalid) {
		ev.Feedback = "Unable to parse evaluation"
		if len(invalid.Content) > 0 {
			ev.Feedback = string(invalid.Content)
		}
		ev.Improvements = []string{"Try again with more detail"}
		return ev
	}

	ev.Feedback = fmt.Sprintf("Evaluation service unavailable: %v", err)
	ev.Improvements = []string{"Try again later"}
	return ev
}
