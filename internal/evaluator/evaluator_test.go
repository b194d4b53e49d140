package evaluator

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/promptgym/internal/llm"
	"github.com/abhisek/promptgym/internal/scenario"
)

var testScenario = scenario.Scenario{
	ID:          "b1",
	Title:       "Email Summary",
	Description: "Summarize a long email thread",
	Goal:        "Produce a three-bullet summary of the thread",
	Context:     "Busy manager catching up after vacation",
	Product:     "email assistant",
}

func validEvaluationJSON() json.RawMessage {
	return json.RawMessage(`{
		"clarity_score": 22,
		"specificity_score": 20,
		"structure_score": 18,
		"task_alignment_score": 24,
		"total_score": 84,
		"feedback": "Clear and well scoped.",
		"strengths": ["explicit output format"],
		"improvements": ["name the audience"]
	}`)
}

func TestEvaluate_MapsProviderOutput(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validEvaluationJSON()})
	e := New(mock, DefaultConfig())

	ev := e.Evaluate(context.Background(), "Summarize this email in three bullets", testScenario)

	if ev.TotalScore != 84 {
		t.Errorf("expected total 84, got %d", ev.TotalScore)
	}
	if ev.ClarityScore != 22 || ev.TaskAlignmentScore != 24 {
		t.Errorf("sub-scores not mapped: %+v", ev)
	}
	if ev.Feedback != "Clear and well scoped." {
		t.Errorf("unexpected feedback: %q", ev.Feedback)
	}
	if len(ev.Strengths) != 1 || len(ev.Improvements) != 1 {
		t.Errorf("strengths/improvements not mapped: %+v", ev)
	}
}

func TestEvaluate_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validEvaluationJSON()})
	e := New(mock, DefaultConfig())

	e.Evaluate(context.Background(), "my prompt", testScenario)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema == nil {
		t.Error("expected a structured-output schema on the request")
	}
	if req.System == "" {
		t.Error("expected a system prompt")
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != llm.RoleUser {
		t.Fatalf("expected one user message, got %+v", req.Messages)
	}
	body := req.Messages[0].Content
	if !strings.Contains(body, "my prompt") || !strings.Contains(body, testScenario.Goal) {
		t.Error("user message must carry both the prompt and the scenario goal")
	}
}

func TestEvaluate_ProviderUnavailableFallback(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("connection refused")},
	})
	e := New(mock, DefaultConfig())

	ev := e.Evaluate(context.Background(), "my prompt", testScenario)

	if ev.TotalScore != 60 {
		t.Errorf("expected fallback total 60, got %d", ev.TotalScore)
	}
	for _, sub := range []int{ev.ClarityScore, ev.SpecificityScore, ev.StructureScore, ev.TaskAlignmentScore} {
		if sub != 15 {
			t.Errorf("expected all fallback sub-scores to be 15, got %+v", ev)
			break
		}
	}
	if !strings.HasPrefix(ev.Feedback, "Evaluation service unavailable") {
		t.Errorf("unexpected fallback feedback: %q", ev.Feedback)
	}
	if len(ev.Improvements) != 1 || ev.Improvements[0] != "Try again later" {
		t.Errorf("unexpected improvements: %v", ev.Improvements)
	}
}

func TestEvaluate_InvalidResponseFallbackKeepsContent(t *testing.T) {
	raw := json.RawMessage(`this is not json but might still be useful feedback`)
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrInvalidResponse{Content: raw, Err: errors.New("schema validation failed")},
	})
	e := New(mock, DefaultConfig())

	ev := e.Evaluate(context.Background(), "my prompt", testScenario)

	if ev.TotalScore != 60 {
		t.Errorf("expected fallback total 60, got %d", ev.TotalScore)
	}
	if ev.Feedback != string(raw) {
		t.Errorf("expected raw content as feedback, got %q", ev.Feedback)
	}
	if len(ev.Improvements) != 1 || ev.Improvements[0] != "Try again with more detail" {
		t.Errorf("unexpected improvements: %v", ev.Improvements)
	}
}

func TestEvaluate_UnparseableBodyFallback(t *testing.T) {
	// The provider succeeds but hands back a non-object payload.
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`[1, 2, 3]`)})
	e := New(mock, DefaultConfig())

	ev := e.Evaluate(context.Background(), "my prompt", testScenario)

	if ev.TotalScore != 60 {
		t.Errorf("expected fallback total 60, got %d", ev.TotalScore)
	}
	if ev.Feedback != "[1, 2, 3]" {
		t.Errorf("expected raw content preserved as feedback, got %q", ev.Feedback)
	}
}
