package scenario

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/promptgym/internal/llm"
)

func generatedScenarioJSON() json.RawMessage {
	return json.RawMessage(`{
		"id": "i7",
		"title": "Budget Variance Review in Excel",
		"description": "Monthly budget review is due.",
		"goal": "Explain the biggest variances against plan",
		"context": "Finance workbook with plan vs actuals by cost center",
		"product": "Excel Copilot",
		"hints": ["name the threshold", "ask for causes"],
		"example_good": "Identify cost centers with more than 10% variance against plan and summarize likely causes"
	}`)
}

func TestGenerate_ParsesProviderOutput(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: generatedScenarioJSON()})
	g := NewGenerator(mock, DefaultConfig())

	s := g.Generate(context.Background(), LevelIntermediate)

	if s.ID != "i7" {
		t.Errorf("expected id i7, got %q", s.ID)
	}
	if s.Product != "Excel Copilot" {
		t.Errorf("expected product mapped, got %q", s.Product)
	}
	if len(s.Hints) != 2 {
		t.Errorf("expected 2 hints, got %v", s.Hints)
	}
}

func TestGenerate_RequestCarriesFewShotExamples(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: generatedScenarioJSON()})
	g := NewGenerator(mock, DefaultConfig())

	g.Generate(context.Background(), LevelBeginner)

	req := mock.Calls[0]
	if req.Schema == nil {
		t.Error("expected structured-output schema on the request")
	}
	body := req.Messages[0].Content
	if !strings.Contains(body, "beginner") {
		t.Error("user message must name the requested level")
	}
	if !strings.Contains(body, "Email Summarization in Outlook") {
		t.Error("user message must include preset few-shot examples")
	}
}

func TestGenerate_NilProviderFallsBack(t *testing.T) {
	g := NewGenerator(nil, DefaultConfig())

	s := g.Generate(context.Background(), LevelAdvanced)

	if s.ID != "a99" {
		t.Errorf("expected fallback id a99, got %q", s.ID)
	}
	if !strings.Contains(s.Title, "Advanced") {
		t.Errorf("expected level in fallback title, got %q", s.Title)
	}
}

func TestGenerate_ProviderErrorFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("timeout")},
	})
	g := NewGenerator(mock, DefaultConfig())

	s := g.Generate(context.Background(), LevelBeginner)

	if s.ID != "b99" {
		t.Errorf("expected fallback id b99, got %q", s.ID)
	}
}

func TestGenerate_UnparseableResponseFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`not json`)})
	g := NewGenerator(mock, DefaultConfig())

	s := g.Generate(context.Background(), LevelIntermediate)

	if s.ID != "i99" {
		t.Errorf("expected fallback id i99, got %q", s.ID)
	}
}

func TestMixed_ZeroProbabilityServesPresets(t *testing.T) {
	mock := llm.NewMockProvider()
	cfg := DefaultConfig()
	cfg.AIProbability = 0
	g := NewGenerator(mock, cfg)

	for range 20 {
		s := g.Mixed(context.Background(), LevelBeginner)
		if !strings.HasPrefix(s.ID, "b") || s.ID == "b99" {
			t.Fatalf("expected a beginner preset, got %q", s.ID)
		}
	}
	if mock.CallCount() != 0 {
		t.Errorf("provider must not be called at probability 0, got %d calls", mock.CallCount())
	}
}

func TestMixed_FullProbabilityUsesProvider(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: generatedScenarioJSON()})
	cfg := DefaultConfig()
	cfg.AIProbability = 1
	g := NewGenerator(mock, cfg)

	s := g.Mixed(context.Background(), LevelIntermediate)
	if s.ID != "i7" {
		t.Errorf("expected the generated scenario, got %q", s.ID)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 provider call, got %d", mock.CallCount())
	}
}
