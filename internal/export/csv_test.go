package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/promptgym/internal/store"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse export: %v", err)
	}
	return records
}

func TestExport_EmptyStore(t *testing.T) {
	e := NewCSV(t.TempDir())

	path, err := e.Export(store.NewDocument(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "" {
		t.Errorf("expected empty path for empty store, got %q", path)
	}

	entries, err := os.ReadDir(e.dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Error("empty store must not create a file")
	}
}

func TestExport_DefaultFilename(t *testing.T) {
	dir := t.TempDir()
	e := NewCSV(dir)
	e.now = func() time.Time {
		return time.Date(2026, 8, 30, 14, 25, 3, 0, time.UTC)
	}

	doc := store.NewDocument()
	doc.Users["alice"] = store.NewUserRecord()

	path, err := e.Export(doc, "")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "user_progress_export_20260830_142503.csv")
	if path != want {
		t.Errorf("expected %q, got %q", want, path)
	}
}

func TestExport_HeaderOrder(t *testing.T) {
	e := NewCSV(t.TempDir())
	doc := store.NewDocument()
	doc.Users["alice"] = store.NewUserRecord()

	path, err := e.Export(doc, "out.csv")
	if err != nil {
		t.Fatal(err)
	}

	records := readCSV(t, path)
	want := []string{
		"username", "timestamp", "scenario_id", "total_score",
		"clarity_score", "specificity_score", "structure_score",
		"task_alignment_score", "skill_level", "total_attempts",
		"cumulative_score", "avg_score", "badges_count", "badges",
		"user_prompt", "strengths", "improvements", "feedback_summary",
	}
	if len(records[0]) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(records[0]))
	}
	for i, col := range want {
		if records[0][i] != col {
			t.Errorf("column %d: expected %q, got %q", i, col, records[0][i])
		}
	}
}

func TestExport_PlaceholderRow(t *testing.T) {
	e := NewCSV(t.TempDir())
	doc := store.NewDocument()
	doc.Users["idle"] = store.NewUserRecord()

	path, err := e.Export(doc, "out.csv")
	if err != nil {
		t.Fatal(err)
	}

	records := readCSV(t, path)
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d records", len(records))
	}
	row := records[1]
	if row[0] != "idle" || row[1] != "" || row[3] != "0" {
		t.Errorf("unexpected placeholder row: %v", row)
	}
	if row[8] != "beginner" {
		t.Errorf("expected beginner skill level, got %q", row[8])
	}
	if row[11] != "0.00" {
		t.Errorf("expected avg 0.00, got %q", row[11])
	}
	if row[17] != "No attempts yet" {
		t.Errorf("expected placeholder feedback, got %q", row[17])
	}
}

func TestExport_RowOrdering(t *testing.T) {
	e := NewCSV(t.TempDir())
	doc := store.NewDocument()

	bob := store.NewUserRecord()
	bob.Attempts, bob.TotalScore = 2, 150
	bob.History = []store.Attempt{
		{Timestamp: "2026-08-30T10:00:00Z", ScenarioID: "b2", Score: 70},
		{Timestamp: "2026-08-30T09:00:00Z", ScenarioID: "b1", Score: 80},
		{Timestamp: "", ScenarioID: "b3", Score: 0},
	}
	doc.Users["bob"] = bob

	alice := store.NewUserRecord()
	alice.Attempts, alice.TotalScore = 1, 90
	alice.History = []store.Attempt{
		{Timestamp: "2026-08-30T11:00:00Z", ScenarioID: "i1", Score: 90},
	}
	doc.Users["alice"] = alice

	path, err := e.Export(doc, "out.csv")
	if err != nil {
		t.Fatal(err)
	}

	records := readCSV(t, path)[1:]
	gotOrder := make([]string, len(records))
	for i, r := range records {
		gotOrder[i] = r[0] + "/" + r[2]
	}
	want := []string{"alice/i1", "bob/b1", "bob/b2", "bob/b3"}
	for i := range want {
		if gotOrder[i] != want[i] {
			t.Fatalf("row order mismatch: got %v, want %v", gotOrder, want)
		}
	}
}

func TestExport_FeedbackTruncation(t *testing.T) {
	e := NewCSV(t.TempDir())
	doc := store.NewDocument()

	long := strings.Repeat("x", 150)
	u := store.NewUserRecord()
	u.Attempts, u.TotalScore = 1, 50
	u.History = []store.Attempt{{
		Timestamp:  "2026-08-30T09:00:00Z",
		ScenarioID: "b1",
		Score:      50,
		Evaluation: store.Evaluation{Feedback: long},
	}}
	doc.Users["alice"] = u

	path, err := e.Export(doc, "out.csv")
	if err != nil {
		t.Fatal(err)
	}

	row := readCSV(t, path)[1]
	want := strings.Repeat("x", 100) + "..."
	if row[17] != want {
		t.Errorf("expected truncated feedback of %d chars, got %d", len(want), len(row[17]))
	}
}

func TestSummarizeFeedback(t *testing.T) {
	short := "well structured prompt"
	if got := summarizeFeedback(short); got != short {
		t.Errorf("short feedback must pass through, got %q", got)
	}

	exact := strings.Repeat("y", 100)
	if got := summarizeFeedback(exact); got != exact {
		t.Error("feedback at exactly the limit must not be truncated")
	}

	// Truncation counts runes, not bytes.
	multi := strings.Repeat("é", 101)
	got := summarizeFeedback(multi)
	if got != strings.Repeat("é", 100)+"..." {
		t.Errorf("rune-based truncation failed: got %d runes", len([]rune(got)))
	}
}

func TestExport_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	e := NewCSV(dir)
	doc := store.NewDocument()
	doc.Users["alice"] = store.NewUserRecord()

	if _, err := e.Export(doc, "out.csv"); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.csv" {
		t.Errorf("expected only out.csv in export dir, got %v", entries)
	}
}

func TestExport_FailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	// A directory at the destination makes the final rename fail.
	if err := os.Mkdir(filepath.Join(dir, "out.csv"), 0o755); err != nil {
		t.Fatal(err)
	}

	e := NewCSV(dir)
	doc := store.NewDocument()
	doc.Users["alice"] = store.NewUserRecord()

	if _, err := e.Export(doc, "out.csv"); err == nil {
		t.Fatal("expected export to fail")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") {
			t.Errorf("failed export left %s behind", entry.Name())
		}
	}
}

func TestExport_AttemptRowValues(t *testing.T) {
	e := NewCSV(t.TempDir())
	doc := store.NewDocument()

	u := store.NewUserRecord()
	u.Attempts, u.TotalScore = 3, 200 // avg 66.666... -> 66.67
	u.SkillLevel = store.LevelIntermediate
	u.Badges = []string{"Perfect Score", "Consistent Performer"}
	u.History = []store.Attempt{{
		Timestamp:  "2026-08-30T09:00:00Z",
		ScenarioID: "i2",
		Score:      85,
		UserPrompt: "Summarize the report",
		Evaluation: store.Evaluation{
			ClarityScore:       20,
			SpecificityScore:   22,
			StructureScore:     21,
			TaskAlignmentScore: 22,
			TotalScore:         85,
			Feedback:           "solid",
			Strengths:          []string{"clear", "specific"},
			Improvements:       []string{"add format"},
		},
	}}
	doc.Users["alice"] = u

	path, err := e.Export(doc, "out.csv")
	if err != nil {
		t.Fatal(err)
	}

	row := readCSV(t, path)[1]
	checks := map[int]string{
		0:  "alice",
		2:  "i2",
		3:  "85",
		4:  "20",
		7:  "22",
		8:  "intermediate",
		9:  "3",
		10: "200",
		11: "66.67",
		12: "2",
		13: "Perfect Score, Consistent Performer",
		15: "clear; specific",
		16: "add format",
		17: "solid",
	}
	for i, want := range checks {
		if row[i] != want {
			t.Errorf("column %d: expected %q, got %q", i, want, row[i])
		}
	}
}
