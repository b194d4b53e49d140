// Package export flattens the progress document into CSV for offline
// analysis. The column order is a compatibility contract.
package export

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/promptgym/internal/store"
)

// columns is the fixed CSV header. Do not reorder.
var columns = []string{
	"username",
	"timestamp",
	"scenario_id",
	"total_score",
	"clarity_score",
	"specificity_score",
	"structure_score",
	"task_alignment_score",
	"skill_level",
	"total_attempts",
	"cumulative_score",
	"avg_score",
	"badges_count",
	"badges",
	"user_prompt",
	"strengths",
	"improvements",
	"feedback_summary",
}

// feedbackLimit is the truncation point for feedback_summary.
const feedbackLimit = 100

// CSVExporter writes export files into a directory.
type CSVExporter struct {
	dir string

	now func() time.Time
}

// NewCSV creates an exporter writing into dir ("" means the current
// working directory).
func NewCSV(dir string) *CSVExporter {
	return &CSVExporter{dir: dir, now: time.Now}
}

// Export writes one row per attempt for every user with history, plus one
// zero-valued placeholder row per user without attempts. Rows are ordered
// by (username, timestamp) with empty timestamps last. A store with zero
// users produces no file: the returned path is empty and the error nil.
// filename defaults to a timestamp-derived name when empty.
func (e *CSVExporter) Export(doc *store.Document, filename string) (string, error) {
	rows := buildRows(doc)
	if len(rows) == 0 {
		return "", nil
	}

	if filename == "" {
		filename = fmt.Sprintf("user_progress_export_%s.csv", e.now().Format("20060102_150405"))
	}
	path := filepath.Join(e.dir, filename)

	// Write to a temp file and rename so a failed export leaves nothing
	// behind at the destination.
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}

	if err := writeCSV(f, rows); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("close export file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("finalize export file: %w", err)
	}
	return path, nil
}

func writeCSV(f *os.File, rows [][]string) error {
	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush export file: %w", err)
	}
	return nil
}

func buildRows(doc *store.Document) [][]string {
	var rows [][]string
	for username, user := range doc.Users {
		if len(user.History) == 0 {
			rows = append(rows, placeholderRow(username, user))
			continue
		}
		for _, attempt := range user.History {
			rows = append(rows, attemptRow(username, user, attempt))
		}
	}

	// Order by (username, timestamp), empty timestamps last.
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i][0] != rows[j][0] {
			return rows[i][0] < rows[j][0]
		}
		ti, tj := rows[i][1], rows[j][1]
		if (ti == "") != (tj == "") {
			return tj == ""
		}
		return ti < tj
	})
	return rows
}

func attemptRow(username string, user *store.UserRecord, a store.Attempt) []string {
	avg := 0.0
	if user.Attempts > 0 {
		avg = math.Round(float64(user.TotalScore)/float64(user.Attempts)*100) / 100
	}
	return []string{
		username,
		a.Timestamp,
		a.ScenarioID,
		strconv.Itoa(a.Score),
		strconv.Itoa(a.Evaluation.ClarityScore),
		strconv.Itoa(a.Evaluation.SpecificityScore),
		strconv.Itoa(a.Evaluation.StructureScore),
		strconv.Itoa(a.Evaluation.TaskAlignmentScore),
		string(user.SkillLevel),
		strconv.Itoa(user.Attempts),
		strconv.Itoa(user.TotalScore),
		strconv.FormatFloat(avg, 'f', 2, 64),
		strconv.Itoa(len(user.Badges)),
		strings.Join(user.Badges, ", "),
		a.UserPrompt,
		strings.Join(a.Evaluation.Strengths, "; "),
		strings.Join(a.Evaluation.Improvements, "; "),
		summarizeFeedback(a.Evaluation.Feedback),
	}
}

func placeholderRow(username string, user *store.UserRecord) []string {
	return []string{
		username,
		"",
		"",
		"0",
		"0",
		"0",
		"0",
		"0",
		string(user.SkillLevel),
		strconv.Itoa(user.Attempts),
		strconv.Itoa(user.TotalScore),
		"0.00",
		strconv.Itoa(len(user.Badges)),
		strings.Join(user.Badges, ", "),
		"",
		"",
		"",
		"No attempts yet",
	}
}

// summarizeFeedback truncates feedback to feedbackLimit characters with a
// trailing ellipsis marker; shorter feedback passes through verbatim.
func summarizeFeedback(feedback string) string {
	runes := []rune(feedback)
	if len(runes) <= feedbackLimit {
		return feedback
	}
	return string(runes[:feedbackLimit]) + "..."
}
