package progress

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/abhisek/promptgym/internal/store"
)

// Exporter flattens a document into a tabular file. The returned path is
// empty when there was nothing to export.
type Exporter interface {
	Export(doc *store.Document, filename string) (string, error)
}

// autoExportEvery triggers a checkpoint export whenever the total number
// of registered users is an exact multiple of this.
const autoExportEvery = 5

// Tracker is the progress ledger: it owns the in-memory document, applies
// the attempt-recording protocol, and persists the whole document after
// every mutation. All methods are safe for concurrent use; a single mutex
// serializes every mutation against the one shared document.
type Tracker struct {
	mu       sync.Mutex
	store    *store.Store
	exporter Exporter
	doc      *store.Document

	now func() time.Time
}

// New loads the document from st and returns a Tracker over it.
// exporter may be nil, which disables export checkpoints.
func New(st *store.Store, exporter Exporter) *Tracker {
	return &Tracker{
		store:    st,
		exporter: exporter,
		doc:      st.Load(),
		now:      time.Now,
	}
}

// AddUser registers a user. Idempotent: an existing record is untouched.
func (t *Tracker) AddUser(username string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.addUserLocked(username)
}

func (t *Tracker) addUserLocked(username string) {
	if _, ok := t.doc.Users[username]; ok {
		return
	}
	t.doc.Users[username] = store.NewUserRecord()
	t.saveLocked()
}

// RecordAttempt folds one scored attempt into the user's durable state:
// append to history, bump counters, re-derive skill level and badges,
// refresh the leaderboard entry, checkpoint-export when due, persist.
// The evaluation is an opaque input; it has already been validated (or
// substituted with a fallback) at the provider boundary.
func (t *Tracker) RecordAttempt(username, scenarioID string, score int, eval store.Evaluation, userPrompt string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.doc.Users[username]; !ok {
		t.addUserLocked(username)
	}

	user := t.doc.Users[username]
	user.Attempts++
	user.TotalScore += score
	user.History = append(user.History, store.Attempt{
		Timestamp:  t.now().Format(time.RFC3339),
		ScenarioID: scenarioID,
		Score:      score,
		Evaluation: eval,
		UserPrompt: userPrompt,
	})

	// Re-derived from the running average on every call. Not monotonic:
	// a user can drop back from advanced to intermediate.
	avg := float64(user.TotalScore) / float64(user.Attempts)
	switch {
	case avg >= 85 && user.Attempts >= 5:
		user.SkillLevel = store.LevelAdvanced
	case avg >= 70 && user.Attempts >= 3:
		user.SkillLevel = store.LevelIntermediate
	}

	awardBadges(user)
	updateLeaderboard(t.doc, username)
	t.autoExportLocked()
	t.saveLocked()
}

// saveLocked persists the whole document. A write failure is logged and
// in-memory state is kept: the ledger and disk may diverge until the next
// successful save.
func (t *Tracker) saveLocked() {
	if err := t.store.Save(t.doc); err != nil {
		fmt.Fprintf(os.Stderr, "warning: save progress: %v\n", err)
	}
}

// autoExportLocked writes a checkpoint export whenever the registered
// user count is a positive multiple of autoExportEvery. The trigger is
// deliberately coarse and independent of which user just acted.
func (t *Tracker) autoExportLocked() {
	if t.exporter == nil {
		return
	}
	n := len(t.doc.Users)
	if n == 0 || n%autoExportEvery != 0 {
		return
	}
	path, err := t.exporter.Export(t.doc, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: auto-export: %v\n", err)
		return
	}
	if path != "" {
		fmt.Fprintf(os.Stderr, "auto-backup created: %s\n", path)
	}
}

// Export flattens the current document to a tabular file. An empty
// filename picks a timestamped default. Returns an empty path, nil error
// when there are no users to export.
func (t *Tracker) Export(filename string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.exporter == nil {
		return "", fmt.Errorf("no exporter configured")
	}
	return t.exporter.Export(t.doc, filename)
}

// UserStats returns a copy of a user's record, or false for a username
// never added. Copying keeps callers from mutating tracked state outside
// the lock.
func (t *Tracker) UserStats(username string) (*store.UserRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	u, ok := t.doc.Users[username]
	if !ok {
		return nil, false
	}
	return u.Clone(), true
}

// Leaderboard returns the top n ranked entries.
func (t *Tracker) Leaderboard(n int) []store.LeaderboardEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return topN(t.doc, n)
}

// Summary aggregates store-wide statistics for reporting.
type Summary struct {
	TotalUsers       int     `json:"total_users"`
	ActiveUsers      int     `json:"active_users"`
	TotalAttempts    int     `json:"total_attempts"`
	AvgScoreAllUsers float64 `json:"avg_score_all_users"`
	LeaderboardSize  int     `json:"leaderboard_size"`
}

// ExportSummary computes store-wide statistics.
func (t *Tracker) ExportSummary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Summary{
		TotalUsers:      len(t.doc.Users),
		LeaderboardSize: len(t.doc.Leaderboard),
	}

	totalScore := 0
	for _, u := range t.doc.Users {
		s.TotalAttempts += u.Attempts
		totalScore += u.TotalScore
		if u.Attempts > 0 {
			s.ActiveUsers++
		}
	}
	if s.TotalAttempts > 0 {
		s.AvgScoreAllUsers = round2(float64(totalScore) / float64(s.TotalAttempts))
	}
	return s
}

// round2 rounds to two decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
