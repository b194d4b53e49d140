package progress

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/abhisek/promptgym/internal/store"
)

// fakeExporter records export calls without touching the filesystem.
type fakeExporter struct {
	calls int
	path  string
	err   error
}

func (f *fakeExporter) Export(doc *store.Document, filename string) (string, error) {
	f.calls++
	return f.path, f.err
}

func newTestTracker(t *testing.T) (*Tracker, *fakeExporter, *store.Store) {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "user_progress.json"))
	ex := &fakeExporter{path: "export.csv"}
	tr := New(st, ex)

	// Deterministic, strictly increasing timestamps.
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	tr.now = func() time.Time {
		base = base.Add(time.Minute)
		return base
	}
	return tr, ex, st
}

func record(t *testing.T, tr *Tracker, user, scenarioID string, score int) {
	t.Helper()
	tr.RecordAttempt(user, scenarioID, score, store.Evaluation{TotalScore: score}, "prompt text")
}

func TestRecordAttempt_CountersMatchHistory(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	scores := []int{40, 75, 100, 62, 88}
	for _, s := range scores {
		record(t, tr, "alice", "b1", s)
	}

	user, ok := tr.UserStats("alice")
	if !ok {
		t.Fatal("expected alice to exist")
	}

	sum := 0
	for _, h := range user.History {
		sum += h.Score
	}
	if user.TotalScore != sum {
		t.Errorf("total_score %d != history sum %d", user.TotalScore, sum)
	}
	if user.Attempts != len(user.History) {
		t.Errorf("attempts %d != history length %d", user.Attempts, len(user.History))
	}
	if user.Attempts != len(scores) {
		t.Errorf("expected %d attempts, got %d", len(scores), user.Attempts)
	}
}

func TestAddUser_Idempotent(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	tr.AddUser("bob")
	record(t, tr, "bob", "b1", 90)

	user, _ := tr.UserStats("bob")
	snapshot := *user
	history := append([]store.Attempt(nil), user.History...)

	tr.AddUser("bob")

	after, _ := tr.UserStats("bob")
	if !reflect.DeepEqual(snapshot.Badges, after.Badges) ||
		snapshot.TotalScore != after.TotalScore ||
		snapshot.Attempts != after.Attempts ||
		snapshot.SkillLevel != after.SkillLevel ||
		!reflect.DeepEqual(history, after.History) {
		t.Error("AddUser on existing user modified the record")
	}
}

func TestRecordAttempt_NewUserCreatedOnDemand(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	record(t, tr, "carol", "b1", 50)

	user, ok := tr.UserStats("carol")
	if !ok {
		t.Fatal("expected carol to be created")
	}
	if user.SkillLevel != store.LevelBeginner {
		t.Errorf("expected beginner, got %s", user.SkillLevel)
	}
}

func TestSkillLevel_HighAverageThreeAttempts(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	// Average 95 after three attempts: intermediate (advanced needs 5).
	for i, s := range []int{100, 90, 95} {
		record(t, tr, "alice", []string{"b1", "i1", "a1"}[i], s)
	}

	user, _ := tr.UserStats("alice")
	if user.TotalScore != 285 {
		t.Errorf("expected total 285, got %d", user.TotalScore)
	}
	if user.Attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", user.Attempts)
	}
	if user.SkillLevel != store.LevelIntermediate {
		t.Errorf("expected intermediate, got %s", user.SkillLevel)
	}
	if !hasBadge(user, BadgePerfectScore) {
		t.Error("expected Perfect Score badge")
	}
}

func TestSkillLevel_AdvancedAfterFiveStrongAttempts(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	for range 5 {
		record(t, tr, "bob", "a1", 90)
	}

	user, _ := tr.UserStats("bob")
	if user.SkillLevel != store.LevelAdvanced {
		t.Errorf("expected advanced, got %s", user.SkillLevel)
	}
	if !hasBadge(user, BadgeAdvancedMaster) {
		t.Error("expected Advanced Master badge")
	}
}

func TestSkillLevel_CanDowngradeFromAdvanced(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	for range 5 {
		record(t, tr, "dave", "a1", 90)
	}
	user, _ := tr.UserStats("dave")
	if user.SkillLevel != store.LevelAdvanced {
		t.Fatalf("expected advanced, got %s", user.SkillLevel)
	}

	// Drag the average below 85 but above 70.
	for range 3 {
		record(t, tr, "dave", "a2", 50)
	}
	user, _ = tr.UserStats("dave")
	if user.SkillLevel != store.LevelIntermediate {
		t.Errorf("expected downgrade to intermediate, got %s", user.SkillLevel)
	}
}

func TestLeaderboard_OneEntryPerUser(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	record(t, tr, "alice", "b1", 80)
	record(t, tr, "alice", "b2", 70)
	record(t, tr, "bob", "b1", 60)
	record(t, tr, "bob", "b1", 90)
	record(t, tr, "carol", "i1", 75)

	entries := tr.Leaderboard(100)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	seen := map[string]bool{}
	for _, e := range entries {
		if seen[e.Username] {
			t.Errorf("duplicate leaderboard entry for %s", e.Username)
		}
		seen[e.Username] = true
	}
}

func TestLeaderboard_TieBreakByRecency(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	record(t, tr, "x", "b1", 80)
	record(t, tr, "y", "b1", 80)

	entries := tr.Leaderboard(10)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Username != "x" || entries[1].Username != "y" {
		t.Errorf("expected y to sort after x on tie, got [%s, %s]",
			entries[0].Username, entries[1].Username)
	}
}

func TestLeaderboard_SortedDescending(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	record(t, tr, "low", "b1", 40)
	record(t, tr, "high", "b1", 95)
	record(t, tr, "mid", "b1", 70)

	entries := tr.Leaderboard(10)
	for i := 1; i < len(entries); i++ {
		if entries[i-1].AvgScore < entries[i].AvgScore {
			t.Errorf("leaderboard not sorted descending at %d", i)
		}
	}
	if entries[0].Username != "high" {
		t.Errorf("expected high first, got %s", entries[0].Username)
	}
}

func TestAutoExport_EveryFifthUser(t *testing.T) {
	tr, ex, _ := newTestTracker(t)

	users := []string{"u1", "u2", "u3", "u4"}
	for _, u := range users {
		record(t, tr, u, "b1", 50)
	}
	if ex.calls != 0 {
		t.Errorf("expected no auto-export below 5 users, got %d calls", ex.calls)
	}

	record(t, tr, "u5", "b1", 50)
	if ex.calls != 1 {
		t.Errorf("expected one auto-export at 5 users, got %d calls", ex.calls)
	}

	// Repeat attempts at 5 users keep triggering the checkpoint.
	record(t, tr, "u1", "b2", 60)
	if ex.calls != 2 {
		t.Errorf("expected checkpoint per attempt while count is a multiple of 5, got %d", ex.calls)
	}
}

func TestRecordAttempt_PersistsAcrossReload(t *testing.T) {
	tr, _, st := newTestTracker(t)

	record(t, tr, "alice", "b1", 88)
	record(t, tr, "bob", "a1", 91)

	reloaded := New(st, nil)

	user, ok := reloaded.UserStats("alice")
	if !ok {
		t.Fatal("alice missing after reload")
	}
	if user.TotalScore != 88 || user.Attempts != 1 {
		t.Errorf("unexpected reloaded state: score=%d attempts=%d", user.TotalScore, user.Attempts)
	}
	if len(reloaded.Leaderboard(10)) != 2 {
		t.Error("leaderboard missing after reload")
	}
}

func TestUserStats_UnknownUser(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	if _, ok := tr.UserStats("ghost"); ok {
		t.Error("expected absent result for unknown user")
	}
}

func TestUserStats_ReturnsCopy(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	record(t, tr, "alice", "b1", 90)

	user, ok := tr.UserStats("alice")
	if !ok {
		t.Fatal("expected alice to exist")
	}

	user.TotalScore = 9999
	user.Badges = append(user.Badges, "forged badge")
	user.History[0].Score = -1
	user.History[0].Evaluation.Strengths = append(user.History[0].Evaluation.Strengths, "forged strength")

	fresh, _ := tr.UserStats("alice")
	if fresh.TotalScore != 90 {
		t.Errorf("mutating the returned record changed tracked state: total score %d", fresh.TotalScore)
	}
	if len(fresh.Badges) != 0 {
		t.Errorf("mutating the returned record changed tracked badges: %v", fresh.Badges)
	}
	if fresh.History[0].Score != 90 {
		t.Errorf("mutating the returned history changed tracked state: score %d", fresh.History[0].Score)
	}
	if len(fresh.History[0].Evaluation.Strengths) != 0 {
		t.Errorf("mutating nested evaluation slices changed tracked state: %v", fresh.History[0].Evaluation.Strengths)
	}
}

func TestExportSummary(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	record(t, tr, "alice", "b1", 80)
	record(t, tr, "alice", "b2", 90)
	record(t, tr, "bob", "b1", 70)
	tr.AddUser("idle")

	s := tr.ExportSummary()
	if s.TotalUsers != 3 {
		t.Errorf("expected 3 total users, got %d", s.TotalUsers)
	}
	if s.ActiveUsers != 2 {
		t.Errorf("expected 2 active users, got %d", s.ActiveUsers)
	}
	if s.TotalAttempts != 3 {
		t.Errorf("expected 3 attempts, got %d", s.TotalAttempts)
	}
	if s.AvgScoreAllUsers != 80.0 {
		t.Errorf("expected avg 80.00, got %v", s.AvgScoreAllUsers)
	}
	if s.LeaderboardSize != 2 {
		t.Errorf("expected leaderboard size 2, got %d", s.LeaderboardSize)
	}
}

func TestLeaderboard_AvgRounding(t *testing.T) {
	tr, _, _ := newTestTracker(t)

	// 100 + 50 + 50 over 3 attempts = 66.666... → 66.67
	record(t, tr, "alice", "b1", 100)
	record(t, tr, "alice", "b2", 50)
	record(t, tr, "alice", "b3", 50)

	entries := tr.Leaderboard(1)
	if entries[0].AvgScore != 66.67 {
		t.Errorf("expected 66.67, got %v", entries[0].AvgScore)
	}
}
