package progress

import (
	"testing"

	"github.com/abhisek/promptgym/internal/store"
)

func docWithUser(username string, totalScore, attempts int) *store.Document {
	doc := store.NewDocument()
	u := store.NewUserRecord()
	u.TotalScore = totalScore
	u.Attempts = attempts
	doc.Users[username] = u
	return doc
}

func TestUpdateLeaderboard_ReplacesExistingEntry(t *testing.T) {
	doc := docWithUser("alice", 50, 1)
	updateLeaderboard(doc, "alice")

	doc.Users["alice"].TotalScore = 150
	doc.Users["alice"].Attempts = 2
	updateLeaderboard(doc, "alice")

	if len(doc.Leaderboard) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(doc.Leaderboard))
	}
	if doc.Leaderboard[0].AvgScore != 75.0 {
		t.Errorf("expected refreshed average 75, got %v", doc.Leaderboard[0].AvgScore)
	}
	if doc.Leaderboard[0].TotalAttempts != 2 {
		t.Errorf("expected 2 attempts, got %d", doc.Leaderboard[0].TotalAttempts)
	}
}

func TestUpdateLeaderboard_ZeroAttempts(t *testing.T) {
	doc := docWithUser("alice", 0, 0)
	updateLeaderboard(doc, "alice")

	if doc.Leaderboard[0].AvgScore != 0 {
		t.Errorf("expected zero average, got %v", doc.Leaderboard[0].AvgScore)
	}
}

func TestUpdateLeaderboard_CarriesSkillAndBadges(t *testing.T) {
	doc := docWithUser("alice", 450, 5)
	doc.Users["alice"].SkillLevel = store.LevelAdvanced
	doc.Users["alice"].Badges = []string{BadgePerfectScore, BadgeAdvancedMaster}
	updateLeaderboard(doc, "alice")

	e := doc.Leaderboard[0]
	if e.SkillLevel != store.LevelAdvanced {
		t.Errorf("expected advanced, got %s", e.SkillLevel)
	}
	if e.Badges != 2 {
		t.Errorf("expected badge count 2, got %d", e.Badges)
	}
}

func TestTopN_Clamps(t *testing.T) {
	doc := store.NewDocument()
	for _, name := range []string{"a", "b", "c"} {
		u := store.NewUserRecord()
		u.TotalScore, u.Attempts = 50, 1
		doc.Users[name] = u
		updateLeaderboard(doc, name)
	}

	if got := len(topN(doc, 2)); got != 2 {
		t.Errorf("topN(2) returned %d entries", got)
	}
	if got := len(topN(doc, 10)); got != 3 {
		t.Errorf("topN(10) returned %d entries", got)
	}
	if got := len(topN(doc, -1)); got != 0 {
		t.Errorf("topN(-1) returned %d entries", got)
	}
}

func TestTopN_ReturnsCopy(t *testing.T) {
	doc := docWithUser("alice", 80, 1)
	updateLeaderboard(doc, "alice")

	out := topN(doc, 1)
	out[0].Username = "mutated"
	if doc.Leaderboard[0].Username != "alice" {
		t.Error("topN must not alias the stored leaderboard")
	}
}
