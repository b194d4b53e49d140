package progress

import (
	"reflect"
	"testing"

	"github.com/abhisek/promptgym/internal/store"
)

func userWithHistory(attempts []store.Attempt) *store.UserRecord {
	u := store.NewUserRecord()
	for _, a := range attempts {
		u.History = append(u.History, a)
		u.Attempts++
		u.TotalScore += a.Score
	}
	return u
}

func attempt(scenarioID string, score int) store.Attempt {
	return store.Attempt{ScenarioID: scenarioID, Score: score}
}

func TestAwardBadges_PerfectScore(t *testing.T) {
	u := userWithHistory([]store.Attempt{attempt("b1", 99)})
	awardBadges(u)
	if hasBadge(u, BadgePerfectScore) {
		t.Error("99 must not earn Perfect Score")
	}

	u.History = append(u.History, attempt("b2", 100))
	u.Attempts++
	u.TotalScore += 100
	awardBadges(u)
	if !hasBadge(u, BadgePerfectScore) {
		t.Error("expected Perfect Score for a 100")
	}
}

func TestAwardBadges_ConsistentPerformer(t *testing.T) {
	// Exactly 80 does not count: the threshold is strict.
	u := userWithHistory([]store.Attempt{
		attempt("b1", 81), attempt("b2", 90), attempt("b3", 80),
	})
	awardBadges(u)
	if hasBadge(u, BadgeConsistentPerformer) {
		t.Error("two scores above 80 must not earn Consistent Performer")
	}

	u.History = append(u.History, attempt("i1", 85))
	u.Attempts++
	u.TotalScore += 85
	awardBadges(u)
	if !hasBadge(u, BadgeConsistentPerformer) {
		t.Error("expected Consistent Performer with three scores above 80")
	}
}

func TestAwardBadges_DedicatedLearner(t *testing.T) {
	var attempts []store.Attempt
	for range 9 {
		attempts = append(attempts, attempt("b1", 10))
	}
	u := userWithHistory(attempts)
	awardBadges(u)
	if hasBadge(u, BadgeDedicatedLearner) {
		t.Error("9 attempts must not earn Dedicated Learner")
	}

	u.History = append(u.History, attempt("b1", 10))
	u.Attempts++
	u.TotalScore += 10
	awardBadges(u)
	if !hasBadge(u, BadgeDedicatedLearner) {
		t.Error("expected Dedicated Learner at 10 attempts")
	}
}

func TestAwardBadges_AdvancedMaster(t *testing.T) {
	// Average of exactly 85 over advanced attempts is not enough.
	var attempts []store.Attempt
	for range 5 {
		attempts = append(attempts, attempt("a1", 85))
	}
	u := userWithHistory(attempts)
	awardBadges(u)
	if hasBadge(u, BadgeAdvancedMaster) {
		t.Error("advanced average of exactly 85 must not earn Advanced Master")
	}

	u.History = append(u.History, attempt("a2", 100))
	u.Attempts++
	u.TotalScore += 100
	awardBadges(u)
	if !hasBadge(u, BadgeAdvancedMaster) {
		t.Error("expected Advanced Master once advanced average exceeds 85")
	}
}

func TestAwardBadges_AdvancedMasterIgnoresOtherTiers(t *testing.T) {
	u := userWithHistory([]store.Attempt{
		attempt("a1", 90), attempt("a2", 90), attempt("a3", 90),
		attempt("a1", 90), attempt("b1", 100), attempt("i1", 100),
	})
	awardBadges(u)
	if hasBadge(u, BadgeAdvancedMaster) {
		t.Error("only four advanced attempts: beginner and intermediate scores must not count")
	}
}

func TestAwardBadges_NeverDuplicatesOrRevokes(t *testing.T) {
	u := userWithHistory([]store.Attempt{attempt("b1", 100)})
	awardBadges(u)
	first := append([]string(nil), u.Badges...)

	awardBadges(u)
	awardBadges(u)
	if !reflect.DeepEqual(first, u.Badges) {
		t.Errorf("badge set changed on repeat evaluation: %v -> %v", first, u.Badges)
	}
}
