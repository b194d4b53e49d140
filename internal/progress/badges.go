package progress

import (
	"strings"

	"github.com/abhisek/promptgym/internal/store"
)

// Badge names. Once granted, a badge is never revoked.
const (
	BadgePerfectScore        = "Perfect Score"
	BadgeConsistentPerformer = "Consistent Performer"
	BadgeDedicatedLearner    = "Dedicated Learner"
	BadgeAdvancedMaster      = "Advanced Master"
)

// advancedPrefix marks advanced-tier scenario ids by convention.
const advancedPrefix = "a"

// awardBadges re-derives the badge set from the user's full history.
// Rules are independent; any subset may hold. A badge already present is
// neither re-added nor removed, so the set grows monotonically in
// insertion order.
func awardBadges(user *store.UserRecord) {
	if !hasBadge(user, BadgePerfectScore) {
		for _, h := range user.History {
			if h.Score == 100 {
				user.Badges = append(user.Badges, BadgePerfectScore)
				break
			}
		}
	}

	if !hasBadge(user, BadgeConsistentPerformer) {
		high := 0
		for _, h := range user.History {
			if h.Score > 80 {
				high++
			}
		}
		if high >= 3 {
			user.Badges = append(user.Badges, BadgeConsistentPerformer)
		}
	}

	if !hasBadge(user, BadgeDedicatedLearner) && user.Attempts >= 10 {
		user.Badges = append(user.Badges, BadgeDedicatedLearner)
	}

	if !hasBadge(user, BadgeAdvancedMaster) {
		count, sum := 0, 0
		for _, h := range user.History {
			if strings.HasPrefix(h.ScenarioID, advancedPrefix) {
				count++
				sum += h.Score
			}
		}
		if count >= 5 && float64(sum)/float64(count) > 85 {
			user.Badges = append(user.Badges, BadgeAdvancedMaster)
		}
	}
}

func hasBadge(user *store.UserRecord, name string) bool {
	for _, b := range user.Badges {
		if b == name {
			return true
		}
	}
	return false
}
