package progress

import (
	"sort"

	"github.com/abhisek/promptgym/internal/store"
)

// updateLeaderboard replaces username's ranked entry: remove the old
// entry, append a fresh one, then stable-sort descending by average
// score. Because the fresh entry is appended last, equal averages break
// toward recency: the most recently updated of the tied users sorts
// after the others.
func updateLeaderboard(doc *store.Document, username string) {
	user := doc.Users[username]

	avg := 0.0
	if user.Attempts > 0 {
		avg = float64(user.TotalScore) / float64(user.Attempts)
	}

	kept := doc.Leaderboard[:0]
	for _, e := range doc.Leaderboard {
		if e.Username != username {
			kept = append(kept, e)
		}
	}
	doc.Leaderboard = append(kept, store.LeaderboardEntry{
		Username:      username,
		AvgScore:      round2(avg),
		TotalAttempts: user.Attempts,
		SkillLevel:    user.SkillLevel,
		Badges:        len(user.Badges),
	})

	sort.SliceStable(doc.Leaderboard, func(i, j int) bool {
		return doc.Leaderboard[i].AvgScore > doc.Leaderboard[j].AvgScore
	})
}

// topN returns the first n entries of the already-sorted leaderboard.
func topN(doc *store.Document, n int) []store.LeaderboardEntry {
	if n > len(doc.Leaderboard) {
		n = len(doc.Leaderboard)
	}
	if n < 0 {
		n = 0
	}
	out := make([]store.LeaderboardEntry, n)
	copy(out, doc.Leaderboard[:n])
	return out
}
