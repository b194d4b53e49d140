package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the top-ranked users",
	RunE: func(cmd *cobra.Command, args []string) error {
		top, _ := cmd.Flags().GetInt("top")

		tracker, err := openTracker(cmd)
		if err != nil {
			return err
		}

		entries := tracker.Leaderboard(top)
		if len(entries) == 0 {
			fmt.Println("Leaderboard is empty.")
			return nil
		}

		fmt.Printf("%-4s  %-20s  %-9s  %-8s  %-12s  %s\n",
			"Rank", "User", "Avg", "Attempts", "Level", "Badges")
		fmt.Println(strings.Repeat("─", 66))
		for i, e := range entries {
			fmt.Printf("%-4d  %-20s  %-9.2f  %-8d  %-12s  %d\n",
				i+1, e.Username, e.AvgScore, e.TotalAttempts, e.SkillLevel, e.Badges)
		}
		return nil
	},
}

func init() {
	leaderboardCmd.Flags().Int("top", 10, "Number of entries to show")
}
