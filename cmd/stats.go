package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [username]",
	Short: "Show a user's progress, or store-wide statistics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tracker, err := openTracker(cmd)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			s := tracker.ExportSummary()
			fmt.Printf("Total users:    %d\n", s.TotalUsers)
			fmt.Printf("Active users:   %d\n", s.ActiveUsers)
			fmt.Printf("Total attempts: %d\n", s.TotalAttempts)
			fmt.Printf("Average score:  %.2f\n", s.AvgScoreAllUsers)
			fmt.Printf("Leaderboard:    %d entries\n", s.LeaderboardSize)
			return nil
		}

		username := args[0]
		user, ok := tracker.UserStats(username)
		if !ok {
			fmt.Printf("No progress recorded for %q.\n", username)
			return nil
		}

		avg := 0.0
		if user.Attempts > 0 {
			avg = float64(user.TotalScore) / float64(user.Attempts)
		}

		fmt.Printf("User:        %s\n", username)
		fmt.Printf("Skill level: %s\n", user.SkillLevel)
		fmt.Printf("Attempts:    %d\n", user.Attempts)
		fmt.Printf("Total score: %d\n", user.TotalScore)
		fmt.Printf("Average:     %.2f\n", avg)
		if len(user.Badges) > 0 {
			fmt.Printf("Badges:      %s\n", strings.Join(user.Badges, ", "))
		}

		if len(user.History) > 0 {
			fmt.Println("\nRecent attempts:")
			history := user.History
			if len(history) > 5 {
				history = history[len(history)-5:]
			}
			for _, a := range history {
				fmt.Printf("  %-20s  %-6s  %3d/100\n", a.Timestamp, a.ScenarioID, a.Score)
			}
		}
		return nil
	},
}
