package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/abhisek/promptgym/internal/export"
	"github.com/abhisek/promptgym/internal/progress"
	"github.com/abhisek/promptgym/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "promptgym",
	Short: "Prompt engineering trainer",
	Long:  "Promptgym lets you practice writing prompts against realistic scenarios, get AI-scored feedback, and track your progress, badges and ranking.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data", "", "Path to the progress JSON file (overrides PROMPTGYM_DATA env var)")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(scenarioCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDataPath returns the progress file path using --data (highest
// priority), then PROMPTGYM_DATA, then the default XDG path.
func resolveDataPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("data"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultPath()
}

// openTracker builds the progress tracker over the resolved data path.
// Exports land in the current working directory.
func openTracker(cmd *cobra.Command) (*progress.Tracker, error) {
	path, err := resolveDataPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve data path: %w", err)
	}
	return progress.New(store.New(path), export.NewCSV("")), nil
}

// openEventLog opens the LLM request database living next to the data file.
// The caller owns the returned log and must Close it.
func openEventLog(cmd *cobra.Command) (*store.EventLog, error) {
	path, err := resolveDataPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve data path: %w", err)
	}
	return store.OpenEventLog(filepath.Join(filepath.Dir(path), "llm_events.db"))
}
