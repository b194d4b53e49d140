package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/promptgym/internal/evaluator"
	"github.com/abhisek/promptgym/internal/llm"
	"github.com/abhisek/promptgym/internal/scenario"
	"github.com/abhisek/promptgym/internal/store"
	"github.com/spf13/cobra"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Practice a scenario and record the scored attempt",
	Long: `Fetches a training scenario, reads your prompt from stdin, has the
configured LLM score it, and records the attempt in your progress.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("user")
		levelFlag, _ := cmd.Flags().GetString("level")
		forceAI, _ := cmd.Flags().GetBool("ai")

		tracker, err := openTracker(cmd)
		if err != nil {
			return err
		}

		level, err := pickLevel(tracker, username, levelFlag)
		if err != nil {
			return err
		}

		provider, closeLog := buildProvider(cmd)
		defer closeLog()
		gen := scenario.NewGenerator(provider, scenario.DefaultConfig())

		ctx := context.Background()
		var scn scenario.Scenario
		if forceAI {
			scn = gen.Generate(ctx, level)
		} else {
			scn = gen.Mixed(ctx, level)
		}

		printScenario(scn)

		fmt.Println("Write your prompt, then press Ctrl+D:")
		fmt.Println()
		prompt, err := readPrompt(os.Stdin)
		if err != nil {
			return fmt.Errorf("read prompt: %w", err)
		}
		if strings.TrimSpace(prompt) == "" {
			return fmt.Errorf("empty prompt, nothing to evaluate")
		}

		eval := evaluator.New(provider, evaluator.DefaultConfig()).Evaluate(ctx, prompt, scn)

		before := badgeSet(tracker, username)
		tracker.RecordAttempt(username, scn.ID, eval.TotalScore, eval, prompt)

		printEvaluation(eval)
		printNewBadges(tracker, username, before)
		return nil
	},
}

func init() {
	practiceCmd.Flags().String("user", "", "Username to record the attempt under")
	practiceCmd.Flags().String("level", "", "Scenario level: beginner, intermediate or advanced (default: your current skill level)")
	practiceCmd.Flags().Bool("ai", false, "Force an AI-generated scenario instead of the preset catalog")
	practiceCmd.MarkFlagRequired("user")
}

// pickLevel resolves the scenario level: explicit flag first, else the
// user's stored skill level, else beginner.
func pickLevel(tracker userStatser, username, flag string) (scenario.Level, error) {
	if flag != "" {
		return scenario.ParseLevel(flag)
	}
	if user, ok := tracker.UserStats(username); ok {
		return scenario.Level(user.SkillLevel), nil
	}
	return scenario.LevelBeginner, nil
}

type userStatser interface {
	UserStats(username string) (*store.UserRecord, bool)
}

// buildProvider assembles the LLM provider from the environment. Without
// any API key it degrades to the mock provider, which makes every
// evaluation fall back to the documented neutral record. The returned
// cleanup closes the event database backing the request log.
func buildProvider(cmd *cobra.Command) (llm.Provider, func()) {
	noop := func() {}

	cfg := llm.ConfigFromEnv()
	if cfg.Validate() != nil {
		if discovered, ok := llm.DiscoverConfig(); ok {
			cfg = discovered
		} else {
			fmt.Fprintln(os.Stderr, "warning: no LLM API key configured; attempts will receive fallback evaluations")
			return llm.NewMockProvider(), noop
		}
	}

	log, err := openEventLog(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return llm.NewMockProvider(), noop
	}

	provider, err := llm.NewProvider(context.Background(), cfg, log)
	if err != nil {
		log.Close()
		fmt.Fprintf(os.Stderr, "warning: %v; attempts will receive fallback evaluations\n", err)
		return llm.NewMockProvider(), noop
	}
	return provider, func() { log.Close() }
}

func readPrompt(r *os.File) (string, error) {
	var b strings.Builder
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		b.WriteString(sc.Text())
		b.WriteString("\n")
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func printScenario(scn scenario.Scenario) {
	fmt.Printf("\n[%s] %s\n\n", scn.ID, scn.Title)
	fmt.Println(scn.Description)
	fmt.Printf("\nGoal:    %s\n", scn.Goal)
	fmt.Printf("Context: %s\n", scn.Context)
	fmt.Printf("Product: %s\n", scn.Product)
	if len(scn.Hints) > 0 {
		fmt.Println("\nHints:")
		for _, h := range scn.Hints {
			fmt.Printf("  - %s\n", h)
		}
	}
	fmt.Println()
}

func printEvaluation(eval store.Evaluation) {
	fmt.Println()
	fmt.Printf("Clarity        %2d/25\n", eval.ClarityScore)
	fmt.Printf("Specificity    %2d/25\n", eval.SpecificityScore)
	fmt.Printf("Structure      %2d/25\n", eval.StructureScore)
	fmt.Printf("Task alignment %2d/25\n", eval.TaskAlignmentScore)
	fmt.Printf("Total          %3d/100\n", eval.TotalScore)

	if eval.Feedback != "" {
		fmt.Printf("\nFeedback:\n%s\n", eval.Feedback)
	}
	if len(eval.Strengths) > 0 {
		fmt.Println("\nStrengths:")
		for _, s := range eval.Strengths {
			fmt.Printf("  + %s\n", s)
		}
	}
	if len(eval.Improvements) > 0 {
		fmt.Println("\nImprovements:")
		for _, s := range eval.Improvements {
			fmt.Printf("  - %s\n", s)
		}
	}
}

func badgeSet(tracker userStatser, username string) map[string]bool {
	set := make(map[string]bool)
	if user, ok := tracker.UserStats(username); ok {
		for _, b := range user.Badges {
			set[b] = true
		}
	}
	return set
}

func printNewBadges(tracker userStatser, username string, before map[string]bool) {
	user, ok := tracker.UserStats(username)
	if !ok {
		return
	}
	for _, b := range user.Badges {
		if !before[b] {
			fmt.Printf("\nNew badge earned: %s\n", b)
		}
	}
	fmt.Printf("\nSkill level: %s  |  Attempts: %d  |  Total score: %d\n",
		user.SkillLevel, user.Attempts, user.TotalScore)
}
