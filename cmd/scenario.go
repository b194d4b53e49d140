package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/promptgym/internal/scenario"
	"github.com/spf13/cobra"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario [level]",
	Short: "Print a training scenario without recording anything",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level := scenario.LevelBeginner
		if len(args) == 1 {
			var err error
			level, err = scenario.ParseLevel(args[0])
			if err != nil {
				return err
			}
		}

		forceAI, _ := cmd.Flags().GetBool("ai")

		var scn scenario.Scenario
		if forceAI {
			provider, closeLog := buildProvider(cmd)
			defer closeLog()
			gen := scenario.NewGenerator(provider, scenario.DefaultConfig())
			scn = gen.Generate(context.Background(), level)
		} else {
			scn = scenario.RandomPreset(level)
		}

		printScenario(scn)
		if scn.ExampleGood != "" {
			fmt.Printf("Example of a good prompt:\n%s\n", scn.ExampleGood)
		}
		return nil
	},
}

var scenarioStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show preset catalog statistics",
	Run: func(cmd *cobra.Command, args []string) {
		st := scenario.Stats()
		fmt.Printf("beginner:     %d\n", st.BeginnerCount)
		fmt.Printf("intermediate: %d\n", st.IntermediateCount)
		fmt.Printf("advanced:     %d\n", st.AdvancedCount)
		fmt.Printf("total preset: %d\n", st.TotalPreset)
	},
}

func init() {
	scenarioCmd.Flags().Bool("ai", false, "Generate a fresh scenario with the LLM")
	scenarioCmd.AddCommand(scenarioStatsCmd)
}
