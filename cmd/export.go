package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [filename]",
	Short: "Export all progress to CSV",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := ""
		if len(args) == 1 {
			filename = args[0]
		}

		tracker, err := openTracker(cmd)
		if err != nil {
			return err
		}

		path, err := tracker.Export(filename)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if path == "" {
			fmt.Println("No users to export.")
			return nil
		}
		fmt.Printf("Export written: %s\n", path)
		return nil
	},
}
