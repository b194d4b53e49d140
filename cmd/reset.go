package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all recorded progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		path, err := resolveDataPath(cmd)
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Println("No progress data to delete.")
			return nil
		}

		if !force {
			fmt.Printf("Delete %s? This cannot be undone. [y/N] ", path)
			sc := bufio.NewScanner(os.Stdin)
			sc.Scan()
			if strings.ToLower(strings.TrimSpace(sc.Text())) != "y" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := os.Remove(path); err != nil {
			return fmt.Errorf("delete %s: %w", path, err)
		}
		fmt.Println("Progress data deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("force", false, "Skip the confirmation prompt")
}
