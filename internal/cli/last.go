package cli

import (
	"fmt"
	"os"

	"github.com/mshibata/eliwatch/internal/pipeline"
	"github.com/spf13/cobra"
)

// lastCmd represents the last command
var lastCmd = &cobra.Command{
	Use:   "last",
	Short: "Show the most recent cached check result",
	Long: `Display the result of the most recent check run from the local cache
without contacting any source. Useful to review what the previous run
found, or from scripts that want the last status cheaply.`,
	Args: cobra.NoArgs,
	RunE: runLast,
}

func init() {
	rootCmd.AddCommand(lastCmd)
}

func runLast(cmd *cobra.Command, args []string) error {
	cfg, err := checkConfig()
	if err != nil {
		return err
	}
	cfg.Cache.Enabled = true

	checker, err := pipeline.NewChecker(cfg)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}

	run, ok := checker.LastCheck()
	if !ok {
		fmt.Fprintln(os.Stderr, "No cached check result found. Run 'eliwatch check' first.")
		return nil
	}

	fmt.Printf("Last check: %s\n\n", run.Timestamp.Format("2006-01-02 15:04:05 MST"))
	pipeline.NewRenderer(os.Stdout).RenderCheckRun(run)
	return nil
}
