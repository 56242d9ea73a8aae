package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mshibata/eliwatch/internal/model"
	"github.com/mshibata/eliwatch/internal/pipeline"
	"github.com/spf13/cobra"
)

// ErrChangesDetected signals that at least one source changed since the
// previous run. It carries the distinct exit code, not a failure.
var ErrChangesDetected = errors.New("changes detected")

var (
	checkTimeout   time.Duration
	checkUserAgent string
	checkMaxBytes  int64
	checkNoCache   bool
	checkNoRobots  bool
	dataDir        string
	llmEnabled     bool
	llmProvider    string
	llmModel       string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check every configured source for changes",
	Long: `Check downloads each configured source, fingerprints the normalized
content and compares it against the stored snapshot. Changed snapshots
replace the stored copy; a retrieval failure leaves the snapshot intact
so the next run compares against the last good state.

Exit status is 0 when nothing changed, 1 when any source changed and
2 on failure.

Example:
  eliwatch check
  eliwatch check --data ./snapshots --no-cache
  eliwatch check --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	// HTTP flags
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 5*time.Minute, "overall check timeout")
	checkCmd.Flags().StringVar(&checkUserAgent, "ua", "", "HTTP User-Agent override")
	checkCmd.Flags().Int64Var(&checkMaxBytes, "max-bytes", 0, "max response bytes to read (0 = default)")
	checkCmd.Flags().BoolVar(&checkNoRobots, "no-robots", false, "skip robots.txt checks")

	// Storage flags
	checkCmd.Flags().StringVar(&dataDir, "data", "", "snapshot directory override")
	checkCmd.Flags().BoolVar(&checkNoCache, "no-cache", false, "disable the last-check cache")

	// LLM flags
	checkCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM change summary")
	checkCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, ollama)")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg, err := checkConfig()
	if err != nil {
		return err
	}

	checker, err := pipeline.NewChecker(cfg)
	if err != nil {
		return fmt.Errorf("check setup failed: %w", err)
	}

	if verbose {
		for _, src := range cfg.Sources {
			fmt.Fprintf(os.Stderr, "Checking: %s (%s)\n", src.Name, src.URL)
		}
		fmt.Fprintln(os.Stderr)
	}

	run := checker.Run(ctx)

	r := pipeline.NewRenderer(os.Stdout)
	r.RenderCheckRun(run)

	if summary := checker.Summarize(ctx, run); summary != "" {
		fmt.Println()
		fmt.Println("Summary:")
		fmt.Println(summary)
	}

	if run.AnyFailures() {
		return fmt.Errorf("one or more sources failed")
	}
	if run.AnyChanges() {
		return ErrChangesDetected
	}
	return nil
}

// checkConfig builds the effective configuration from defaults and flags.
func checkConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = checkTimeout
	if checkUserAgent != "" {
		cfg.HTTP.UserAgent = checkUserAgent
	}
	if checkMaxBytes > 0 {
		cfg.HTTP.MaxBodyBytes = checkMaxBytes
	}
	if checkNoRobots {
		cfg.HTTP.RespectRobots = false
	}
	if dataDir != "" {
		cfg.Data.Dir = dataDir
	}
	cfg.Cache.Enabled = !checkNoCache
	cfg.Output.Verbose = verbose

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		if llmModel != "" {
			cfg.LLM.Model = llmModel
		}
		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	return cfg, nil
}
