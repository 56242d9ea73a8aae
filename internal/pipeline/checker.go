package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mshibata/eliwatch/internal/cache"
	"github.com/mshibata/eliwatch/internal/diff"
	"github.com/mshibata/eliwatch/internal/fetch"
	"github.com/mshibata/eliwatch/internal/llm"
	"github.com/mshibata/eliwatch/internal/model"
)

// Checker runs the diff engine over every configured source and records
// the outcome in the run cache.
type Checker struct {
	engine     *diff.Engine
	sources    []model.SourceConfig
	runCache   *cache.RunCache // nil when caching is disabled
	summarizer *llm.Summarizer // nil unless an LLM provider is configured
}

// NewChecker wires a checker from configuration.
func NewChecker(cfg *model.Config) (*Checker, error) {
	store, err := diff.NewFileStore(cfg.Data.Dir)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}

	c := &Checker{
		engine:  diff.NewEngine(store, fetch.New(cfg.HTTP)),
		sources: cfg.Sources,
	}

	if cfg.Cache.Enabled {
		c.runCache = cache.NewRunCache(cache.NewLayeredCache(5*time.Minute, cfg.Cache.Dir, cfg.Cache.TTL))
	}

	if cfg.LLM.Provider != "" {
		summarizer, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			c.summarizer = summarizer
		}
	}

	return c, nil
}

// Run checks every source in order. Sources are isolated: one source's
// failure is recorded and the next source still runs. The resulting
// CheckRun overwrites the cache's last-check slot best-effort.
func (c *Checker) Run(ctx context.Context) model.CheckRun {
	run := model.CheckRun{Timestamp: time.Now().UTC()}

	for _, src := range c.sources {
		run.Results = append(run.Results, c.engine.Check(ctx, src))
	}

	if c.runCache != nil {
		if err := c.runCache.SaveLastCheck(run); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save check cache: %v\n", err)
		}
	}

	return run
}

// Summarize produces the optional prose summary of a run. Returns "" when
// no summarizer is configured or generation fails; a failure is a warning,
// never an error for the run.
func (c *Checker) Summarize(ctx context.Context, run model.CheckRun) string {
	if c.summarizer == nil {
		return ""
	}
	summary, err := c.summarizer.Summarize(ctx, run)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
		return ""
	}
	return summary
}

// LastCheck exposes the cached previous run for display.
func (c *Checker) LastCheck() (model.CheckRun, bool) {
	if c.runCache == nil {
		return model.CheckRun{}, false
	}
	return c.runCache.LastCheck()
}
