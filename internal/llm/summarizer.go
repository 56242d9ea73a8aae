package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/mshibata/eliwatch/internal/model"
)

// Summarizer turns a check run into a short prose summary for humans.
type Summarizer struct {
	provider Provider
}

// NewSummarizer creates a summarizer, or (nil, nil) when no provider is
// configured.
func NewSummarizer(cfg Config) (*Summarizer, error) {
	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}
	return &Summarizer{provider: provider}, nil
}

// Summarize generates a summary of the run's findings.
func (s *Summarizer) Summarize(ctx context.Context, run model.CheckRun) (string, error) {
	return s.provider.Complete(ctx, BuildPrompt(run))
}

// BuildPrompt renders the check run as a prompt. Only the recorded change
// notes go in; the model sees no document content.
func BuildPrompt(run model.CheckRun) string {
	var b strings.Builder
	b.WriteString("You are summarizing a change-detection run over a bilingual Japanese statute.\n")
	b.WriteString("Write a short plain-language summary (3 sentences max) of what changed, for an operations log.\n\n")

	for _, rec := range run.Results {
		fmt.Fprintf(&b, "Source: %s\n", rec.Source)
		if rec.Failed() {
			fmt.Fprintf(&b, "  check failed: %s\n", rec.Error)
			continue
		}
		for _, change := range rec.Changes {
			fmt.Fprintf(&b, "  - %s\n", change)
		}
	}

	return b.String()
}
