package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/mshibata/eliwatch/internal/document"
	"github.com/mshibata/eliwatch/internal/eli"
	"github.com/mshibata/eliwatch/internal/model"
)

// Renderer writes conversion artifacts and prints check summaries.
// Everything here is presentation; the records themselves are the contract.
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer printing to out (stdout in the CLI).
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// WriteJSONLD writes the semantic graph as JSON-LD text.
func (r *Renderer) WriteJSONLD(graph *eli.SemanticGraph, path string) error {
	data, err := eli.Marshal(graph)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// WriteStructuredXML writes the canonical intermediate document.
func (r *Renderer) WriteStructuredXML(doc *model.StructuredDocument, path string) error {
	data, err := document.WriteXML(doc)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderCheckRun prints per-source result blocks followed by a summary
// table. Column widths use display width so Japanese law names line up.
func (r *Renderer) RenderCheckRun(run model.CheckRun) {
	fmt.Fprintf(r.out, "Check run at %s\n\n", run.Timestamp.Format("2006-01-02 15:04:05 MST"))

	for _, rec := range run.Results {
		fmt.Fprintf(r.out, "%s\n", rec.Source)
		fmt.Fprintf(r.out, "  time:   %s\n", rec.Timestamp)
		fmt.Fprintf(r.out, "  status: %s\n", statusLabel(rec))
		if rec.Failed() {
			fmt.Fprintf(r.out, "  error:  %s\n", rec.Error)
		}
		for _, change := range rec.Changes {
			fmt.Fprintf(r.out, "  - %s\n", change)
		}
		fmt.Fprintln(r.out)
	}

	r.renderSummaryTable(run)
}

func statusLabel(rec model.SnapshotRecord) string {
	switch {
	case rec.Failed():
		return "failed"
	case rec.HasChanges:
		return "changed"
	default:
		return "unchanged"
	}
}

func (r *Renderer) renderSummaryTable(run model.CheckRun) {
	headers := []string{"Source", "Status", "Changes"}
	rows := make([][]string, 0, len(run.Results))
	for _, rec := range run.Results {
		rows = append(rows, []string{
			rec.Source,
			statusLabel(rec),
			fmt.Sprintf("%d", len(rec.Changes)),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = runewidth.FillRight(cell, widths[i])
		}
		fmt.Fprintf(r.out, "  %s\n", strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	printRow(headers)
	sep := make([]string, len(headers))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	printRow(sep)
	for _, row := range rows {
		printRow(row)
	}
}
