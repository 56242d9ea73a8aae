package cli

import (
	"fmt"
	"os"

	"github.com/mshibata/eliwatch/internal/model"
	"github.com/mshibata/eliwatch/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSONLD string
	outXML    string
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <japanese.xml> [english.xml]",
	Short: "Convert source XML into a structured document and JSON-LD",
	Long: `Convert parses the Japanese statute XML (and, when given, the English
translation), aligns the translation article by article and writes the
result as a structured XML document and an ELI JSON-LD graph.

When the English source is omitted every article is marked as a pending
translation and the graph carries empty English content.

Example:
  eliwatch convert RadioAct_ja.xml RadioAct_en.xml
  eliwatch convert RadioAct_ja.xml --jsonld out/radio_act.jsonld`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Output flags
	convertCmd.Flags().StringVar(&outJSONLD, "jsonld", "radio_act_eli.jsonld", "output JSON-LD path")
	convertCmd.Flags().StringVar(&outXML, "xml", "", "output structured XML path (optional)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	jaXML, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read Japanese source: %w", err)
	}

	var enXML []byte
	if len(args) == 2 {
		enXML, err = os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read English source: %w", err)
		}
	}

	cfg := model.DefaultConfig()
	result, err := pipeline.NewConverter(cfg).Convert(jaXML, enXML)
	if err != nil {
		return fmt.Errorf("convert failed: %w", err)
	}

	if verbose {
		pending := 0
		for _, a := range result.Document.Articles {
			if a.TranslationStatus == model.TranslationPending {
				pending++
			}
		}
		fmt.Fprintf(os.Stderr, "✓ Extracted %d articles\n", len(result.Document.Articles))
		fmt.Fprintf(os.Stderr, "✓ Pending translations: %d\n", pending)
		fmt.Fprintln(os.Stderr)
	}

	r := pipeline.NewRenderer(os.Stdout)
	if err := r.WriteJSONLD(result.Graph, outJSONLD); err != nil {
		return fmt.Errorf("write JSON-LD: %w", err)
	}
	fmt.Fprintf(os.Stderr, "JSON-LD written to %s\n", outJSONLD)

	if outXML != "" {
		if err := r.WriteStructuredXML(result.Document, outXML); err != nil {
			return fmt.Errorf("write structured XML: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Structured XML written to %s\n", outXML)
	}

	return nil
}
