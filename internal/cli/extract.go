package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/ppiankov/attrparse/internal/model"
	"github.com/ppiankov/attrparse/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	extractJSON      string
	extractMD        string
	extractTokenizer string
	parserNames      []string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract fields from a local record file or saved page",
	Long: `Extract runs the parsers over a local file:
- .json / .yaml: a list of records, each with a "value" and an optional "key"
- .html: a saved listing page, read like a fetched one

Example records file:
  - key: Huurprijs
    value: € 2.250 per maand
  - value: 3 slaapkamers

Example:
  attrparse extract listing.yaml
  attrparse extract listing.json --json fields.json --tokenizer word
  attrparse extract saved-page.html --md report.md
  attrparse extract listing.yaml --parsers label,rent,deposit`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractJSON, "json", "", "output JSON path (optional)")
	extractCmd.Flags().StringVar(&extractMD, "md", "", "output Markdown path (optional)")
	extractCmd.Flags().StringVar(&extractTokenizer, "tokenizer", "", "tokenizer for attribute values (whitespace, word)")
	extractCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	addParsersFlag(extractCmd)
}

// addParsersFlag registers --parsers, which picks and orders the built-in
// parsers (label, rooms, rent, area, deposit)
func addParsersFlag(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&parserNames, "parsers", nil, "comma-separated parsers to run, in order (default: all)")
}

// applyParsersFlag overrides the configured parser selection
func applyParsersFlag(cfg *model.Config) {
	if len(parserNames) > 0 {
		cfg.Engine.Parsers = parserNames
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if extractTokenizer != "" {
		cfg.Engine.Tokenizer = extractTokenizer
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
	applyParsersFlag(cfg)

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	p, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}

	report, err := p.ExtractFile(context.Background(), path)
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ Read %d attributes (%s)\n", len(report.Attributes), report.Finder)
		fmt.Fprintf(os.Stderr, "✓ Extracted %d fields\n", len(report.Fields))
	}

	if err := p.RenderReport(report, extractJSON, extractMD, cfg.Output.Verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
