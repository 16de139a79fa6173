package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/attrparse/internal/model"
	"github.com/ppiankov/attrparse/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outJSON     string
	outMD       string
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	noFooter    bool
	noRobots    bool
	insecureTLS bool
	httpProxy   string
	httpsProxy  string
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <url>",
	Short: "Fetch a listing page and extract its fields",
	Long: `Scan fetches a single listing page and:
- Finds its attributes (definition lists, two-column tables, or text blocks)
- Routes every attribute through the built-in parsers
- Merges matches into one value per field
- Writes a JSON report and, optionally, a Markdown report

Example:
  attrparse scan https://example.com/huur/amsterdam/kerkstraat-1
  attrparse scan https://example.com/huis/42 --json huis.json --md huis.md
  attrparse scan https://example.com/huis/42 --no-cache --no-robots`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	scanCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	addHTTPFlags(scanCmd, 30*time.Second)
	scanCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	scanCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	addParsersFlag(scanCmd)
}

// addHTTPFlags registers the fetch flags shared by scan and batch
func addHTTPFlags(cmd *cobra.Command, defaultTimeout time.Duration) {
	cmd.Flags().DurationVar(&timeout, "timeout", defaultTimeout, "timeout for a single page fetch")
	cmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	cmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	cmd.Flags().BoolVar(&noRobots, "no-robots", false, "do not consult robots.txt")
	cmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	cmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

// applyHTTPFlags overrides cfg with the fetch flags set on cmd
func applyHTTPFlags(cmd *cobra.Command, cfg *model.Config) {
	flags := cmd.Flags()
	if flags.Changed("timeout") {
		cfg.HTTP.Timeout = timeout
	}
	if flags.Changed("ua") {
		cfg.HTTP.UserAgent = userAgent
	}
	if flags.Changed("max-bytes") {
		cfg.HTTP.MaxBodyBytes = maxBytes
	}
	if flags.Changed("insecure") {
		cfg.HTTP.InsecureTLS = insecureTLS
	}
	if flags.Changed("http-proxy") {
		cfg.HTTP.HTTPProxy = httpProxy
	}
	if flags.Changed("https-proxy") {
		cfg.HTTP.HTTPSProxy = httpsProxy
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if noRobots {
		cfg.HTTP.RespectRobots = false
	}
	if noFooter {
		cfg.Output.IncludeFooter = false
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	url := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyHTTPFlags(cmd, cfg)
	applyParsersFlag(cfg)

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// Retries with backoff may take several fetch timeouts
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.MaxRetries+1)*cfg.HTTP.Timeout)
	defer cancel()

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Scanning: %s\n", url)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", cfg.HTTP.Timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintf(os.Stderr, "Robots: %v\n", cfg.HTTP.RespectRobots)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}

	report, err := p.ScanURL(ctx, url)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if cfg.Output.Verbose {
		if report.FetchMeta != nil && report.FetchMeta.FromCache {
			fmt.Fprintf(os.Stderr, "✓ Page served from cache\n")
		}
		fmt.Fprintf(os.Stderr, "✓ Found %d attributes (%s)\n", len(report.Attributes), report.Finder)
		fmt.Fprintf(os.Stderr, "✓ Extracted %d fields\n", len(report.Fields))
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD, cfg.Output.Verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
