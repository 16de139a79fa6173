package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/attrparse/internal/cache"
	"github.com/ppiankov/attrparse/internal/extract"
	"github.com/ppiankov/attrparse/internal/extract/parsers"
	"github.com/ppiankov/attrparse/internal/extract/sources"
	"github.com/ppiankov/attrparse/internal/model"
	"github.com/ppiankov/attrparse/internal/util"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"
)

// Pipeline orchestrates fetching, attribute discovery and extraction
type Pipeline struct {
	fetcher   *Fetcher
	sources   *sources.Registry
	parsers   []extract.Parser
	tokenizer extract.Tokenizer
	renderer  *Renderer
	config    *model.Config
	logger    *zap.Logger
}

// NewPipeline creates a new pipeline with the given configuration.
// A nil logger disables diagnostics.
func NewPipeline(cfg *model.Config, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	tokenizer, err := extract.TokenizerByName(cfg.Engine.Tokenizer)
	if err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}

	selected, err := parsers.NewRegistry().Select(cfg.Engine.Parsers...)
	if err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}

	fetcher := NewFetcher(
		cfg.HTTP.Timeout,
		cfg.HTTP.UserAgent,
		cfg.HTTP.MaxBodyBytes,
		cfg.HTTP.InsecureTLS,
		cfg.HTTP.HTTPProxy,
		cfg.HTTP.HTTPSProxy,
		cfg.HTTP.NoProxy,
	).WithRetries(cfg.HTTP.MaxRetries).WithLogger(logger.Named("fetch"))

	if cfg.HTTP.RespectRobots {
		proxy := util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy)
		fetcher.WithRobots(util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout, proxy))
	}

	if cfg.Cache.Enabled && cfg.Cache.Dir != "" {
		pages := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		fetcher.WithCache(pages, cfg.Cache.DiskTTL)
	}

	return &Pipeline{
		fetcher:   fetcher,
		sources:   sources.NewRegistry(),
		parsers:   selected,
		tokenizer: tokenizer,
		renderer:  NewRenderer(cfg.Output.IncludeFooter),
		config:    cfg,
		logger:    logger,
	}, nil
}

// ScanURL fetches a listing page and extracts its fields
func (p *Pipeline) ScanURL(ctx context.Context, url string) (*model.Report, error) {
	fetchResult, err := p.fetcher.FetchWithRetry(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	doc, err := html.Parse(strings.NewReader(fetchResult.HTML))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	report, err := p.extractDocument(doc, fetchResult.FinalURL)
	if err != nil {
		return nil, err
	}

	meta := fetchResult.Meta
	report.Subject = fetchResult.Subject
	report.FetchMeta = &meta

	return report, nil
}

// ExtractFile extracts fields from a local file. JSON and YAML files hold
// a list of records ({"value": ..., "key": ...}); HTML files are read like
// fetched listing pages.
func (p *Pipeline) ExtractFile(ctx context.Context, path string) (*model.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	subject := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		doc, err := html.Parse(strings.NewReader(string(data)))
		if err != nil {
			return nil, fmt.Errorf("parse HTML: %w", err)
		}
		report, err := p.extractDocument(doc, path)
		if err != nil {
			return nil, err
		}
		report.Subject = subject
		return report, nil

	case ".json":
		records, err := decodeRecords(data, json.Unmarshal)
		if err != nil {
			return nil, fmt.Errorf("decode JSON records: %w", err)
		}
		return p.extractRecords(records, subject, path)

	case ".yaml", ".yml":
		records, err := decodeRecords(data, yaml.Unmarshal)
		if err != nil {
			return nil, fmt.Errorf("decode YAML records: %w", err)
		}
		return p.extractRecords(records, subject, path)

	default:
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
}

// RenderReport renders the report to the specified outputs
func (p *Pipeline) RenderReport(report *model.Report, jsonPath string, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(os.Stdout, report)

	return nil
}

// extractDocument finds the attribute source for doc and runs the engine
func (p *Pipeline) extractDocument(doc *html.Node, source string) (*model.Report, error) {
	finder := p.sources.FindSource(doc, source)

	attrs, err := finder.ExtractAttributes(doc, source)
	if err != nil {
		return nil, fmt.Errorf("find attributes (%s): %w", finder.Name(), err)
	}

	p.logger.Debug("attributes found",
		zap.String("source", source),
		zap.String("finder", finder.Name()),
		zap.Int("count", len(attrs)))

	fields, err := p.engine().Run(model.Attributes(attrs...))
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	return &model.Report{
		Source:     source,
		FetchedAt:  time.Now().UTC(),
		Finder:     finder.Name(),
		Attributes: attrs,
		Fields:     fields,
	}, nil
}

// extractRecords validates records and runs the engine over them
func (p *Pipeline) extractRecords(records []model.Record, subject, source string) (*model.Report, error) {
	attrs := make([]model.Attribute, 0, len(records))
	for i, record := range records {
		attr, err := record.ToAttribute()
		if err != nil {
			return nil, &extract.InputError{Index: i, Err: err}
		}
		attrs = append(attrs, attr)
	}

	fields, err := p.engine().Run(model.Attributes(attrs...))
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	return &model.Report{
		Subject:    subject,
		Source:     source,
		FetchedAt:  time.Now().UTC(),
		Finder:     "records",
		Attributes: attrs,
		Fields:     fields,
	}, nil
}

// engine builds a fresh engine for one extraction
func (p *Pipeline) engine() *extract.Engine {
	return extract.New(p.parsers,
		extract.WithTokenizer(p.tokenizer),
		extract.WithLogger(p.logger.Named("engine")),
		extract.WithMaxDequeues(p.config.Engine.MaxDequeues),
	)
}

// decodeRecords decodes a list of records. Scalar values of any type are
// kept in their textual form; null fields are dropped.
func decodeRecords(data []byte, unmarshal func([]byte, any) error) ([]model.Record, error) {
	var raw []map[string]any
	if err := unmarshal(data, &raw); err != nil {
		return nil, err
	}

	records := make([]model.Record, 0, len(raw))
	for _, fields := range raw {
		record := make(model.Record, len(fields))
		for k, v := range fields {
			if v == nil {
				continue
			}
			record[k] = scalarString(v)
		}
		records = append(records, record)
	}
	return records, nil
}

// scalarString renders a decoded scalar without exponent notation
func scalarString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return FormatValue(v)
}
