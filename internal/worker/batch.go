package worker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/attrparse/internal/model"
)

// ErrNotProcessed marks a target the pool stopped before running
var ErrNotProcessed = errors.New("target not processed")

// Scanner extracts a report from a listing page URL
type Scanner interface {
	ScanURL(ctx context.Context, url string) (*model.Report, error)
}

// FileExtractor extracts a report from a local record file
type FileExtractor interface {
	ExtractFile(ctx context.Context, path string) (*model.Report, error)
}

// Extractor handles both kinds of batch targets
type Extractor interface {
	Scanner
	FileExtractor
}

// TargetJob extracts one batch target, a URL or a record file
type TargetJob struct {
	Target    string
	Extractor Extractor
	Limiter   *Limiter

	index int
}

// Execute executes the job
func (j *TargetJob) Execute(ctx context.Context) Result {
	var (
		report *model.Report
		err    error
	)

	if IsURL(j.Target) {
		if j.Limiter != nil {
			if err := j.Limiter.Wait(ctx, j.Target); err != nil {
				return &TargetResult{Target: j.Target, Error: fmt.Errorf("rate limit: %w", err), index: j.index}
			}
		}
		report, err = j.Extractor.ScanURL(ctx, j.Target)
	} else {
		report, err = j.Extractor.ExtractFile(ctx, j.Target)
	}

	return &TargetResult{
		Target: j.Target,
		Report: report,
		Error:  err,
		index:  j.index,
	}
}

// TargetResult represents the result of a target job
type TargetResult struct {
	Target string
	Report *model.Report
	Error  error

	index int
}

// GetError returns the error from the result
func (r *TargetResult) GetError() error {
	return r.Error
}

// BatchProcessor processes multiple targets concurrently. Every job runs
// its own extraction, nothing is shared between jobs but the limiter.
type BatchProcessor struct {
	extractor   Extractor
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a new batch processor. A non-positive
// requestsPerSecond disables rate limiting.
func NewBatchProcessor(extractor Extractor, concurrency int, requestsPerSecond float64, burst int) *BatchProcessor {
	var limiter *Limiter
	if requestsPerSecond > 0 {
		limiter = NewLimiter(requestsPerSecond, burst)
	}

	return &BatchProcessor{
		extractor:   extractor,
		concurrency: concurrency,
		limiter:     limiter,
	}
}

// ProcessTargets processes targets concurrently. There is one result per
// target, in input order; targets skipped after ctx is done carry its error.
func (b *BatchProcessor) ProcessTargets(ctx context.Context, targets []string) []*TargetResult {
	if len(targets) == 0 {
		return []*TargetResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for i, target := range targets {
		submitted := pool.Submit(&TargetJob{
			Target:    target,
			Extractor: b.extractor,
			Limiter:   b.limiter,
			index:     i,
		})
		if !submitted {
			break
		}
	}

	out := make([]*TargetResult, len(targets))
	for _, result := range pool.Wait() {
		r := result.(*TargetResult)
		out[r.index] = r
	}

	for i, r := range out {
		if r != nil {
			continue
		}
		err := ctx.Err()
		if err == nil {
			err = ErrNotProcessed
		}
		out[i] = &TargetResult{Target: targets[i], Error: err, index: i}
	}
	return out
}

// ProcessFile reads targets from a file and processes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*TargetResult, error) {
	targets, err := ReadTargetsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read targets: %w", err)
	}

	return b.ProcessTargets(ctx, targets), nil
}

// ReadTargetsFromFile reads targets from a file (one per line), skipping
// blank lines, comments and duplicates
func ReadTargetsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var targets []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			targets = append(targets, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return targets, nil
}

// IsURL reports whether a batch target is an http(s) URL
func IsURL(target string) bool {
	lower := strings.ToLower(target)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
