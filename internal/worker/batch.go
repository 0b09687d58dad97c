package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/claimforge/internal/model"
)

// Runner produces a claim report for one source (file path or URL)
type Runner interface {
	Process(ctx context.Context, source string) (*model.Report, error)
}

// SourceJob generates claims for one source of a batch
type SourceJob struct {
	Index   int
	Source  string
	Runner  Runner
	Limiter *Limiter // nil disables rate limiting
}

// Execute executes the source job
func (j *SourceJob) Execute(ctx context.Context) Result {
	result := &SourceResult{Index: j.Index, Source: j.Source}

	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.Source); err != nil {
			result.Error = fmt.Errorf("rate limit: %w", err)
			return result
		}
	}

	result.Report, result.Error = j.Runner.Process(ctx, j.Source)
	return result
}

// SourceResult represents the result of a source job
type SourceResult struct {
	Index  int // Position of the source in the batch
	Source string
	Report *model.Report
	Error  error
}

// GetError returns the error from the source result
func (r *SourceResult) GetError() error {
	return r.Error
}

// BatchProcessor processes multiple sources concurrently
type BatchProcessor struct {
	runner      Runner
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a new batch processor. URL sources are limited
// per host to requestsPerSecond; a non-positive rate disables limiting.
func NewBatchProcessor(runner Runner, concurrency int, requestsPerSecond float64, burst int) *BatchProcessor {
	b := &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
	}
	if requestsPerSecond > 0 {
		b.limiter = NewLimiter(requestsPerSecond, burst)
	}
	return b
}

// ProcessSources processes multiple sources concurrently and returns one
// result per source in input order
func (b *BatchProcessor) ProcessSources(ctx context.Context, sources []string) []*SourceResult {
	if len(sources) == 0 {
		return []*SourceResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for i, source := range sources {
		pool.Submit(&SourceJob{
			Index:   i,
			Source:  source,
			Runner:  b.runner,
			Limiter: b.limiter,
		})
	}

	results := pool.Wait()

	out := make([]*SourceResult, 0, len(sources))
	seen := make([]bool, len(sources))
	for _, r := range results {
		sr := r.(*SourceResult)
		seen[sr.Index] = true
		out = append(out, sr)
	}

	// Sources never run because the context ended still get a result
	for i, source := range sources {
		if !seen[i] {
			err := ctx.Err()
			if err == nil {
				err = fmt.Errorf("not processed")
			}
			out = append(out, &SourceResult{Index: i, Source: source, Error: err})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// ProcessFile reads sources from a file and processes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*SourceResult, error) {
	sources, err := ReadSourcesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}

	return b.ProcessSources(ctx, sources), nil
}

// ReadSourcesFromFile reads sources from a file (one per line). Empty lines
// and lines starting with '#' are skipped, as are repeated sources.
func ReadSourcesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sources []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			sources = append(sources, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return sources, nil
}
