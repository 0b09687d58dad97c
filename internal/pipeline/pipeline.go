package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/claimforge/internal/cache"
	"github.com/ppiankov/claimforge/internal/claim"
	"github.com/ppiankov/claimforge/internal/extract"
	"github.com/ppiankov/claimforge/internal/model"
	"github.com/ppiankov/claimforge/internal/morph"
	"github.com/ppiankov/claimforge/internal/score"
	"github.com/ppiankov/claimforge/internal/validate"
)

// Source is a loaded invention description
type Source struct {
	Name  string // File path or final URL
	Title string // Page title or URL slug, empty for files
	Text  string // Plain description text
}

// Pipeline orchestrates loading, generation, validation and scoring
type Pipeline struct {
	fetcher    *Fetcher
	generator  *claim.Generator
	validators map[model.Language]*validate.Validator
	scorer     *score.Scorer
	renderer   *Renderer
	cache      cache.Cache // nil when caching is disabled
	config     *model.Config
	logger     *zap.Logger
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	fetcher := NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes,
		cfg.HTTP.InsecureTLS, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy)
	if cfg.HTTP.RespectRobots {
		fetcher.RespectRobots()
	}

	stemmer := morph.NewSnowball()

	return &Pipeline{
		fetcher:   fetcher,
		generator: claim.NewGenerator(claim.WithStemmer(stemmer), claim.WithLogger(logger)),
		validators: map[model.Language]*validate.Validator{
			model.LanguageRU: validate.NewValidator(model.LanguageRU, stemmer),
			model.LanguageEN: validate.NewValidator(model.LanguageEN, stemmer),
		},
		scorer:   score.NewScorer(),
		renderer: NewRenderer(cfg.Output.IncludeFooter),
		cache:    cache.New(cfg.Cache),
		config:   cfg,
		logger:   logger,
	}
}

// IsURL reports whether source should be fetched over HTTP
func IsURL(source string) bool {
	lower := strings.ToLower(strings.TrimSpace(source))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Load reads a description from a URL or a file path
func (p *Pipeline) Load(ctx context.Context, source string) (*Source, error) {
	source = strings.TrimSpace(source)
	if !IsURL(source) {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("read description: %w", err)
		}
		return &Source{Name: source, Text: string(data)}, nil
	}

	result, err := p.fetcher.FetchWithRetry(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if result.Truncated {
		p.logger.Warn("page truncated at size limit",
			zap.String("url", result.FinalURL),
			zap.Int64("max_bytes", p.config.HTTP.MaxBodyBytes),
		)
	}

	src := &Source{
		Name:  result.FinalURL,
		Title: result.Subject,
		Text:  result.HTML,
	}
	if isHTML(result.ContentType, result.HTML) {
		page, err := extract.ParsePage(result.HTML)
		if err != nil {
			return nil, fmt.Errorf("parse page: %w", err)
		}
		src.Text = page.Text
		if page.Title != "" {
			src.Title = page.Title
		}
	}

	return src, nil
}

// isHTML decides whether a response body needs HTML text extraction
func isHTML(contentType, body string) bool {
	if contentType != "" {
		return strings.Contains(strings.ToLower(contentType), "html")
	}
	return strings.HasPrefix(strings.TrimSpace(body), "<")
}

// Run generates, validates and scores claims for a description. Reports are
// cached by description text and generation options.
func (p *Pipeline) Run(ctx context.Context, source, text string) (*model.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := p.config.Generation.Normalize()
	key := cache.Key(text, opts)

	if p.cache != nil {
		if data, found := p.cache.Get(key); found {
			var report model.Report
			if err := json.Unmarshal(data, &report); err == nil {
				report.Source = source
				report.Cached = true
				p.logger.Debug("report cache hit", zap.String("source", source), zap.String("key", key))
				return &report, nil
			}
			p.logger.Warn("discarding unreadable cache entry", zap.String("key", key))
			if err := p.cache.Delete(key); err != nil {
				p.logger.Warn("cache delete failed", zap.String("key", key), zap.Error(err))
			}
		}
	}

	report := p.buildReport(source, opts, p.generator.FromDescription(text, opts))

	if p.cache != nil {
		data, err := json.Marshal(report)
		if err != nil {
			return nil, fmt.Errorf("marshal report: %w", err)
		}
		if err := p.cache.Set(key, data, 0); err != nil {
			p.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return report, nil
}

// ClearCache removes every cached report. It is a no-op when caching is
// disabled.
func (p *Pipeline) ClearCache() error {
	if p.cache == nil {
		return nil
	}
	if err := p.cache.Clear(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// RunParts builds a report from explicitly supplied parts. Explicit parts
// skip extraction and are never cached.
func (p *Pipeline) RunParts(source string, parts model.ParsedParts) *model.Report {
	opts := p.config.Generation.Normalize()
	return p.buildReport(source, opts, p.generator.FromParts(parts, opts))
}

// Process loads source and runs the pipeline on its text
func (p *Pipeline) Process(ctx context.Context, source string) (*model.Report, error) {
	src, err := p.Load(ctx, source)
	if err != nil {
		return nil, err
	}

	report, err := p.Run(ctx, src.Name, src.Text)
	if err != nil {
		return nil, err
	}
	if report.Subject == "" {
		report.Subject = src.Title
	}
	return report, nil
}

func (p *Pipeline) buildReport(source string, opts model.GenerateOptions, result model.ClaimResult) *model.Report {
	validator := p.validators[opts.Language]
	validation := validator.Validate(result.Primary())

	return &model.Report{
		Subject:     result.Parts.Name,
		Source:      source,
		GeneratedAt: time.Now().UTC(),
		Options:     opts,
		Result:      result,
		Validation:  validation,
		Score:       p.scorer.Calculate(result.Parts, result, validation),
	}
}

// RenderReport renders the report to the specified outputs and prints the
// summary to w
func (p *Pipeline) RenderReport(w io.Writer, report *model.Report, jsonPath string, mdPath string, verbose bool) error {
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

	p.renderer.RenderSummary(w, report, verbose)
	return nil
}
