package claim

import (
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/claimforge/internal/dedupe"
	"github.com/ppiankov/claimforge/internal/extract"
	"github.com/ppiankov/claimforge/internal/model"
	"github.com/ppiankov/claimforge/internal/morph"
)

// Generator turns descriptions or explicit parts into claims.
// It holds no per-call state and is safe for concurrent use.
type Generator struct {
	stemmer morph.Stemmer
	logger  *zap.Logger
}

// Option configures a Generator
type Option func(*Generator)

// WithStemmer sets the stemmer used for duplicate detection
func WithStemmer(s morph.Stemmer) Option {
	return func(g *Generator) {
		if s != nil {
			g.stemmer = s
		}
	}
}

// WithLogger sets the logger used for timing diagnostics
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGenerator creates a generator with a Snowball stemmer and no logging
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		stemmer: morph.NewSnowball(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// FromDescription extracts the parts of a free-form description and builds
// claims from them
func (g *Generator) FromDescription(text string, opts model.GenerateOptions) model.ClaimResult {
	opts = opts.Normalize()

	start := time.Now()
	parts := extract.Sections(text, opts.Language)
	parsed := time.Since(start)

	return g.generate(parts, opts, parsed)
}

// FromParts builds claims from explicitly supplied parts, skipping extraction
func (g *Generator) FromParts(parts model.ParsedParts, opts model.GenerateOptions) model.ClaimResult {
	return g.generate(parts, opts.Normalize(), 0)
}

func (g *Generator) generate(parts model.ParsedParts, opts model.GenerateOptions, parsed time.Duration) model.ClaimResult {
	splitter := extract.NewFeatureSplitter(opts.Language)
	known := splitter.Split(parts.Known)
	distinctive := splitter.Split(parts.Distinctive)

	result := model.ClaimResult{
		Parts:     parts,
		Requested: opts.Variants,
	}

	start := time.Now()
	result.Narrow = Build(parts, opts.Language)
	var deduper *dedupe.Deduplicator
	var dedupTime time.Duration

	if opts.Style == model.StyleVerbose {
		result.Wide = result.Narrow
	} else {
		deduper = dedupe.New(g.stemmer, opts.Language)
		dedupStart := time.Now()
		res := deduper.Run(known, distinctive)
		dedupTime = time.Since(dedupStart)

		result.Wide = Build(model.ParsedParts{
			Name:        parts.Name,
			Known:       res.KnownText(),
			Distinctive: res.DistinctiveText(),
			Effect:      parts.Effect,
		}, opts.Language)
		result.DuplicateRate = res.Rate
		result.Removed = res.Removed
	}

	switch {
	case opts.Variants <= 1:
	case opts.Style == model.StyleVerbose:
		// Verbose claims keep the phrases as written, so every variant is the same claim
		result.Variants = make([]string, opts.Variants)
		for i := range result.Variants {
			result.Variants[i] = result.Wide
		}
	default:
		result.Variants = rotations(parts, known, distinctive, opts, deduper)
	}

	g.logger.Debug("claim generated",
		zap.String("style", string(opts.Style)),
		zap.String("language", string(opts.Language)),
		zap.Int("variants", opts.Variants),
		zap.Duration("parse", parsed),
		zap.Duration("dedupe", dedupTime),
		zap.Duration("build", time.Since(start)-dedupTime),
		zap.Float64("duplicate_rate", result.DuplicateRate),
	)

	return result
}

// rotations builds one claim per rotation 0..n-1 of the feature lists,
// keeps the first occurrence of each claim and pads with the last unique
// claim up to n.
func rotations(parts model.ParsedParts, known, distinctive []string, opts model.GenerateOptions, deduper *dedupe.Deduplicator) []string {
	n := opts.Variants
	seen := make(map[string]bool, n)
	unique := make([]string, 0, n)

	for k := 0; k < n; k++ {
		res := deduper.Run(rotate(known, k), rotate(distinctive, k))

		c := Build(model.ParsedParts{
			Name:        parts.Name,
			Known:       res.KnownText(),
			Distinctive: res.DistinctiveText(),
			Effect:      parts.Effect,
		}, opts.Language)

		if !seen[c] {
			seen[c] = true
			unique = append(unique, c)
		}
	}

	for len(unique) < n {
		unique = append(unique, unique[len(unique)-1])
	}
	return unique[:n]
}

// rotate returns a copy of s shifted left by k positions
func rotate(s []string, k int) []string {
	if len(s) == 0 {
		return []string{}
	}
	k %= len(s)
	out := make([]string, 0, len(s))
	out = append(out, s[k:]...)
	return append(out, s[:k]...)
}
