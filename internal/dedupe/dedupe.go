// Package dedupe removes feature phrases whose stems are already covered by
// previously accepted phrases.
package dedupe

import (
	"strings"

	"github.com/ppiankov/claimforge/internal/model"
	"github.com/ppiankov/claimforge/internal/morph"
)

// Result holds the surviving phrases and duplicate statistics
type Result struct {
	Known       []string
	Distinctive []string
	Removed     int     // Phrases discarded as duplicates
	Total       int     // Phrases considered
	Rate        float64 // Removed / Total * 100, 0 when Total is 0
}

// KnownText joins the surviving known features with ", "
func (r Result) KnownText() string {
	return strings.Join(r.Known, ", ")
}

// DistinctiveText joins the surviving distinctive features with ", "
func (r Result) DistinctiveText() string {
	return strings.Join(r.Distinctive, ", ")
}

// Deduplicator compares phrases by their stem sets
type Deduplicator struct {
	stemmer morph.Stemmer
	lang    model.Language
}

// New creates a deduplicator. A nil stemmer means exact matching.
func New(stemmer morph.Stemmer, lang model.Language) *Deduplicator {
	if stemmer == nil {
		stemmer = morph.Identity{}
	}
	return &Deduplicator{stemmer: stemmer, lang: lang}
}

// Run removes known phrases already covered by earlier known phrases, and
// distinctive phrases covered by the known phrases or by earlier
// distinctive phrases. A phrase with no stems is always kept.
func (d *Deduplicator) Run(known, distinctive []string) Result {
	res := Result{
		Known:       make([]string, 0, len(known)),
		Distinctive: make([]string, 0, len(distinctive)),
		Total:       len(known) + len(distinctive),
	}

	knownStems := make(map[string]struct{})
	for _, phrase := range known {
		stems := morph.StemSet(d.stemmer, phrase, d.lang)
		if len(stems) > 0 && subset(stems, knownStems) {
			res.Removed++
			continue
		}
		res.Known = append(res.Known, phrase)
		union(knownStems, stems)
	}

	distinctStems := make(map[string]struct{})
	for _, phrase := range distinctive {
		stems := morph.StemSet(d.stemmer, phrase, d.lang)
		if len(stems) > 0 && (subset(stems, knownStems) || subset(stems, knownStems, distinctStems)) {
			res.Removed++
			continue
		}
		res.Distinctive = append(res.Distinctive, phrase)
		union(distinctStems, stems)
	}

	if res.Total > 0 {
		res.Rate = float64(res.Removed) / float64(res.Total) * 100
	}
	return res
}

// subset reports whether every stem of s is in at least one of sets
func subset(s map[string]struct{}, sets ...map[string]struct{}) bool {
	for stem := range s {
		found := false
		for _, set := range sets {
			if _, ok := set[stem]; ok {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func union(dst, src map[string]struct{}) {
	for stem := range src {
		dst[stem] = struct{}{}
	}
}
