package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ppiankov/claimforge/internal/model"
)

// FeatureSplitter breaks a raw feature string into atomic feature phrases
type FeatureSplitter struct {
	vocab        *vocabulary
	conjunctions *regexp.Regexp
}

// NewFeatureSplitter creates a feature splitter for lang
func NewFeatureSplitter(lang model.Language) *FeatureSplitter {
	vocab := vocabularyFor(lang)

	alts := make([]string, 0, len(vocab.conjunctions))
	for _, c := range vocab.conjunctions {
		alts = append(alts, strings.Join(quoteAll(splitFields(c)), `\s+`))
	}

	return &FeatureSplitter{
		vocab:        vocab,
		conjunctions: regexp.MustCompile(`(?i)\s+(?:` + strings.Join(alts, "|") + `)\s+`),
	}
}

// Features is a shorthand for NewFeatureSplitter(lang).Split(raw)
func Features(raw string, lang model.Language) []string {
	return NewFeatureSplitter(lang).Split(raw)
}

// Split returns the feature phrases of raw in their original order.
// Conjunctions and semicolons separate phrases like commas do; periods are
// dropped and leading filler verbs ("содержит", "equipped with") removed.
func (s *FeatureSplitter) Split(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}

	normalized := s.conjunctions.ReplaceAllString(norm.NFC.String(raw), ", ")
	normalized = strings.ReplaceAll(normalized, ";", ",")
	normalized = strings.ReplaceAll(normalized, ".", "")

	phrases := make([]string, 0)
	for _, piece := range strings.Split(normalized, ",") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		if phrase := s.stripFillers(piece); phrase != "" {
			phrases = append(phrases, phrase)
		}
	}
	return phrases
}

// stripFillers drops leading filler tokens until the first content word
func (s *FeatureSplitter) stripFillers(piece string) string {
	tokens := splitFields(piece)

	for len(tokens) > 0 {
		n := s.fillerPrefix(tokens)
		if n == 0 {
			break
		}
		tokens = tokens[n:]
	}
	return strings.TrimSpace(strings.Join(tokens, " "))
}

// fillerPrefix returns how many leading tokens form a filler, 0 if none
func (s *FeatureSplitter) fillerPrefix(tokens []string) int {
	for _, filler := range s.vocab.fillers {
		if len(filler) > len(tokens) {
			continue
		}
		match := true
		for i, word := range filler {
			if strings.ToLower(strings.Trim(tokens[i], ".,;:")) != word {
				match = false
				break
			}
		}
		if match {
			return len(filler)
		}
	}
	return 0
}

func splitFields(s string) []string {
	return strings.Fields(s)
}

func quoteAll(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = regexp.QuoteMeta(item)
	}
	return out
}
