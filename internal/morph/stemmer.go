// Package morph reduces tokens to comparable root forms for duplicate
// detection. Stems are never shown to users.
package morph

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball"

	"github.com/ppiankov/claimforge/internal/model"
)

// Stemmer reduces a token to a root form for the given language
type Stemmer interface {
	Stem(token string, lang model.Language) string
}

// Identity lower-cases and trims tokens without further reduction.
// Deduplication with it is exact-match only.
type Identity struct{}

// Stem returns the lower-cased, trimmed token
func (Identity) Stem(token string, _ model.Language) string {
	return normalizeToken(token)
}

// Snowball stems Russian and English with the Snowball algorithms
type Snowball struct {
	fallback Identity
}

// NewSnowball creates a Snowball stemmer
func NewSnowball() *Snowball {
	return &Snowball{}
}

// Stem returns the Snowball stem of token. Russian ё is folded to е first.
// A token the algorithm cannot handle is returned lower-cased and trimmed.
func (s *Snowball) Stem(token string, lang model.Language) string {
	word := strings.ReplaceAll(normalizeToken(token), "ё", "е")
	if word == "" {
		return word
	}

	stem, err := snowball.Stem(word, snowballLanguage(lang), false)
	if err != nil || stem == "" {
		return s.fallback.Stem(word, lang)
	}
	return stem
}

// snowballLanguage maps a language onto the snowball package's names
func snowballLanguage(lang model.Language) string {
	if lang == model.LanguageEN {
		return "english"
	}
	return "russian"
}

func normalizeToken(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

// StemSet returns the set of stems of the whitespace/hyphen-delimited
// tokens of phrase. Empty tokens are ignored.
func StemSet(s Stemmer, phrase string, lang model.Language) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokens(phrase) {
		stem := s.Stem(tok, lang)
		if stem == "" {
			continue
		}
		set[stem] = struct{}{}
	}
	return set
}

// Tokens splits phrase on whitespace and hyphens
func Tokens(phrase string) []string {
	return strings.FieldsFunc(phrase, func(r rune) bool {
		return r == '-' || unicode.IsSpace(r)
	})
}
