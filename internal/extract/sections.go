package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/ppiankov/claimforge/internal/model"
)

// markerTrim is stripped from both ends of a labelled section
const markerTrim = " \t\r:–—-"

var sentenceBoundary = regexp.MustCompile(`[.!?][\s\p{Z}]+`)

// SectionExtractor locates the title, known features, distinctive features
// and effect inside a free-form invention description
type SectionExtractor struct {
	vocab *vocabulary
}

// NewSectionExtractor creates a section extractor for lang
func NewSectionExtractor(lang model.Language) *SectionExtractor {
	return &SectionExtractor{vocab: vocabularyFor(lang)}
}

// Sections is a shorthand for NewSectionExtractor(lang).Extract(text)
func Sections(text string, lang model.Language) model.ParsedParts {
	return NewSectionExtractor(lang).Extract(text)
}

// Extract parses text into its structural parts. Labelled lines
// ("Название: ...") win; otherwise the title is the first non-empty line and
// the other parts are assembled from sentences containing keyword stems.
func (e *SectionExtractor) Extract(text string) model.ParsedParts {
	clean := strings.TrimSpace(norm.NFC.String(text))
	if clean == "" {
		return model.ParsedParts{}
	}

	name := labelled(clean, e.vocab.nameMarkers)
	known := labelled(clean, e.vocab.knownMarkers)
	distinctive := labelled(clean, e.vocab.distinctiveMarkers)
	effect := labelled(clean, e.vocab.effectMarkers)

	if name == "" {
		name = firstLine(clean)
	}
	if known == "" {
		known = collectSentences(clean, e.vocab.knownKeywords)
	}
	if distinctive == "" {
		distinctive = collectSentences(clean, e.vocab.distinctiveKeywords)
	}
	if effect == "" {
		effect = collectSentences(clean, e.vocab.effectKeywords)
	}

	return model.ParsedParts{
		Name:        strings.TrimSpace(name),
		Known:       strings.TrimSpace(known),
		Distinctive: strings.TrimSpace(distinctive),
		Effect:      strings.TrimSpace(effect),
	}
}

// labelled returns the text following the first marker found, scanning
// lines top to bottom. Only the first matching line is considered.
func labelled(text string, markers []string) string {
	for _, line := range strings.Split(text, "\n") {
		for _, marker := range markers {
			if end := foldIndexEnd(line, marker); end >= 0 {
				return strings.Trim(line[end:], markerTrim)
			}
		}
	}
	return ""
}

// foldIndexEnd finds lowercase needle in s case-insensitively and returns
// the byte offset in s just past the match, or -1
func foldIndexEnd(s, needle string) int {
	var lower strings.Builder
	offsets := make([]int, 0, len(s)+1)

	for i, r := range s {
		lr := unicode.ToLower(r)
		lower.WriteRune(lr)
		for n := utf8.RuneLen(lr); n > 0; n-- {
			offsets = append(offsets, i)
		}
	}
	offsets = append(offsets, len(s))

	idx := strings.Index(lower.String(), needle)
	if idx < 0 {
		return -1
	}
	return offsets[idx+len(needle)]
}

// firstLine returns the first non-empty line, trimmed
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// collectSentences joins every sentence containing any of keywords
func collectSentences(text string, keywords []string) string {
	var selected []string
	for _, sentence := range splitSentences(text) {
		lower := strings.ToLower(sentence)
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				selected = append(selected, strings.TrimSpace(sentence))
				break
			}
		}
	}
	return strings.Join(selected, " ")
}

// splitSentences splits text after '.', '!' or '?' followed by whitespace.
// The terminator stays with its sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		sentences = append(sentences, text[start:loc[0]+1])
		start = loc[1]
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}
