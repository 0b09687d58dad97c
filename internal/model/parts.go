package model

import "strings"

// Language selects marker tables, filler words, stemmer and connectives
type Language string

const (
	LanguageRU Language = "ru" // Russian (default)
	LanguageEN Language = "en" // English
)

// ParseLanguage maps a user-supplied code onto a supported language.
// Anything unrecognised falls back to Russian.
func ParseLanguage(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en", "eng", "english":
		return LanguageEN
	default:
		return LanguageRU
	}
}

// Style controls whether feature deduplication runs
type Style string

const (
	StyleCompact Style = "compact" // Deduplicate features (wide claim)
	StyleVerbose Style = "verbose" // Keep features as written
)

// ParseStyle maps a user-supplied style onto a supported one.
// Anything unrecognised falls back to compact.
func ParseStyle(s string) Style {
	if strings.EqualFold(strings.TrimSpace(s), string(StyleVerbose)) {
		return StyleVerbose
	}
	return StyleCompact
}

// ParsedParts holds the structural fields of an invention description.
// Every field is optional and empty when absent.
type ParsedParts struct {
	Name        string `json:"name"`        // Title of the invention
	Known       string `json:"known"`       // Restrictive part (prior-art features)
	Distinctive string `json:"distinctive"` // Novel features
	Effect      string `json:"effect"`      // Technical effect / ideal final result
}

// IsEmpty reports whether no field carries text
func (p ParsedParts) IsEmpty() bool {
	return p.Name == "" && p.Known == "" && p.Distinctive == "" && p.Effect == ""
}
