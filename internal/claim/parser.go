package claim

import (
	"regexp"
	"strings"

	"github.com/ppiankov/claimforge/internal/model"
)

// grammar recognises the connectives of an already written claim,
// including the gendered Russian forms a drafter may have used
type grammar struct {
	including     *regexp.Regexp
	distinguished *regexp.Regexp
	provides      *regexp.Regexp
}

var (
	russianGrammar = grammar{
		including:     regexp.MustCompile(`(?i)(?:^|,\s*)(?:включающ|содержащ)(?:ий|ая|ее|ие)\s+`),
		distinguished: regexp.MustCompile(`(?i)(?:^|,\s*)отличающ(?:ийся|аяся|ееся|иеся)\s+тем,?\s+что\s+`),
		provides:      regexp.MustCompile(`(?i)(?:^|,\s*)обеспечива(?:ет|ют|ющий|ющая|ющее|ющие)\s+`),
	}
	englishGrammar = grammar{
		including:     regexp.MustCompile(`(?i)(?:^|,\s*)(?:including|comprising)\s+`),
		distinguished: regexp.MustCompile(`(?i)(?:^|,\s*)(?:distinguished|characterized|characterised)\s+in\s+that\s+`),
		provides:      regexp.MustCompile(`(?i)(?:^|,\s*)(?:provides|providing)\s+`),
	}
)

func grammarFor(lang model.Language) *grammar {
	if lang == model.LanguageEN {
		return &englishGrammar
	}
	return &russianGrammar
}

// Parse splits a claim sentence back into its parts. It is the inverse of
// Build for claims Build produced and a best effort for hand-written ones.
func Parse(sentence string, lang model.Language) model.ParsedParts {
	g := grammarFor(lang)

	body := strings.TrimSpace(sentence)
	body = strings.TrimSpace(strings.TrimSuffix(body, "."))
	if body == "" {
		return model.ParsedParts{}
	}

	var parts model.ParsedParts
	head := body

	if loc := g.distinguished.FindStringIndex(body); loc != nil {
		head = body[:loc[0]]
		tail := body[loc[1]:]
		if p := g.provides.FindStringIndex(tail); p != nil {
			parts.Distinctive = tail[:p[0]]
			parts.Effect = tail[p[1]:]
		} else {
			parts.Distinctive = tail
		}
	} else if p := g.provides.FindStringIndex(body); p != nil {
		head = body[:p[0]]
		parts.Effect = body[p[1]:]
	}

	if loc := g.including.FindStringIndex(head); loc != nil {
		parts.Name = head[:loc[0]]
		parts.Known = head[loc[1]:]
	} else {
		parts.Name = head
	}

	parts.Name = strings.TrimSpace(parts.Name)
	parts.Known = strings.TrimSpace(parts.Known)
	parts.Distinctive = strings.TrimSpace(parts.Distinctive)
	parts.Effect = strings.TrimSpace(parts.Effect)
	return parts
}
