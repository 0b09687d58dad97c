// Package claim assembles patent claim sentences from their parts and
// generates wide, narrow and rotated claim variants.
package claim

import (
	"regexp"
	"strings"

	"github.com/ppiankov/claimforge/internal/model"
)

// connectives are the fixed phrases joining the parts of a claim
type connectives struct {
	including     string
	distinguished string
	provides      string
}

var (
	russianConnectives = connectives{
		including:     "включающий",
		distinguished: "отличающийся тем, что",
		provides:      "обеспечивает",
	}
	englishConnectives = connectives{
		including:     "including",
		distinguished: "distinguished in that",
		provides:      "provides",
	}
)

// leadingProvides matches an effect that already starts with the verb
var leadingProvides = regexp.MustCompile(`(?i)^\s*(?:обеспечивает|provides)\s+`)

func connectivesFor(lang model.Language) connectives {
	if lang == model.LanguageEN {
		return englishConnectives
	}
	return russianConnectives
}

// Build assembles one claim sentence:
//
//	<name>[, including <known>][, distinguished in that <distinctive>][, provides <effect>].
//
// Empty parts are omitted; all-empty parts give an empty claim.
func Build(parts model.ParsedParts, lang model.Language) string {
	c := connectivesFor(lang)

	name := clauseBody(parts.Name)
	known := clauseBody(parts.Known)
	distinctive := clauseBody(parts.Distinctive)

	var clauses []string
	switch {
	case name != "" && known != "":
		clauses = append(clauses, name+", "+c.including+" "+known)
	case name != "":
		clauses = append(clauses, name)
	case known != "":
		clauses = append(clauses, c.including+" "+known)
	}

	if distinctive != "" {
		clauses = append(clauses, c.distinguished+" "+distinctive)
	}

	if effect := effectBody(parts.Effect); effect != "" {
		clauses = append(clauses, c.provides+" "+effect)
	}

	sentence := strings.TrimSpace(strings.Join(clauses, ", "))
	if sentence != "" && !strings.HasSuffix(sentence, ".") {
		sentence += "."
	}
	return sentence
}

// clauseBody trims a feature list and its trailing periods
func clauseBody(s string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), "."))
}

// effectBody drops one leading "provides"/"обеспечивает" and trailing periods
func effectBody(s string) string {
	effect := strings.TrimSpace(s)
	if effect == "" {
		return ""
	}
	effect = leadingProvides.ReplaceAllString(effect, "")
	return clauseBody(effect)
}
