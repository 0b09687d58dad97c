package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/claimforge/internal/claim"
	"github.com/ppiankov/claimforge/internal/dedupe"
	"github.com/ppiankov/claimforge/internal/extract"
	"github.com/ppiankov/claimforge/internal/model"
	"github.com/ppiankov/claimforge/internal/morph"
)

var (
	// claimNumber matches "2. " or "2) " in front of a claim
	claimNumber = regexp.MustCompile(`^\s*\d+\s*[.)]\s+`)

	// claimReference matches a reference to another claim and captures its number
	claimReference = regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:по\s+(?:п\.|пункту|пунктам)|according\s+to\s+claims?|as\s+claimed\s+in\s+claim)\s*(\d+)`)
)

// messages holds the localised problem descriptions
type messages struct {
	empty             string
	firstReferences   string
	missingKnown      string
	missingDistinct   string
	missingEffect     string
	duplicateFeatures string
	noReference       string // %d claim index
	forwardReference  string // %d claim index, %d referenced claim
}

var (
	russianMessages = messages{
		empty:             "Нет текста формулы для проверки",
		firstReferences:   "Первый пункт не должен ссылаться на другие пункты",
		missingKnown:      "В первом пункте отсутствуют известные признаки",
		missingDistinct:   "В первом пункте отсутствуют отличительные признаки",
		missingEffect:     "В первом пункте отсутствует технический результат",
		duplicateFeatures: "В независимом пункте повторяются признаки",
		noReference:       "Пункт %d не содержит ссылки на предыдущий пункт",
		forwardReference:  "Пункт %d ссылается на пункт %d, который не предшествует ему",
	}
	englishMessages = messages{
		empty:             "No claim text to validate",
		firstReferences:   "The first claim must not reference other claims",
		missingKnown:      "The first claim has no known features",
		missingDistinct:   "The first claim has no distinctive features",
		missingEffect:     "The first claim has no technical effect",
		duplicateFeatures: "The independent claim repeats features",
		noReference:       "Claim %d does not reference a preceding claim",
		forwardReference:  "Claim %d references claim %d which does not precede it",
	}
)

// Validator checks the structure of a claim set: one independent claim
// followed by dependent claims, one claim per line
type Validator struct {
	lang     model.Language
	stemmer  morph.Stemmer
	msg      *messages
	splitter *extract.FeatureSplitter
}

// NewValidator creates a validator for lang. A nil stemmer means Snowball.
func NewValidator(lang model.Language, stemmer morph.Stemmer) *Validator {
	lang = model.ParseLanguage(string(lang))
	if stemmer == nil {
		stemmer = morph.NewSnowball()
	}

	msg := &russianMessages
	if lang == model.LanguageEN {
		msg = &englishMessages
	}

	return &Validator{
		lang:     lang,
		stemmer:  stemmer,
		msg:      msg,
		splitter: extract.NewFeatureSplitter(lang),
	}
}

// Validate checks every claim in text and collects all problems found
func (v *Validator) Validate(text string) model.Validation {
	claims := splitClaims(text)
	result := model.Validation{Claims: len(claims)}

	if len(claims) == 0 {
		result.Errors = append(result.Errors, v.msg.empty)
		return result
	}

	result.Errors = append(result.Errors, v.checkIndependent(claims[0])...)
	for i, c := range claims[1:] {
		if err := v.checkDependent(c, i+2); err != "" {
			result.Errors = append(result.Errors, err)
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// checkIndependent validates the first claim
func (v *Validator) checkIndependent(text string) []string {
	var errs []string

	if claimReference.MatchString(text) {
		errs = append(errs, v.msg.firstReferences)
	}

	parts := claim.Parse(text, v.lang)
	if parts.Known == "" {
		errs = append(errs, v.msg.missingKnown)
	}
	if parts.Distinctive == "" {
		errs = append(errs, v.msg.missingDistinct)
	}
	if parts.Effect == "" {
		errs = append(errs, v.msg.missingEffect)
	}

	known := v.splitter.Split(parts.Known)
	distinctive := v.splitter.Split(parts.Distinctive)
	res := dedupe.New(v.stemmer, v.lang).Run(known, distinctive)
	if res.Removed > 0 {
		errs = append(errs, v.msg.duplicateFeatures)
	}

	return errs
}

// checkDependent validates claim number index, returning "" when it is fine
func (v *Validator) checkDependent(text string, index int) string {
	m := claimReference.FindStringSubmatch(text)
	if m == nil {
		return fmt.Sprintf(v.msg.noReference, index)
	}

	ref, err := strconv.Atoi(m[1])
	if err != nil || ref < 1 || ref >= index {
		return fmt.Sprintf(v.msg.forwardReference, index, ref)
	}
	return ""
}

// splitClaims returns the non-empty lines of text with claim numbers removed
func splitClaims(text string) []string {
	var claims []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(claimNumber.ReplaceAllString(line, ""))
		if line != "" {
			claims = append(claims, line)
		}
	}
	return claims
}
