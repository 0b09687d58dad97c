package score

import (
	"fmt"
	"math"

	"github.com/ppiankov/claimforge/internal/model"
)

// Points awarded for each part found in the description
const (
	pointsName        = 15
	pointsKnown       = 15
	pointsDistinctive = 15
	pointsEffect      = 15
)

// Scorer calculates the completeness index and generates signals
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Calculate calculates the completeness score of a generated claim and
// generates diagnostic signals
func (s *Scorer) Calculate(parts model.ParsedParts, result model.ClaimResult, validation model.Validation) model.Score {
	var signals []model.Signal

	// 1. Part completeness (0-60 points)
	completenessScore, completenessSignal := s.calculateCompleteness(parts)
	signals = append(signals, completenessSignal)

	// 2. Duplicate rate (0-20 points)
	duplicateScore, duplicateSignal := s.calculateDuplicates(result)
	signals = append(signals, duplicateSignal)

	// 3. Structure (0-20 points)
	structureScore, structureSignal := s.calculateStructure(validation)
	signals = append(signals, structureSignal)

	// 4. Variant diversity (informational)
	if result.Requested > 1 {
		signals = append(signals, s.variantDiversity(result))
	}

	totalScore := completenessScore + duplicateScore + structureScore

	return model.Score{
		Index:      totalScore,
		Confidence: s.determineConfidence(totalScore, parts),
		Signals:    signals,
	}
}

// calculateCompleteness awards points for every part that was found (0-60 points)
func (s *Scorer) calculateCompleteness(parts model.ParsedParts) (int, model.Signal) {
	score := 0
	var missing []string

	check := func(value, name string, points int) {
		if value != "" {
			score += points
		} else {
			missing = append(missing, name)
		}
	}
	check(parts.Name, "name", pointsName)
	check(parts.Known, "known", pointsKnown)
	check(parts.Distinctive, "distinctive", pointsDistinctive)
	check(parts.Effect, "effect", pointsEffect)

	severity := model.SeverityInfo
	description := "All claim parts found"
	if parts.Distinctive == "" {
		severity = model.SeverityCritical
	} else if len(missing) > 0 {
		severity = model.SeverityWarning
	}
	if len(missing) > 0 {
		description = fmt.Sprintf("Missing claim parts: %v", missing)
	}

	return score, model.Signal{
		Type:        model.SignalCompleteness,
		Severity:    severity,
		Description: description,
		Data: map[string]interface{}{
			"missing": missing,
			"score":   score,
			"formula": "15 points each for name, known, distinctive, effect",
		},
	}
}

// calculateDuplicates scores the share of feature phrases that survived (0-20 points)
func (s *Scorer) calculateDuplicates(result model.ClaimResult) (int, model.Signal) {
	rate := math.Max(0, math.Min(result.DuplicateRate, 100))
	score := int(math.Round(20 * (1 - rate/100)))

	severity := model.SeverityInfo
	if rate >= 50 {
		severity = model.SeverityCritical
	} else if rate >= 20 {
		severity = model.SeverityWarning
	}

	return score, model.Signal{
		Type:        model.SignalDuplicateRate,
		Severity:    severity,
		Description: fmt.Sprintf("Duplicate rate: %.1f%% (%d phrases removed)", rate, result.Removed),
		Data: map[string]interface{}{
			"rate":    rate,
			"removed": result.Removed,
			"score":   score,
			"formula": "20 * (1 - duplicate_rate / 100)",
		},
	}
}

// calculateStructure deducts 5 points per validation error (0-20 points)
func (s *Scorer) calculateStructure(validation model.Validation) (int, model.Signal) {
	errCount := len(validation.Errors)
	score := 20 - errCount*5
	if score < 0 {
		score = 0
	}

	severity := model.SeverityInfo
	description := "Claim structure is valid"
	if errCount >= 3 {
		severity = model.SeverityCritical
	} else if errCount > 0 {
		severity = model.SeverityWarning
	}
	if errCount > 0 {
		description = fmt.Sprintf("Claim structure: %d problem(s)", errCount)
	}

	return score, model.Signal{
		Type:        model.SignalStructure,
		Severity:    severity,
		Description: description,
		Data: map[string]interface{}{
			"errors":  validation.Errors,
			"claims":  validation.Claims,
			"score":   score,
			"formula": "20 - min(error_count * 5, 20)",
		},
	}
}

// variantDiversity reports how many requested variants are distinct.
// Repeated variants are padding, which happens when the feature lists are
// shorter than the requested count.
func (s *Scorer) variantDiversity(result model.ClaimResult) model.Signal {
	unique := make(map[string]bool, len(result.Variants))
	for _, v := range result.Variants {
		unique[v] = true
	}

	severity := model.SeverityInfo
	if len(unique) < result.Requested {
		severity = model.SeverityWarning
	}

	return model.Signal{
		Type:        model.SignalVariantDiversity,
		Severity:    severity,
		Description: fmt.Sprintf("Distinct variants: %d/%d", len(unique), result.Requested),
		Data: map[string]interface{}{
			"unique":    len(unique),
			"requested": result.Requested,
			"padded":    result.Requested - len(unique),
		},
	}
}

// determineConfidence determines the confidence level based on the score
func (s *Scorer) determineConfidence(score int, parts model.ParsedParts) string {
	if parts.Distinctive == "" {
		return "low"
	}

	if score >= 80 {
		return "high"
	} else if score >= 50 {
		return "medium"
	} else {
		return "low"
	}
}
