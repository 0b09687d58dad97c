package model

import "time"

// Report represents the complete claim drafting report for one source
type Report struct {
	Subject     string          `json:"subject"`      // Invention title or source name
	Source      string          `json:"source"`       // File path or URL the description came from
	GeneratedAt time.Time       `json:"generated_at"` // When the report was produced
	Options     GenerateOptions `json:"options"`      // Normalised generation options

	Result     ClaimResult `json:"result"`     // Generated claims
	Validation Validation  `json:"validation"` // Structure check of the primary claim
	Score      Score       `json:"score"`      // Completeness index and signals

	Cached bool `json:"-"` // Served from the report cache
}

// Score represents the transparent scoring breakdown
type Score struct {
	Index      int      `json:"index"`      // Overall completeness index (0-100)
	Confidence string   `json:"confidence"` // "low", "medium", "high"
	Signals    []Signal `json:"signals"`    // Diagnostic signals with transparent data
}

// Signal represents a diagnostic signal with transparent scoring data
type Signal struct {
	Type        SignalType             `json:"type"`           // Signal classification
	Severity    SignalSeverity         `json:"severity"`       // info, warning, critical
	Description string                 `json:"description"`    // Human-readable description
	Data        map[string]interface{} `json:"data,omitempty"` // Transparent scoring data (formulas, inputs)
}

// SignalType classifies the type of diagnostic signal
type SignalType string

const (
	SignalCompleteness     SignalType = "completeness"      // Which claim parts were found
	SignalDuplicateRate    SignalType = "duplicate_rate"    // Share of redundant feature phrases
	SignalStructure        SignalType = "structure"         // Validator outcome
	SignalVariantDiversity SignalType = "variant_diversity" // Distinct claims among requested variants
)

// SignalSeverity indicates the importance of the signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)
