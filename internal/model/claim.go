package model

// ClaimResult is the output of one claim generation run
type ClaimResult struct {
	Parts         ParsedParts `json:"parts"`              // Parts the claims were built from
	Wide          string      `json:"wide"`               // Built from deduplicated features
	Narrow        string      `json:"narrow"`             // Built from features as written
	Variants      []string    `json:"variants,omitempty"` // Rotation variants (only when more than one requested)
	DuplicateRate float64     `json:"duplicate_rate"`     // Percentage of feature phrases removed
	Removed       int         `json:"duplicates_removed"` // Number of feature phrases removed
	Requested     int         `json:"variants_requested"` // Normalised variant count
}

// Claims returns the claims a caller asked for: the wide claim alone when a
// single variant was requested, otherwise exactly Requested variants.
func (r ClaimResult) Claims() []string {
	if r.Requested <= 1 || len(r.Variants) == 0 {
		return []string{r.Wide}
	}
	return r.Variants
}

// Primary returns the first claim of the result
func (r ClaimResult) Primary() string {
	claims := r.Claims()
	if len(claims) == 0 {
		return ""
	}
	return claims[0]
}

// GenerateOptions controls a generation run
type GenerateOptions struct {
	Style    Style    `json:"style" yaml:"style" mapstructure:"style"`
	Variants int      `json:"variants" yaml:"variants" mapstructure:"variants"`
	Language Language `json:"language" yaml:"language" mapstructure:"language"`
}

// Normalize returns a copy with invalid values replaced by defaults
func (o GenerateOptions) Normalize() GenerateOptions {
	out := GenerateOptions{
		Style:    ParseStyle(string(o.Style)),
		Variants: o.Variants,
		Language: ParseLanguage(string(o.Language)),
	}
	if out.Variants < 1 {
		out.Variants = 1
	}
	return out
}

// Validation is the outcome of claim-set validation
type Validation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"` // Localised problem descriptions
	Claims int      `json:"claims"`           // Number of claims checked
}
