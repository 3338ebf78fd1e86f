// file: internal/models/finding.go
// version: 1.1.0
// guid: 3e4f5a6b-7c8d-9e0f-1a2b-3c4d5e6f7a8b

package models

// Finding represents one LLM observation about a job posting: a phrase that
// likely hides something, with the realities it may conceal and what to verify.
type Finding struct {
	OriginalPhrase     string   `json:"original_phrase" yaml:"original_phrase"`
	PotentialRealities []string `json:"potential_realities" yaml:"potential_realities"`
	PointsToCheck      []string `json:"points_to_check" yaml:"points_to_check"`

	// Enhanced fields; older payloads omit these entirely
	Severity           string   `json:"severity,omitempty" yaml:"severity,omitempty"`
	Category           string   `json:"category,omitempty" yaml:"category,omitempty"`
	Confidence         *float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	RelatedKeywords    []string `json:"related_keywords,omitempty" yaml:"related_keywords,omitempty"`
	SuggestedQuestions []string `json:"suggested_questions,omitempty" yaml:"suggested_questions,omitempty"`
}

// IsEnhanced reports whether the finding carries the extended field set.
func (f *Finding) IsEnhanced() bool {
	return f.Severity != "" || f.Category != ""
}
