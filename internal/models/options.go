// file: internal/models/options.go
// version: 1.1.0
// guid: 0c1d2e3f-4a5b-6c7d-8e9f-0a1b2c3d4e5f

package models

import (
	"fmt"
	"time"
)

// ErrorLogLevel controls how much context error records carry.
type ErrorLogLevel string

const (
	ErrorLogMinimal  ErrorLogLevel = "minimal"
	ErrorLogDetailed ErrorLogLevel = "detailed"
)

// MatchingOptions configures the phrase matching pipeline.
type MatchingOptions struct {
	EnableExactMatch    bool `json:"enable_exact_match"`
	EnableNormalization bool `json:"enable_normalization"`
	// EnablePartialMatch is reserved; no stage consumes it yet.
	EnablePartialMatch    bool          `json:"enable_partial_match"`
	EnableFuzzyMatching   bool          `json:"enable_fuzzy_matching"`
	FuzzyThreshold        float64       `json:"fuzzy_threshold"`
	ShowConfidence        bool          `json:"show_confidence"`
	Debug                 bool          `json:"debug"`
	ErrorLogLevel         ErrorLogLevel `json:"error_log_level"`
	EnablePreciseFuzzy    bool          `json:"enable_precise_fuzzy"`
	EnableDynamicWindow   bool          `json:"enable_dynamic_window"`
	EnableSimilarityCache bool          `json:"enable_similarity_cache"`
	// MaxSearchRange bounds the fuzzy search window, in runes around the
	// estimated position.
	MaxSearchRange int `json:"max_search_range"`
	// ProcessingTimeout, when positive, bounds one FindMatches call. On
	// expiry the engine returns whatever it has matched so far.
	ProcessingTimeout time.Duration `json:"processing_timeout"`
}

// DefaultMatchingOptions returns the option set used when callers pass
// nothing explicit.
func DefaultMatchingOptions() MatchingOptions {
	return MatchingOptions{
		EnableExactMatch:      true,
		EnableNormalization:   true,
		EnableFuzzyMatching:   false,
		FuzzyThreshold:        0.7,
		ErrorLogLevel:         ErrorLogMinimal,
		EnablePreciseFuzzy:    true,
		EnableDynamicWindow:   true,
		EnableSimilarityCache: true,
		MaxSearchRange:        50,
	}
}

// CacheKeyPart serializes the options that affect match results into a
// deterministic string for cache keying. Display-only knobs are excluded.
func (o MatchingOptions) CacheKeyPart() string {
	return fmt.Sprintf("e=%t;n=%t;p=%t;f=%t;ft=%.4f;pf=%t;dw=%t;sr=%d",
		o.EnableExactMatch, o.EnableNormalization, o.EnablePartialMatch,
		o.EnableFuzzyMatching, o.FuzzyThreshold, o.EnablePreciseFuzzy,
		o.EnableDynamicWindow, o.MaxSearchRange)
}
