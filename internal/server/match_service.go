// file: internal/server/match_service.go
// version: 1.2.0
// guid: 8e9f0a1b-2c3d-4e5f-6a7b-8c9d0e1f2ad8

package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkurosawa/honne/internal/models"
)

// MatchRequest carries a posting plus findings already produced upstream.
type MatchRequest struct {
	Text     string           `json:"text" binding:"required"`
	Findings []models.Finding `json:"findings"`
	Options  *MatchOptions    `json:"options,omitempty"`
}

// MatchOptions carries per-request overrides of the matching options. Every
// field is optional; absent fields keep the configured defaults, so a caller
// toggling one knob does not wipe the others.
type MatchOptions struct {
	EnableExactMatch      *bool          `json:"enable_exact_match,omitempty"`
	EnableNormalization   *bool          `json:"enable_normalization,omitempty"`
	EnablePartialMatch    *bool          `json:"enable_partial_match,omitempty"`
	EnableFuzzyMatching   *bool          `json:"enable_fuzzy_matching,omitempty"`
	FuzzyThreshold        *float64       `json:"fuzzy_threshold,omitempty"`
	ShowConfidence        *bool          `json:"show_confidence,omitempty"`
	Debug                 *bool          `json:"debug,omitempty"`
	ErrorLogLevel         *string        `json:"error_log_level,omitempty"`
	EnablePreciseFuzzy    *bool          `json:"enable_precise_fuzzy,omitempty"`
	EnableDynamicWindow   *bool          `json:"enable_dynamic_window,omitempty"`
	EnableSimilarityCache *bool          `json:"enable_similarity_cache,omitempty"`
	MaxSearchRange        *int           `json:"max_search_range,omitempty"`
	ProcessingTimeout     *time.Duration `json:"processing_timeout,omitempty"`
}

// MatchResponse returns the located spans plus run statistics.
type MatchResponse struct {
	Matches []models.EnhancedPhraseMatch `json:"matches"`
	Stats   models.MatchStats            `json:"stats"`
}

func (s *Server) matchPosting(c *gin.Context) {
	op := NewOperationLogger("matchPosting", c.Request.Method, c.Request.URL.Path, RequestIDFromContext(c))
	op.LogStart()

	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		op.LogError(http.StatusBadRequest, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	opts := s.resolveOptions(req.Options)
	op.AddDetail("findings", len(req.Findings))

	matches := s.engine.FindMatches(c.Request.Context(), req.Text, req.Findings, opts)

	op.AddDetail("matches", len(matches))
	op.LogSuccess(http.StatusOK)
	c.JSON(http.StatusOK, MatchResponse{
		Matches: matches,
		Stats:   s.engine.Stats(),
	})
}

// matchPostingLegacy serves older clients that predate confidence scoring.
func (s *Server) matchPostingLegacy(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	opts := s.resolveOptions(req.Options)
	matches := s.engine.FindMatches(c.Request.Context(), req.Text, req.Findings, opts)
	c.JSON(http.StatusOK, gin.H{"matches": models.ToPhraseMatches(matches)})
}

func (s *Server) getMatchStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.Stats())
}

func (s *Server) getCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.CacheStats())
}

func (s *Server) clearCaches(c *gin.Context) {
	s.engine.ClearCaches()
	c.JSON(http.StatusOK, MessageResponse{Message: "caches cleared"})
}

// resolveOptions merges request options over the configured defaults. Only
// fields the caller actually sent override; invalid values keep the default.
func (s *Server) resolveOptions(reqOpts *MatchOptions) models.MatchingOptions {
	opts := DefaultOptionsFromConfig()
	if reqOpts == nil {
		return opts
	}
	if reqOpts.EnableExactMatch != nil {
		opts.EnableExactMatch = *reqOpts.EnableExactMatch
	}
	if reqOpts.EnableNormalization != nil {
		opts.EnableNormalization = *reqOpts.EnableNormalization
	}
	if reqOpts.EnablePartialMatch != nil {
		opts.EnablePartialMatch = *reqOpts.EnablePartialMatch
	}
	if reqOpts.EnableFuzzyMatching != nil {
		opts.EnableFuzzyMatching = *reqOpts.EnableFuzzyMatching
	}
	if reqOpts.FuzzyThreshold != nil && *reqOpts.FuzzyThreshold > 0 && *reqOpts.FuzzyThreshold <= 1 {
		opts.FuzzyThreshold = *reqOpts.FuzzyThreshold
	}
	if reqOpts.ShowConfidence != nil {
		opts.ShowConfidence = *reqOpts.ShowConfidence
	}
	if reqOpts.Debug != nil {
		opts.Debug = *reqOpts.Debug
	}
	if reqOpts.ErrorLogLevel != nil && *reqOpts.ErrorLogLevel == string(models.ErrorLogDetailed) {
		opts.ErrorLogLevel = models.ErrorLogDetailed
	}
	if reqOpts.EnablePreciseFuzzy != nil {
		opts.EnablePreciseFuzzy = *reqOpts.EnablePreciseFuzzy
	}
	if reqOpts.EnableDynamicWindow != nil {
		opts.EnableDynamicWindow = *reqOpts.EnableDynamicWindow
	}
	if reqOpts.EnableSimilarityCache != nil {
		opts.EnableSimilarityCache = *reqOpts.EnableSimilarityCache
	}
	if reqOpts.MaxSearchRange != nil && *reqOpts.MaxSearchRange > 0 {
		opts.MaxSearchRange = *reqOpts.MaxSearchRange
	}
	if reqOpts.ProcessingTimeout != nil && *reqOpts.ProcessingTimeout > 0 {
		opts.ProcessingTimeout = *reqOpts.ProcessingTimeout
		// Keep one run from monopolizing a request slot indefinitely
		if opts.ProcessingTimeout > time.Minute {
			opts.ProcessingTimeout = time.Minute
		}
	}
	return opts
}
