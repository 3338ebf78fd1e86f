// file: internal/server/analyze_service.go
// version: 1.1.0
// guid: 9f0a1b2c-3d4e-5f6a-7b8c-9d0e1f2a3be9

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkurosawa/honne/internal/config"
	"github.com/mkurosawa/honne/internal/metrics"
	"github.com/mkurosawa/honne/internal/models"
)

// AnalyzeRequest carries a raw posting; findings come from the LLM.
type AnalyzeRequest struct {
	Text    string        `json:"text" binding:"required"`
	Options *MatchOptions `json:"options,omitempty"`
}

// AnalyzeResponse returns the findings together with their located spans.
type AnalyzeResponse struct {
	Findings []models.Finding             `json:"findings"`
	Matches  []models.EnhancedPhraseMatch `json:"matches"`
	Stats    models.MatchStats            `json:"stats"`
}

func (s *Server) analyzePosting(c *gin.Context) {
	op := NewOperationLogger("analyzePosting", c.Request.Method, c.Request.URL.Path, RequestIDFromContext(c))
	op.LogStart()
	metrics.IncAnalyzeRequests()

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		op.LogError(http.StatusBadRequest, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if s.findings == nil || !s.findings.IsEnabled() {
		op.LogError(http.StatusServiceUnavailable, errAnalysisDisabled)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "analysis is disabled: no OpenAI API key configured"})
		return
	}

	findings, err := s.findings.AnalyzePosting(c.Request.Context(), req.Text)
	if err != nil {
		metrics.IncAnalyzeFailed()
		op.LogError(http.StatusBadGateway, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "analysis failed: " + err.Error()})
		return
	}

	opts := s.resolveOptions(req.Options)
	matches := s.engine.FindMatches(c.Request.Context(), req.Text, findings, opts)

	op.AddDetail("findings", len(findings))
	op.AddDetail("matches", len(matches))
	op.LogSuccess(http.StatusOK)
	c.JSON(http.StatusOK, AnalyzeResponse{
		Findings: findings,
		Matches:  matches,
		Stats:    s.engine.Stats(),
	})
}

// DefaultOptionsFromConfig builds matching options from the configured
// defaults.
func DefaultOptionsFromConfig() models.MatchingOptions {
	opts := models.DefaultMatchingOptions()
	cfg := config.AppConfig.Matching
	opts.EnableFuzzyMatching = cfg.EnableFuzzy
	if cfg.FuzzyThreshold > 0 && cfg.FuzzyThreshold <= 1 {
		opts.FuzzyThreshold = cfg.FuzzyThreshold
	}
	if cfg.MaxSearchRange > 0 {
		opts.MaxSearchRange = cfg.MaxSearchRange
	}
	opts.Debug = cfg.Debug
	if cfg.ErrorLogLevel == string(models.ErrorLogDetailed) {
		opts.ErrorLogLevel = models.ErrorLogDetailed
	}
	return opts
}
