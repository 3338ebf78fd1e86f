// file: internal/matcher/engine.go
// version: 1.4.0
// guid: 3f4a5b6c-7d8e-9f0a-1b2c-3d4e5f6a7b83

package matcher

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mkurosawa/honne/internal/cache"
	"github.com/mkurosawa/honne/internal/metrics"
	"github.com/mkurosawa/honne/internal/models"
	"github.com/mkurosawa/honne/internal/similarity"
	"github.com/mkurosawa/honne/internal/textnorm"
)

// DefaultMatchCacheSize bounds the engine's result cache.
const DefaultMatchCacheSize = 500

// Engine orchestrates matching across all findings of one posting: primary
// phrase first, related keywords only as a fallback, then overlap
// resolution, with the final result cached. The engine owns its caches;
// construct a fresh engine per test for isolation.
type Engine struct {
	finder *Finder
	scorer *similarity.Scorer
	cache  *cache.LRU[[]models.EnhancedPhraseMatch]

	mu        sync.Mutex
	lastStats models.MatchStats
}

// NewEngine creates an engine with the given cache capacities. Zero or
// negative values fall back to the defaults (500 match results, 2000
// similarity scores).
func NewEngine(matchCacheSize, similarityCacheSize int) *Engine {
	if matchCacheSize <= 0 {
		matchCacheSize = DefaultMatchCacheSize
	}
	if similarityCacheSize <= 0 {
		similarityCacheSize = similarity.DefaultCacheSize
	}
	scorer := similarity.NewScorer(similarityCacheSize)
	return &Engine{
		finder: NewFinder(scorer),
		scorer: scorer,
		cache:  cache.NewLRU[[]models.EnhancedPhraseMatch](matchCacheSize),
	}
}

// FindMatches locates every finding's phrase in text. It always returns a
// usable (possibly empty) slice: internal failures are logged and degrade to
// zero matches for the affected unit of work. The returned matches are
// sorted by position and non-overlapping. Callers must not mutate the
// result; it may be shared with the cache.
func (e *Engine) FindMatches(ctx context.Context, text string, findings []models.Finding, opts models.MatchingOptions) []models.EnhancedPhraseMatch {
	started := time.Now()
	metrics.IncMatchRequests()
	if text == "" || len(findings) == 0 {
		e.recordStats(nil, time.Since(started))
		return []models.EnhancedPhraseMatch{}
	}

	if opts.ProcessingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.ProcessingTimeout)
		defer cancel()
	}

	key := cacheKey(text, findings, opts)
	if cached, ok := e.cache.Get(key); ok {
		metrics.IncMatchCacheHits()
		e.recordStats(cached, time.Since(started))
		return cached
	}

	// Related keywords only ever need the fuzzy pre-screen text once.
	var flexText string
	if opts.EnableFuzzyMatching {
		flexText = textnorm.NormalizeFlexible(text)
	}

	var all []models.EnhancedPhraseMatch
	for i := range findings {
		if ctx.Err() != nil {
			if opts.Debug {
				log.Printf("[DEBUG] engine: stopping at finding %d: %v", i, ctx.Err())
			}
			break
		}
		finding := &findings[i]
		phrase := strings.TrimSpace(finding.OriginalPhrase)

		primary := e.finder.FindPhrase(ctx, text, phrase, opts)
		if len(primary) > 0 {
			// A primary hit suppresses the related keywords: highlighting
			// both would produce duplicate spans for the same concept.
			for _, m := range primary {
				m.Finding = finding
				m.ID = fmt.Sprintf("finding-%d-main-%s-%d", i, m.MatchType, m.StartIndex)
				all = append(all, m)
			}
			continue
		}

		for j, keyword := range finding.RelatedKeywords {
			if ctx.Err() != nil {
				break
			}
			if opts.EnableFuzzyMatching && !fuzzy.Match(textnorm.NormalizeFlexible(keyword), flexText) {
				// Not even a subsequence after folding; skip the pipeline.
				continue
			}
			for _, m := range e.finder.FindPhrase(ctx, text, keyword, opts) {
				m.Finding = finding
				m.ID = fmt.Sprintf("finding-%d-related-%d-%s-%d", i, j, m.MatchType, m.StartIndex)
				all = append(all, m)
			}
		}
	}

	result := Dedupe(all)
	if result == nil {
		result = []models.EnhancedPhraseMatch{}
	}

	elapsed := time.Since(started)
	e.recordStats(result, elapsed)

	// An interrupted run is partial: caching it would serve the truncated
	// result to later healthy calls under the same key.
	if ctx.Err() != nil {
		if opts.Debug {
			log.Printf("[DEBUG] engine: interrupted run not cached: %v", ctx.Err())
		}
		return result
	}

	e.cache.Set(key, result)
	metrics.ObserveMatchDuration(elapsed)
	for _, m := range result {
		metrics.IncMatchesFound(string(m.MatchType))
	}
	size, _ := e.scorer.CacheStats()
	metrics.SetSimilarityCacheSize(size)
	metrics.SetMatchCacheSize(e.cache.Len())

	if opts.Debug {
		log.Printf("[DEBUG] engine: %d findings -> %d matches in %v", len(findings), len(result), elapsed)
	}
	return result
}

// Stats returns statistics from the most recent FindMatches call.
func (e *Engine) Stats() models.MatchStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastStats
}

// CacheStats reports current/maximum sizes of both engine caches.
func (e *Engine) CacheStats() models.CacheStats {
	simSize, simLimit := e.scorer.CacheStats()
	return models.CacheStats{
		MatchCacheSize:       e.cache.Len(),
		MatchCacheLimit:      e.cache.Cap(),
		SimilarityCacheSize:  simSize,
		SimilarityCacheLimit: simLimit,
	}
}

// ClearCaches drops both caches; used for test isolation and memory
// pressure relief.
func (e *Engine) ClearCaches() {
	e.cache.Clear()
	e.scorer.ClearCache()
}

func (e *Engine) recordStats(matches []models.EnhancedPhraseMatch, elapsed time.Duration) {
	stats := models.ComputeMatchStats(matches, elapsed)
	e.mu.Lock()
	e.lastStats = stats
	e.mu.Unlock()
}

// cacheKey digests the full text content, every finding's searchable
// phrases, and the result-affecting options. Hashing content (rather than
// just lengths and counts) keeps equal-shaped but different inputs from
// colliding.
func cacheKey(text string, findings []models.Finding, opts models.MatchingOptions) string {
	h := xxhash.New()
	_, _ = h.WriteString(text)
	_, _ = h.WriteString("\x00")
	for _, f := range findings {
		_, _ = h.WriteString(f.OriginalPhrase)
		_, _ = h.WriteString("\x1f")
		for _, kw := range f.RelatedKeywords {
			_, _ = h.WriteString(kw)
			_, _ = h.WriteString("\x1e")
		}
		_, _ = h.WriteString("\x00")
	}
	_, _ = h.WriteString(opts.CacheKeyPart())
	return strconv.FormatUint(h.Sum64(), 16)
}
