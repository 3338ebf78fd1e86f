// file: internal/matcher/errors.go
// version: 1.0.0
// guid: 9b0c1d2e-3f4a-5b6c-7d8e-9f0a1b2c3d4f

package matcher

import (
	"fmt"
	"log"

	"github.com/mkurosawa/honne/internal/models"
)

// errorKind classifies internal matching failures for logging. The
// classification is never user-facing: every failure degrades to an empty
// result at the public boundary.
type errorKind string

const (
	errPhraseProcessing    errorKind = "phrase_processing"
	errPositionCalculation errorKind = "position_calculation"
	errFuzzyMatching       errorKind = "fuzzy_matching"
	errGeneral             errorKind = "general"
)

// logMatchError emits a structured error record. Verbosity follows the
// configured error log level; detailed mode includes the phrase and
// surrounding context.
func logMatchError(kind errorKind, phrase string, opts models.MatchingOptions, err error) {
	if opts.ErrorLogLevel == models.ErrorLogDetailed || opts.Debug {
		log.Printf("[ERROR] matcher: type=%s phrase=%q err=%v", kind, phrase, err)
		return
	}
	log.Printf("[ERROR] matcher: type=%s err=%v", kind, err)
}

// safePhraseSearch runs one phrase search inside a recover boundary. A panic
// or error inside any stage yields zero matches for that phrase; it never
// propagates, so one malformed phrase cannot abort a whole batch.
func safePhraseSearch(phrase string, opts models.MatchingOptions, search func() ([]models.EnhancedPhraseMatch, error)) (result []models.EnhancedPhraseMatch) {
	defer func() {
		if r := recover(); r != nil {
			logMatchError(errPhraseProcessing, phrase, opts, fmt.Errorf("panic: %v", r))
			result = nil
		}
	}()
	matches, err := search()
	if err != nil {
		logMatchError(errPhraseProcessing, phrase, opts, err)
		return nil
	}
	return matches
}
