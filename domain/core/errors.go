package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input parsing errors
	ErrMalformedSeries            = errors.New("malformed series file")
	ErrInconsistentClusterSummary = errors.New("inconsistent cluster summary")

	// Alignment errors
	ErrNoCommonFrames = errors.New("no common frames across series")

	// Scoring errors
	ErrDegenerateScoreRange = errors.New("degenerate composite score range")
	ErrPolicyMismatch       = errors.New("weighting policy does not match criterion count")
)

// Error constructors with context

// NewMalformedSeriesError attributes a parse failure to a file and line number.
func NewMalformedSeriesError(source string, line int, reason string) error {
	return fmt.Errorf("%w: %s:%d: %s", ErrMalformedSeries, source, line, reason)
}

// NewInconsistentClusterError flags a cluster whose declared representative
// (or membership) violates the summary invariants.
func NewInconsistentClusterError(clusterID int, reason string) error {
	return fmt.Errorf("%w: cluster %d: %s", ErrInconsistentClusterSummary, clusterID, reason)
}

func NewNoCommonFramesError(seriesNames []string) error {
	return fmt.Errorf("%w: series %v share no frame indices", ErrNoCommonFrames, seriesNames)
}

func NewDegenerateScoreRangeError(score float64, frames int) error {
	return fmt.Errorf("%w: all %d frames have composite score %g", ErrDegenerateScoreRange, frames, score)
}

// Error checking helpers
func IsMalformedSeries(err error) bool {
	return errors.Is(err, ErrMalformedSeries)
}

func IsInconsistentClusterSummary(err error) bool {
	return errors.Is(err, ErrInconsistentClusterSummary)
}

// IsInputError reports whether err traces back to the caller's inputs rather
// than the environment. Every such failure is structural, so retrying the same
// inputs can never succeed.
func IsInputError(err error) bool {
	return errors.Is(err, ErrMalformedSeries) ||
		errors.Is(err, ErrInconsistentClusterSummary) ||
		errors.Is(err, ErrNoCommonFrames) ||
		errors.Is(err, ErrDegenerateScoreRange) ||
		errors.Is(err, ErrPolicyMismatch)
}
