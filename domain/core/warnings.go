package core

import "fmt"

// WarningCode classifies non-fatal conditions accumulated during a run.
// Warnings never abort an analysis; they ride along on the final report.
type WarningCode string

const (
	// WarnDroppedFrames means a series lost frames during inner-join alignment.
	WarnDroppedFrames WarningCode = "dropped_frames"
	// WarnUnmatchedFrame means the best-scoring frame belongs to no cluster.
	WarnUnmatchedFrame WarningCode = "unmatched_frame"
	// WarnCoverageGap means cluster members do not cover the analyzed frames.
	WarnCoverageGap WarningCode = "coverage_gap"
	// WarnEmptyClusterSummary means the summary declared no clusters at all.
	WarnEmptyClusterSummary WarningCode = "empty_cluster_summary"
)

// Warning pairs a code with a human-readable message
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Code, w.Message)
}

// NewWarning creates a warning with a formatted message
func NewWarning(code WarningCode, format string, args ...interface{}) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}
