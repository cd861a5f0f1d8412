package scoring

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"framepick/domain/core"
	"framepick/domain/trajectory"
)

// Result holds the per-frame composite scores, their min–max normalization,
// and the run-level DMCS scalar. Computed once per completed frame table and
// immutable afterwards.
type Result struct {
	Frames     []int     `json:"frames"`
	Composite  []float64 `json:"composite"`
	Normalized []float64 `json:"normalized"`

	// DMCS is the Dynamic Mechanistic Compatibility Score: the mean of the
	// normalized composite scores. Always in [0,1]; lower means most frames
	// sit close to the best-observed composite score. A run-local, relative
	// metric, not an absolute physical measure.
	DMCS float64 `json:"dmcs"`

	Policy string `json:"policy"`
}

// Score computes composite scores, normalized compatibility values and the
// DMCS for an aligned frame table. A nil policy means the default uniform sum.
//
// Normalization requires at least two distinct composite values; a flat score
// sequence cannot be normalized (zero denominator) and fails explicitly
// rather than producing NaNs.
func Score(table *trajectory.Table, policy Policy) (*Result, error) {
	if table == nil || table.Len() == 0 {
		return nil, fmt.Errorf("cannot score an empty frame table")
	}
	if policy == nil {
		policy = NewUniformSum()
	}

	composite := make([]float64, table.Len())
	for i := range table.Rows {
		score, err := policy.Combine(table.Rows[i])
		if err != nil {
			return nil, fmt.Errorf("combining frame %d: %w", table.Frames[i], err)
		}
		composite[i] = score
	}

	minScore, _ := stats.Min(composite)
	maxScore, _ := stats.Max(composite)
	if maxScore == minScore {
		return nil, core.NewDegenerateScoreRangeError(minScore, len(composite))
	}

	span := maxScore - minScore
	normalized := make([]float64, len(composite))
	for i, s := range composite {
		normalized[i] = (s - minScore) / span
	}

	dmcs, _ := stats.Mean(normalized)

	frames := make([]int, len(table.Frames))
	copy(frames, table.Frames)

	return &Result{
		Frames:     frames,
		Composite:  composite,
		Normalized: normalized,
		DMCS:       dmcs,
		Policy:     policy.Name(),
	}, nil
}
