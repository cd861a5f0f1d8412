package scoring

import "fmt"

// Selection identifies the best-scoring frame of a run.
type Selection struct {
	Frame int     `json:"frame"`
	Score float64 `json:"score"`
}

// SelectBest returns the frame with the minimum composite score: the smallest
// sum of distances is the most catalytically competent conformation under the
// smaller-is-better convention.
//
// Exact ties at the minimum are broken toward the lowest frame index. The
// tie-break is explicit rather than relying on input order, so re-sorted
// score sequences still select the same frame.
func SelectBest(result *Result) (Selection, error) {
	if result == nil || len(result.Frames) == 0 {
		return Selection{}, fmt.Errorf("cannot select from an empty score sequence")
	}
	if len(result.Frames) != len(result.Composite) {
		return Selection{}, fmt.Errorf("frame/score length mismatch: %d vs %d",
			len(result.Frames), len(result.Composite))
	}

	best := Selection{Frame: result.Frames[0], Score: result.Composite[0]}
	for i := 1; i < len(result.Frames); i++ {
		frame, score := result.Frames[i], result.Composite[i]
		if score < best.Score || (score == best.Score && frame < best.Frame) {
			best = Selection{Frame: frame, Score: score}
		}
	}
	return best, nil
}
