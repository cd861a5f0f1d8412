package trajectory

import "fmt"

// Measurement is one (frame, value) observation from an upstream distance tool.
type Measurement struct {
	Frame int     `json:"frame"`
	Value float64 `json:"value"`
}

// Series is one named proximity-criterion time series, ordered by frame index.
// Frame indices are unique and strictly increasing within a series; different
// series are NOT guaranteed to cover the same frames (upstream tools drop
// frames), so alignment is an explicit step, never an assumption.
type Series struct {
	Name         string        `json:"name"`
	Measurements []Measurement `json:"measurements"`
}

// Len returns the number of measurements in the series.
func (s Series) Len() int {
	return len(s.Measurements)
}

// Frames returns the ordered frame indices of the series.
func (s Series) Frames() []int {
	frames := make([]int, len(s.Measurements))
	for i, m := range s.Measurements {
		frames[i] = m.Frame
	}
	return frames
}

// Values returns the measurement values in frame order.
func (s Series) Values() []float64 {
	values := make([]float64, len(s.Measurements))
	for i, m := range s.Measurements {
		values[i] = m.Value
	}
	return values
}

// Index returns a frame→value lookup map for the series.
func (s Series) Index() map[int]float64 {
	idx := make(map[int]float64, len(s.Measurements))
	for _, m := range s.Measurements {
		idx[m.Frame] = m.Value
	}
	return idx
}

// Validate checks the per-series invariants: at least one measurement,
// frame indices ≥1 and strictly increasing, non-negative values.
func (s Series) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("series has no name")
	}
	if len(s.Measurements) == 0 {
		return fmt.Errorf("series %s has no measurements", s.Name)
	}
	prev := 0
	for i, m := range s.Measurements {
		if m.Frame < 1 {
			return fmt.Errorf("series %s: frame index %d at position %d must be >= 1", s.Name, m.Frame, i)
		}
		if m.Frame <= prev {
			return fmt.Errorf("series %s: frame index %d at position %d is not strictly increasing", s.Name, m.Frame, i)
		}
		if m.Value < 0 {
			return fmt.Errorf("series %s: negative value %g at frame %d", s.Name, m.Value, m.Frame)
		}
		prev = m.Frame
	}
	return nil
}
