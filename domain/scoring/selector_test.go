package scoring

import "testing"

func TestSelectBest_MinimumWins(t *testing.T) {
	result := &Result{
		Frames:    []int{1, 2, 3, 4},
		Composite: []float64{8.1, 6.4, 7.0, 6.5},
	}

	best, err := SelectBest(result)
	if err != nil {
		t.Fatalf("SelectBest failed: %v", err)
	}
	if best.Frame != 2 || best.Score != 6.4 {
		t.Errorf("Expected frame 2 at 6.4, got frame %d at %g", best.Frame, best.Score)
	}
}

func TestSelectBest_TieBreaksToLowestFrameIndex(t *testing.T) {
	// Frames deliberately out of ascending order: the tie-break must not
	// depend on input ordering.
	result := &Result{
		Frames:    []int{9, 4, 7},
		Composite: []float64{6.0, 6.0, 6.0},
	}

	best, err := SelectBest(result)
	if err != nil {
		t.Fatalf("SelectBest failed: %v", err)
	}
	if best.Frame != 4 {
		t.Errorf("Expected lowest frame index 4 among exact ties, got %d", best.Frame)
	}
}

func TestSelectBest_EmptySequence(t *testing.T) {
	if _, err := SelectBest(&Result{}); err == nil {
		t.Error("Expected error for empty score sequence, got nil")
	}
	if _, err := SelectBest(nil); err == nil {
		t.Error("Expected error for nil result, got nil")
	}
}

func TestSelectBest_LengthMismatch(t *testing.T) {
	result := &Result{Frames: []int{1, 2}, Composite: []float64{1.0}}
	if _, err := SelectBest(result); err == nil {
		t.Error("Expected error for frame/score length mismatch, got nil")
	}
}
