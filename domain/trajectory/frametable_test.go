package trajectory

import (
	"testing"

	"framepick/domain/core"
)

func makeSeries(name string, frames []int, values []float64) Series {
	ms := make([]Measurement, len(frames))
	for i := range frames {
		ms[i] = Measurement{Frame: frames[i], Value: values[i]}
	}
	return Series{Name: name, Measurements: ms}
}

func TestBuildTable_IntersectionOfFrameSets(t *testing.T) {
	// Scenario: upstream tools dropped different frames from each series.
	a := makeSeries("dist_a", []int{1, 2, 3, 5}, []float64{1.0, 2.0, 3.0, 5.0})
	b := makeSeries("dist_b", []int{2, 3, 4, 5}, []float64{0.2, 0.3, 0.4, 0.5})

	table, err := BuildTable([]Series{a, b})
	if err != nil {
		t.Fatalf("BuildTable failed: %v", err)
	}

	wantFrames := []int{2, 3, 5}
	if len(table.Frames) != len(wantFrames) {
		t.Fatalf("Expected %d aligned frames, got %d", len(wantFrames), len(table.Frames))
	}
	for i, f := range wantFrames {
		if table.Frames[i] != f {
			t.Errorf("Frame %d: expected %d, got %d", i, f, table.Frames[i])
		}
	}

	// Values collected in declared series order.
	frame, row := table.Row(0)
	if frame != 2 || row[0] != 2.0 || row[1] != 0.2 {
		t.Errorf("Row 0 mismatch: frame=%d row=%v", frame, row)
	}

	// Every row has exactly k values.
	for i := range table.Rows {
		if len(table.Rows[i]) != table.K() {
			t.Errorf("Row %d has %d values, expected %d", i, len(table.Rows[i]), table.K())
		}
	}
}

func TestBuildTable_DroppedFrameDiagnostics(t *testing.T) {
	a := makeSeries("dist_a", []int{1, 2, 3, 5}, []float64{1, 2, 3, 5})
	b := makeSeries("dist_b", []int{2, 3, 5}, []float64{2, 3, 5})

	table, err := BuildTable([]Series{a, b})
	if err != nil {
		t.Fatalf("BuildTable failed: %v", err)
	}

	if table.Dropped["dist_a"] != 1 {
		t.Errorf("Expected dist_a to drop 1 frame, got %d", table.Dropped["dist_a"])
	}
	if table.Dropped["dist_b"] != 0 {
		t.Errorf("Expected dist_b to drop 0 frames, got %d", table.Dropped["dist_b"])
	}

	warnings := table.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("Expected exactly one dropped-frames warning, got %d", len(warnings))
	}
	if warnings[0].Code != core.WarnDroppedFrames {
		t.Errorf("Expected %s warning, got %s", core.WarnDroppedFrames, warnings[0].Code)
	}
}

func TestBuildTable_NoCommonFrames(t *testing.T) {
	a := makeSeries("dist_a", []int{1, 2}, []float64{1, 2})
	b := makeSeries("dist_b", []int{3, 4}, []float64{3, 4})

	_, err := BuildTable([]Series{a, b})
	if err == nil {
		t.Fatal("Expected error for disjoint frame sets, got nil")
	}
	if !core.IsInputError(err) {
		t.Errorf("Expected a NoCommonFrames input error, got %v", err)
	}
}

func TestBuildTable_RejectsInvalidSeries(t *testing.T) {
	decreasing := makeSeries("bad", []int{2, 1}, []float64{1, 2})
	if _, err := BuildTable([]Series{decreasing}); err == nil {
		t.Error("Expected error for non-increasing frame indices, got nil")
	}

	zeroFrame := makeSeries("bad", []int{0, 1}, []float64{1, 2})
	if _, err := BuildTable([]Series{zeroFrame}); err == nil {
		t.Error("Expected error for frame index < 1, got nil")
	}
}

func TestBuildTable_SingleSeriesKeepsAllFrames(t *testing.T) {
	a := makeSeries("dist_a", []int{1, 3, 7}, []float64{0.1, 0.3, 0.7})

	table, err := BuildTable([]Series{a})
	if err != nil {
		t.Fatalf("BuildTable failed: %v", err)
	}
	if table.Len() != 3 || table.K() != 1 {
		t.Errorf("Expected 3x1 table, got %dx%d", table.Len(), table.K())
	}
	if len(table.Warnings()) != 0 {
		t.Errorf("Expected no warnings for lossless alignment, got %v", table.Warnings())
	}
}
