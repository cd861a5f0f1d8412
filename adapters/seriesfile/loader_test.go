package seriesfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"framepick/domain/core"
)

func TestParse_SkipsHeaderAndParsesRows(t *testing.T) {
	input := "Frame dist_CA\n1 2.31\n2 1.94\n5 3.07\n"

	series, err := NewLoader().Parse(strings.NewReader(input), "dist_CA", "dist_CA.dat")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if series.Len() != 3 {
		t.Fatalf("Expected 3 measurements, got %d", series.Len())
	}
	if series.Measurements[2].Frame != 5 || series.Measurements[2].Value != 3.07 {
		t.Errorf("Row 3 mismatch: %+v", series.Measurements[2])
	}
}

func TestParse_MalformedRowNamesFileAndLine(t *testing.T) {
	input := "Frame dist\n1 2.31\nnot_a_frame 1.0\n"

	_, err := NewLoader().Parse(strings.NewReader(input), "dist", "run7/dist.dat")
	if err == nil {
		t.Fatal("Expected malformed row to fail the whole load, got nil")
	}
	if !core.IsMalformedSeries(err) {
		t.Fatalf("Expected MalformedSeries error, got %v", err)
	}
	if !strings.Contains(err.Error(), "run7/dist.dat:3") {
		t.Errorf("Error must attribute file and line, got %q", err.Error())
	}
}

func TestParse_WrongColumnCount(t *testing.T) {
	input := "Frame dist\n1 2.31 extra\n"
	_, err := NewLoader().Parse(strings.NewReader(input), "dist", "dist.dat")
	if !core.IsMalformedSeries(err) {
		t.Errorf("Expected MalformedSeries for 3-column row, got %v", err)
	}
}

func TestParse_RejectsNonIncreasingFrames(t *testing.T) {
	input := "Frame dist\n2 1.0\n2 2.0\n"
	_, err := NewLoader().Parse(strings.NewReader(input), "dist", "dist.dat")
	if !core.IsMalformedSeries(err) {
		t.Errorf("Expected MalformedSeries for duplicate frame, got %v", err)
	}
}

func TestParse_RejectsNegativeValues(t *testing.T) {
	input := "Frame dist\n1 -0.5\n"
	_, err := NewLoader().Parse(strings.NewReader(input), "dist", "dist.dat")
	if !core.IsMalformedSeries(err) {
		t.Errorf("Expected MalformedSeries for negative distance, got %v", err)
	}
}

func TestParse_HeaderOnlyFileFails(t *testing.T) {
	_, err := NewLoader().Parse(strings.NewReader("Frame dist\n"), "dist", "dist.dat")
	if !core.IsMalformedSeries(err) {
		t.Errorf("Expected MalformedSeries for header-only file, got %v", err)
	}
}

func TestLoadFile_NameFromBaseName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalytic_dist.dat")
	if err := os.WriteFile(path, []byte("Frame d\n1 1.5\n2 2.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	series, err := NewLoader().LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if series.Name != "catalytic_dist" {
		t.Errorf("Expected series name from base name, got %q", series.Name)
	}
}
