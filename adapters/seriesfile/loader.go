package seriesfile

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"framepick/domain/core"
	"framepick/domain/trajectory"
)

// Loader parses whitespace-delimited per-criterion distance files. Each file
// is a header line (skipped unconditionally) followed by `frame_index value`
// rows. Parsing is strict: a bad row fails the whole load with an error
// naming file and line, so upstream tool failures are never masked by
// silently skipped rows.
type Loader struct{}

// NewLoader creates a series file loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFile parses one series file. The series name defaults to the file's
// base name without extension.
func (l *Loader) LoadFile(path string) (trajectory.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return trajectory.Series{}, fmt.Errorf("opening series file: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return l.Parse(f, name, path)
}

// LoadFiles parses every path in order, producing one named series per file.
func (l *Loader) LoadFiles(paths []string) ([]trajectory.Series, error) {
	series := make([]trajectory.Series, len(paths))
	for i, path := range paths {
		s, err := l.LoadFile(path)
		if err != nil {
			return nil, err
		}
		series[i] = s
	}
	return series, nil
}

// Parse reads one series from r. source attributes parse errors (usually the
// file path); name becomes the series name.
func (l *Loader) Parse(r io.Reader, name, source string) (trajectory.Series, error) {
	scanner := bufio.NewScanner(r)

	series := trajectory.Series{Name: name}
	lineNo := 0
	prevFrame := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		// Header line is skipped unconditionally.
		if lineNo == 1 {
			continue
		}
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return trajectory.Series{}, core.NewMalformedSeriesError(source, lineNo,
				fmt.Sprintf("expected 2 columns, found %d", len(fields)))
		}

		frame, err := strconv.Atoi(fields[0])
		if err != nil {
			return trajectory.Series{}, core.NewMalformedSeriesError(source, lineNo,
				fmt.Sprintf("frame index %q is not an integer", fields[0]))
		}
		value, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return trajectory.Series{}, core.NewMalformedSeriesError(source, lineNo,
				fmt.Sprintf("value %q is not a number", fields[1]))
		}

		if frame < 1 {
			return trajectory.Series{}, core.NewMalformedSeriesError(source, lineNo,
				fmt.Sprintf("frame index %d must be >= 1", frame))
		}
		if frame <= prevFrame {
			return trajectory.Series{}, core.NewMalformedSeriesError(source, lineNo,
				fmt.Sprintf("frame index %d is not strictly increasing", frame))
		}
		if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
			return trajectory.Series{}, core.NewMalformedSeriesError(source, lineNo,
				fmt.Sprintf("value %g is not a non-negative finite number", value))
		}

		series.Measurements = append(series.Measurements, trajectory.Measurement{Frame: frame, Value: value})
		prevFrame = frame
	}
	if err := scanner.Err(); err != nil {
		return trajectory.Series{}, fmt.Errorf("reading %s: %w", source, err)
	}

	if len(series.Measurements) == 0 {
		return trajectory.Series{}, core.NewMalformedSeriesError(source, lineNo,
			"no data rows after header")
	}

	return series, nil
}
