package trajectory

import (
	"fmt"
	"sort"

	"framepick/domain/core"
)

// Table is the inner-joined frame table: one row per frame index common to
// every loaded series, one column per series in declared order. Every row
// holds exactly K() values; frames missing from any series never appear.
type Table struct {
	SeriesNames []string    `json:"series_names"`
	Frames      []int       `json:"frames"`
	Rows        [][]float64 `json:"rows"`

	// Dropped counts, per series, the frames lost to the inner join.
	// Non-fatal: surfaced as warnings on the final report.
	Dropped map[string]int `json:"dropped"`
}

// K returns the number of joined series (columns).
func (t *Table) K() int {
	return len(t.SeriesNames)
}

// Len returns the number of aligned rows.
func (t *Table) Len() int {
	return len(t.Frames)
}

// Row returns the frame index and values of row i.
func (t *Table) Row(i int) (int, []float64) {
	return t.Frames[i], t.Rows[i]
}

// Column returns the aligned values of the named series.
func (t *Table) Column(name string) ([]float64, error) {
	for j, n := range t.SeriesNames {
		if n == name {
			col := make([]float64, len(t.Rows))
			for i, row := range t.Rows {
				col[i] = row[j]
			}
			return col, nil
		}
	}
	return nil, fmt.Errorf("no series named %q in table", name)
}

// Warnings reports the dropped-frame diagnostics accumulated during alignment.
func (t *Table) Warnings() []core.Warning {
	names := make([]string, 0, len(t.Dropped))
	for name := range t.Dropped {
		names = append(names, name)
	}
	sort.Strings(names)

	var warnings []core.Warning
	for _, name := range names {
		if n := t.Dropped[name]; n > 0 {
			warnings = append(warnings, core.NewWarning(core.WarnDroppedFrames,
				"series %s lost %d frame(s) during alignment", name, n))
		}
	}
	return warnings
}

// BuildTable inner-joins the given series on frame index.
//
// The retained frame set is the intersection of all per-series frame sets,
// sorted ascending. An empty intersection is fatal (ErrNoCommonFrames); a
// strict subset of any series only records that series' dropped-frame count.
func BuildTable(series []Series) (*Table, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("no series to align")
	}

	names := make([]string, len(series))
	indexes := make([]map[int]float64, len(series))
	for i, s := range series {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("invalid series: %w", err)
		}
		names[i] = s.Name
		indexes[i] = s.Index()
	}

	// Intersect frame sets, seeding from the first series.
	common := make([]int, 0, series[0].Len())
	for _, m := range series[0].Measurements {
		inAll := true
		for _, idx := range indexes[1:] {
			if _, ok := idx[m.Frame]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			common = append(common, m.Frame)
		}
	}
	if len(common) == 0 {
		return nil, core.NewNoCommonFramesError(names)
	}
	sort.Ints(common)

	rows := make([][]float64, len(common))
	for i, frame := range common {
		row := make([]float64, len(series))
		for j, idx := range indexes {
			row[j] = idx[frame]
		}
		rows[i] = row
	}

	dropped := make(map[string]int, len(series))
	for i, s := range series {
		dropped[names[i]] = s.Len() - len(common)
	}

	return &Table{
		SeriesNames: names,
		Frames:      common,
		Rows:        rows,
		Dropped:     dropped,
	}, nil
}
