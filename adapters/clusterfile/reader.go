package clusterfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"framepick/domain/cluster"
	"framepick/domain/core"
)

// Reader parses an externally produced clustering summary into cluster
// records. Summary tools order their columns differently, so columns are
// matched by header name rather than position; only the column order of the
// header line is trusted.
//
// Recognized headers (case-insensitive): cluster (id), representative,
// members (comma-separated frame list), population (optional).
type Reader struct{}

// NewReader creates a cluster summary reader
func NewReader() *Reader {
	return &Reader{}
}

const (
	colCluster        = "cluster"
	colRepresentative = "representative"
	colMembers        = "members"
	colPopulation     = "population"
)

// ReadFile parses the summary at path.
func (r *Reader) ReadFile(path string) ([]cluster.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening cluster summary: %w", err)
	}
	defer f.Close()

	return r.Read(f, path)
}

// Read parses a summary from rd; source attributes errors.
func (r *Reader) Read(rd io.Reader, source string) ([]cluster.Record, error) {
	scanner := bufio.NewScanner(rd)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", source, err)
		}
		return nil, core.NewInconsistentClusterError(0, "summary has no header line")
	}

	columns, err := parseHeader(scanner.Text())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	var records []cluster.Record
	lineNo := 1
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < len(columns) {
			return nil, core.NewInconsistentClusterError(0,
				fmt.Sprintf("%s:%d: expected %d columns, found %d", source, lineNo, len(columns), len(fields)))
		}

		record, err := parseRecord(fields, columns, source, lineNo)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}

	if err := cluster.ValidateSummary(records); err != nil {
		return nil, err
	}
	return records, nil
}

// parseHeader maps recognized column names to their positions.
func parseHeader(line string) (map[string]int, error) {
	columns := make(map[string]int)
	for i, name := range strings.Fields(line) {
		columns[strings.ToLower(name)] = i
	}

	for _, required := range []string{colCluster, colRepresentative, colMembers} {
		if _, ok := columns[required]; !ok {
			missing := missingColumns(columns)
			return nil, core.NewInconsistentClusterError(0,
				fmt.Sprintf("summary header lacks required column(s) %v", missing))
		}
	}
	return columns, nil
}

func missingColumns(columns map[string]int) []string {
	var missing []string
	for _, required := range []string{colCluster, colRepresentative, colMembers} {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}
	sort.Strings(missing)
	return missing
}

func parseRecord(fields []string, columns map[string]int, source string, lineNo int) (cluster.Record, error) {
	attr := func(reason string) error {
		return core.NewInconsistentClusterError(0, fmt.Sprintf("%s:%d: %s", source, lineNo, reason))
	}

	id, err := strconv.Atoi(fields[columns[colCluster]])
	if err != nil {
		return cluster.Record{}, attr(fmt.Sprintf("cluster id %q is not an integer", fields[columns[colCluster]]))
	}

	rep, err := strconv.Atoi(fields[columns[colRepresentative]])
	if err != nil {
		return cluster.Record{}, attr(fmt.Sprintf("representative %q is not an integer", fields[columns[colRepresentative]]))
	}

	members, err := parseMembers(fields[columns[colMembers]])
	if err != nil {
		return cluster.Record{}, attr(err.Error())
	}

	// Population column is optional: infer from member count when absent.
	population := len(members)
	if idx, ok := columns[colPopulation]; ok {
		population, err = strconv.Atoi(fields[idx])
		if err != nil {
			return cluster.Record{}, attr(fmt.Sprintf("population %q is not an integer", fields[idx]))
		}
	}

	return cluster.Record{
		ID:             id,
		Representative: rep,
		Members:        members,
		Population:     population,
	}, nil
}

func parseMembers(field string) ([]int, error) {
	parts := strings.Split(field, ",")
	members := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		frame, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("member frame %q is not an integer", p)
		}
		members = append(members, frame)
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("member list %q is empty", field)
	}
	return members, nil
}
