package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framepick/adapters/clusterfile"
	"framepick/adapters/seriesfile"
	"framepick/domain/core"
	"framepick/ports"
)

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newService(archive ports.ReportArchive) *AnalysisService {
	return NewAnalysisService(seriesfile.NewLoader(), clusterfile.NewReader(), archive)
}

type memArchive struct {
	records []ports.ReportRecord
}

func (m *memArchive) Save(_ context.Context, record ports.ReportRecord) error {
	m.records = append(m.records, record)
	return nil
}

func (m *memArchive) Get(_ context.Context, runID core.RunID) (*ports.ReportRecord, error) {
	for i := range m.records {
		if m.records[i].RunID == runID {
			return &m.records[i], nil
		}
	}
	return nil, nil
}

func (m *memArchive) List(_ context.Context, limit int) ([]ports.ReportRecord, error) {
	if limit > len(m.records) {
		limit = len(m.records)
	}
	return m.records[:limit], nil
}

func referenceRequest(t *testing.T) AnalysisRequest {
	t.Helper()
	dir := t.TempDir()
	return AnalysisRequest{
		SeriesPaths: []string{
			writeInput(t, dir, "cat_dist.dat", "Frame d\n1 2\n2 3\n3 4\n"),
			writeInput(t, dir, "nuc_dist.dat", "Frame d\n1 1\n2 1\n3 1\n"),
			writeInput(t, dir, "leav_dist.dat", "Frame d\n1 5\n2 2\n3 1\n"),
		},
		ClusterPath: writeInput(t, dir, "clusters.txt",
			"Cluster Representative Members\n1 2 1,2\n2 3 3\n"),
	}
}

func TestRun_EndToEnd(t *testing.T) {
	archive := &memArchive{}
	svc := newService(archive)

	result, err := svc.Run(context.Background(), referenceRequest(t))
	require.NoError(t, err)

	// Composite scores [8, 6, 6]: frame 2 wins the tie, DMCS = 1/3.
	assert.Equal(t, 2, result.Best.Frame)
	assert.Equal(t, 6.0, result.Best.Score)
	assert.InDelta(t, 1.0/3.0, result.Scores.DMCS, 1e-12)

	require.NotNil(t, result.Reconciliation.ClusterID)
	assert.Equal(t, 1, *result.Reconciliation.ClusterID)
	assert.True(t, result.Reconciliation.InDominantCluster)

	assert.Len(t, result.Profiles, 3)
	assert.Empty(t, result.Warnings)

	// The run was archived as its flattened record.
	require.Len(t, archive.records, 1)
	assert.Equal(t, result.RunID, archive.records[0].RunID)
	assert.Equal(t, 3, archive.records[0].FrameCount)
}

func TestRun_DeterministicFingerprintAndDMCS(t *testing.T) {
	svc := newService(nil)
	req := referenceRequest(t)

	first, err := svc.Run(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.Equal(t, first.Scores.DMCS, second.Scores.DMCS)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestRun_DegenerateScoresAbort(t *testing.T) {
	dir := t.TempDir()
	req := AnalysisRequest{
		SeriesPaths: []string{
			writeInput(t, dir, "a.dat", "Frame d\n1 2\n2 3\n3 4\n"),
			writeInput(t, dir, "b.dat", "Frame d\n1 1\n2 1\n3 1\n"),
			writeInput(t, dir, "c.dat", "Frame d\n1 5\n2 4\n3 3\n"),
		},
		ClusterPath: writeInput(t, dir, "clusters.txt",
			"Cluster Representative Members\n1 1 1,2,3\n"),
	}

	_, err := newService(nil).Run(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrDegenerateScoreRange)
}

func TestRun_MalformedSeriesAborts(t *testing.T) {
	dir := t.TempDir()
	req := AnalysisRequest{
		SeriesPaths: []string{
			writeInput(t, dir, "a.dat", "Frame d\n1 2\nbroken\n"),
			writeInput(t, dir, "b.dat", "Frame d\n1 1\n"),
		},
		ClusterPath: writeInput(t, dir, "clusters.txt",
			"Cluster Representative Members\n1 1 1\n"),
	}

	_, err := newService(nil).Run(context.Background(), req)
	require.Error(t, err)
	assert.True(t, core.IsMalformedSeries(err))
}

func TestRun_DroppedFramesSurfaceAsWarnings(t *testing.T) {
	dir := t.TempDir()
	req := AnalysisRequest{
		SeriesPaths: []string{
			writeInput(t, dir, "a.dat", "Frame d\n1 2\n2 3\n3 9\n"),
			writeInput(t, dir, "b.dat", "Frame d\n1 1\n2 5\n"),
		},
		ClusterPath: writeInput(t, dir, "clusters.txt",
			"Cluster Representative Members\n1 1 1,2\n"),
	}

	result, err := newService(nil).Run(context.Background(), req)
	require.NoError(t, err)

	require.NotEmpty(t, result.Warnings)
	assert.Equal(t, core.WarnDroppedFrames, result.Warnings[0].Code)
}

func TestRun_SeriesNameOverride(t *testing.T) {
	dir := t.TempDir()
	req := AnalysisRequest{
		SeriesPaths: []string{
			writeInput(t, dir, "a.dat", "Frame d\n1 2\n2 3\n"),
			writeInput(t, dir, "b.dat", "Frame d\n1 1\n2 0.5\n"),
		},
		SeriesNames: []string{"catalytic", "nucleophile"},
		ClusterPath: writeInput(t, dir, "clusters.txt",
			"Cluster Representative Members\n1 1 1,2\n"),
	}

	result, err := newService(nil).Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"catalytic", "nucleophile"}, result.Table.SeriesNames)
}

func TestRun_ValidatesRequest(t *testing.T) {
	svc := newService(nil)

	_, err := svc.Run(context.Background(), AnalysisRequest{ClusterPath: "x"})
	assert.Error(t, err)

	_, err = svc.Run(context.Background(), AnalysisRequest{SeriesPaths: []string{"a"}})
	assert.Error(t, err)

	_, err = svc.Run(context.Background(), AnalysisRequest{
		SeriesPaths: []string{"a", "b"},
		SeriesNames: []string{"only_one"},
		ClusterPath: "x",
	})
	assert.Error(t, err)
}
