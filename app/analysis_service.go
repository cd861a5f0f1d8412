package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"framepick/domain/cluster"
	"framepick/domain/core"
	"framepick/domain/scoring"
	"framepick/domain/trajectory"
	"framepick/ports"
)

// AnalysisRequest names the inputs of one analysis run.
type AnalysisRequest struct {
	// SeriesPaths are the per-criterion distance files, one series each.
	SeriesPaths []string
	// SeriesNames optionally overrides the file-derived series names;
	// must match SeriesPaths in length when present.
	SeriesNames []string
	// ClusterPath is the externally produced clustering summary.
	ClusterPath string
	// Weights optionally configures the weighted-sum policy; nil means the
	// reference equal-weight behavior.
	Weights []float64
}

// RunResult is the complete outcome of one analysis run. Immutable once
// returned; runs share no state, so any number may execute in parallel.
type RunResult struct {
	RunID       core.RunID       `json:"run_id"`
	Fingerprint core.Fingerprint `json:"fingerprint"`
	CreatedAt   time.Time        `json:"created_at"`

	Series         []trajectory.Series        `json:"-"`
	Table          *trajectory.Table          `json:"-"`
	Scores         *scoring.Result            `json:"scores"`
	Best           scoring.Selection          `json:"best"`
	Profiles       []trajectory.SeriesProfile `json:"profiles"`
	Reconciliation *cluster.Report            `json:"reconciliation"`

	// Warnings aggregates every non-fatal condition of the run: dropped
	// frames during alignment, unmatched best frame, coverage gaps.
	Warnings []core.Warning `json:"warnings,omitempty"`

	RuntimeMs int64 `json:"runtime_ms"`
}

// ToRecord flattens the result into its storage-facing read model.
func (r *RunResult) ToRecord() ports.ReportRecord {
	return ports.ReportRecord{
		RunID:              r.RunID,
		Fingerprint:        r.Fingerprint,
		CreatedAt:          r.CreatedAt,
		SeriesNames:        r.Table.SeriesNames,
		FrameCount:         r.Table.Len(),
		Policy:             r.Scores.Policy,
		BestFrame:          r.Best.Frame,
		BestScore:          r.Best.Score,
		DMCS:               r.Scores.DMCS,
		ClusterID:          r.Reconciliation.ClusterID,
		DominantClusterID:  r.Reconciliation.DominantClusterID,
		DominantPopulation: r.Reconciliation.DominantPopulation,
		InDominantCluster:  r.Reconciliation.InDominantCluster,
		Profiles:           r.Profiles,
		Warnings:           r.Warnings,
		RuntimeMs:          r.RuntimeMs,
	}
}

// AnalysisService runs the load → align → score → select → reconcile
// pipeline. Each run is independent and stateless; failures are structural
// (malformed input), never transient, so nothing is retried.
type AnalysisService struct {
	series   ports.SeriesSource
	clusters ports.ClusterSource
	archive  ports.ReportArchive // optional; nil disables archiving
}

// NewAnalysisService creates an analysis service. archive may be nil.
func NewAnalysisService(series ports.SeriesSource, clusters ports.ClusterSource, archive ports.ReportArchive) *AnalysisService {
	return &AnalysisService{series: series, clusters: clusters, archive: archive}
}

// Run executes one complete analysis.
func (s *AnalysisService) Run(ctx context.Context, req AnalysisRequest) (*RunResult, error) {
	started := time.Now()

	if len(req.SeriesPaths) == 0 {
		return nil, fmt.Errorf("at least one series file is required")
	}
	if len(req.SeriesNames) > 0 && len(req.SeriesNames) != len(req.SeriesPaths) {
		return nil, fmt.Errorf("%d series names for %d series files", len(req.SeriesNames), len(req.SeriesPaths))
	}
	if req.ClusterPath == "" {
		return nil, fmt.Errorf("cluster summary path is required")
	}

	// The input files are independent, so they load concurrently; declared
	// order is preserved by index, keeping every later stage deterministic.
	series := make([]trajectory.Series, len(req.SeriesPaths))
	var records []cluster.Record

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range req.SeriesPaths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			loaded, err := s.series.LoadFile(path)
			if err != nil {
				return err
			}
			if len(req.SeriesNames) > 0 {
				loaded.Name = req.SeriesNames[i]
			}
			series[i] = loaded
			return nil
		})
	}
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		loaded, err := s.clusters.ReadFile(req.ClusterPath)
		if err != nil {
			return err
		}
		records = loaded
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table, err := trajectory.BuildTable(series)
	if err != nil {
		return nil, err
	}

	var policy scoring.Policy
	if len(req.Weights) > 0 {
		policy, err = scoring.NewWeightedSum(req.Weights)
		if err != nil {
			return nil, fmt.Errorf("invalid weights: %w", err)
		}
	}

	scores, err := scoring.Score(table, policy)
	if err != nil {
		return nil, err
	}

	best, err := scoring.SelectBest(scores)
	if err != nil {
		return nil, err
	}

	reconciliation := cluster.Reconcile(best, scores.DMCS, table.Frames, records)

	result := &RunResult{
		RunID:          core.NewRunID(),
		Fingerprint:    fingerprintInputs(series, records, req.Weights),
		CreatedAt:      time.Now().UTC(),
		Series:         series,
		Table:          table,
		Scores:         scores,
		Best:           best,
		Profiles:       trajectory.ProfileAll(series),
		Reconciliation: reconciliation,
		RuntimeMs:      time.Since(started).Milliseconds(),
	}
	result.Warnings = append(result.Warnings, table.Warnings()...)
	result.Warnings = append(result.Warnings, reconciliation.Warnings...)

	if s.archive != nil {
		if err := s.archive.Save(ctx, result.ToRecord()); err != nil {
			// Archiving is a convenience, not part of the run contract.
			log.Printf("[AnalysisService] WARNING: archiving run %s failed: %v", result.RunID, err)
		}
	}

	log.Printf("[AnalysisService] run %s: best frame %d (composite %.3f), DMCS %.3f, %d warning(s), %d ms",
		result.RunID, best.Frame, best.Score, scores.DMCS, len(result.Warnings), result.RuntimeMs)

	return result, nil
}

// fingerprintInputs hashes the parsed inputs in canonical order. Identical
// inputs always yield the same fingerprint regardless of load concurrency.
func fingerprintInputs(series []trajectory.Series, records []cluster.Record, weights []float64) core.Fingerprint {
	sections := make(map[string]string, len(series)+2)
	for _, s := range series {
		sections["series:"+s.Name] = core.SectionForInts(s.Frames()) + "|" + core.SectionForFloats(s.Values())
	}

	var clusterSection string
	for _, r := range records {
		clusterSection += fmt.Sprintf("%d:%d:%d:%s;", r.ID, r.Representative, r.Population, core.SectionForInts(r.Members))
	}
	sections["clusters"] = clusterSection
	sections["weights"] = core.SectionForFloats(weights)

	return core.ComputeFingerprint(sections)
}
