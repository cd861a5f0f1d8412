package cluster

import (
	"framepick/domain/core"
	"framepick/domain/scoring"
)

// Report is the terminal artifact of an analysis run: the score-selected
// frame cross-referenced against the population-dominant structural cluster.
// Agreement between the two independent selection routes is the key
// mechanistic-interpretation signal.
type Report struct {
	BestFrame int     `json:"best_frame"`
	BestScore float64 `json:"best_score"`
	DMCS      float64 `json:"dmcs"`

	// ClusterID is nil when the best frame belongs to no cluster; an
	// expected upstream coverage limitation, reported rather than raised.
	ClusterID         *int `json:"cluster_id,omitempty"`
	ClusterPopulation int  `json:"cluster_population,omitempty"`

	DominantClusterID  *int `json:"dominant_cluster_id,omitempty"`
	DominantPopulation int  `json:"dominant_population,omitempty"`

	// InDominantCluster is true when the best-scoring frame sits inside the
	// most populous cluster.
	InDominantCluster bool `json:"in_dominant_cluster"`

	Warnings []core.Warning `json:"warnings,omitempty"`
}

// Reconcile cross-references the best-scoring frame against the cluster
// summary. analyzedFrames is the aligned frame set of the run, used only to
// detect coverage gaps (a warning, never an error). The records must already
// have passed ValidateSummary.
func Reconcile(best scoring.Selection, dmcs float64, analyzedFrames []int, records []Record) *Report {
	report := &Report{
		BestFrame: best.Frame,
		BestScore: best.Score,
		DMCS:      dmcs,
	}

	if len(records) == 0 {
		report.Warnings = append(report.Warnings, core.NewWarning(core.WarnEmptyClusterSummary,
			"cluster summary declares no clusters; reconciliation skipped"))
		return report
	}

	if owner, ok := Find(records, best.Frame); ok {
		id := owner.ID
		report.ClusterID = &id
		report.ClusterPopulation = owner.Population
	} else {
		report.Warnings = append(report.Warnings, core.NewWarning(core.WarnUnmatchedFrame,
			"best frame %d belongs to no cluster", best.Frame))
	}

	if dominant, ok := Dominant(records); ok {
		id := dominant.ID
		report.DominantClusterID = &id
		report.DominantPopulation = dominant.Population
		report.InDominantCluster = report.ClusterID != nil && *report.ClusterID == dominant.ID
	}

	if gap := countUncovered(analyzedFrames, records); gap > 0 {
		report.Warnings = append(report.Warnings, core.NewWarning(core.WarnCoverageGap,
			"%d analyzed frame(s) are covered by no cluster", gap))
	}

	return report
}

func countUncovered(frames []int, records []Record) int {
	covered := make(map[int]struct{})
	for _, r := range records {
		for _, m := range r.Members {
			covered[m] = struct{}{}
		}
	}
	gap := 0
	for _, f := range frames {
		if _, ok := covered[f]; !ok {
			gap++
		}
	}
	return gap
}
