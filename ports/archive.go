package ports

import (
	"context"
	"time"

	"framepick/domain/core"
	"framepick/domain/trajectory"
)

// ReportRecord is the storage-facing read model of one completed analysis
// run. Runs are stateless; archiving is an optional convenience for browsing
// past results, never an input to later runs.
type ReportRecord struct {
	RunID       core.RunID       `json:"run_id"`
	Fingerprint core.Fingerprint `json:"fingerprint"`
	CreatedAt   time.Time        `json:"created_at"`

	SeriesNames []string `json:"series_names"`
	FrameCount  int      `json:"frame_count"`
	Policy      string   `json:"policy"`

	BestFrame int     `json:"best_frame"`
	BestScore float64 `json:"best_score"`
	DMCS      float64 `json:"dmcs"`

	ClusterID          *int `json:"cluster_id,omitempty"`
	DominantClusterID  *int `json:"dominant_cluster_id,omitempty"`
	DominantPopulation int  `json:"dominant_population,omitempty"`
	InDominantCluster  bool `json:"in_dominant_cluster"`

	Profiles []trajectory.SeriesProfile `json:"profiles,omitempty"`
	Warnings []core.Warning             `json:"warnings,omitempty"`

	RuntimeMs int64 `json:"runtime_ms"`
}

// ReportArchive persists completed run reports
type ReportArchive interface {
	Save(ctx context.Context, record ReportRecord) error
	Get(ctx context.Context, runID core.RunID) (*ReportRecord, error)
	List(ctx context.Context, limit int) ([]ReportRecord, error)
}
