package ports

import (
	"framepick/domain/cluster"
	"framepick/domain/trajectory"
)

// SeriesSource loads one named measurement series from an upstream tool's
// textual output.
type SeriesSource interface {
	LoadFile(path string) (trajectory.Series, error)
}

// ClusterSource loads an externally produced clustering summary.
type ClusterSource interface {
	ReadFile(path string) ([]cluster.Record, error)
}
