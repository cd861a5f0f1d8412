package cluster

import (
	"fmt"

	"framepick/domain/core"
)

// Record is one structural cluster as declared by the external clustering
// tool: an id, its member frames, a designated representative frame and a
// population count (inferred from the member list when the summary omits it).
type Record struct {
	ID             int   `json:"id"`
	Representative int   `json:"representative"`
	Members        []int `json:"members"`
	Population     int   `json:"population"`
}

// Contains reports whether the given frame is a member of the cluster.
func (r Record) Contains(frame int) bool {
	for _, m := range r.Members {
		if m == frame {
			return true
		}
	}
	return false
}

// ValidateSummary checks the structural invariants of a cluster summary:
// every representative must be a member of its own cluster, and a frame may
// appear in at most one cluster. Violations indicate a broken upstream
// summary and are fatal before reconciliation runs.
func ValidateSummary(records []Record) error {
	seen := make(map[int]int) // frame -> cluster id
	for _, r := range records {
		if len(r.Members) == 0 {
			return core.NewInconsistentClusterError(r.ID, "cluster has no members")
		}
		if !r.Contains(r.Representative) {
			return core.NewInconsistentClusterError(r.ID,
				fmt.Sprintf("representative frame %d is not a member", r.Representative))
		}
		for _, m := range r.Members {
			if owner, dup := seen[m]; dup {
				return core.NewInconsistentClusterError(r.ID,
					fmt.Sprintf("frame %d already belongs to cluster %d", m, owner))
			}
			seen[m] = r.ID
		}
	}
	return nil
}

// Dominant returns the most populous cluster; exact population ties break
// toward the lowest cluster id. The boolean is false for an empty summary.
func Dominant(records []Record) (Record, bool) {
	if len(records) == 0 {
		return Record{}, false
	}
	best := records[0]
	for _, r := range records[1:] {
		if r.Population > best.Population ||
			(r.Population == best.Population && r.ID < best.ID) {
			best = r
		}
	}
	return best, true
}

// Find returns the cluster containing the given frame, if any.
func Find(records []Record, frame int) (Record, bool) {
	for _, r := range records {
		if r.Contains(frame) {
			return r, true
		}
	}
	return Record{}, false
}
