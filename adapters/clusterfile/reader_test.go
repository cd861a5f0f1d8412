package clusterfile

import (
	"strings"
	"testing"

	"framepick/domain/core"
)

func TestRead_BasicSummary(t *testing.T) {
	input := "Cluster Representative Population Members\n" +
		"1 12 3 10,12,14\n" +
		"2 20 2 20,22\n"

	records, err := NewReader().Read(strings.NewReader(input), "clusters.txt")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Expected 2 clusters, got %d", len(records))
	}
	if records[0].ID != 1 || records[0].Representative != 12 || records[0].Population != 3 {
		t.Errorf("Cluster 1 mismatch: %+v", records[0])
	}
	if len(records[1].Members) != 2 || records[1].Members[0] != 20 {
		t.Errorf("Cluster 2 members mismatch: %v", records[1].Members)
	}
}

func TestRead_ToleratesColumnReordering(t *testing.T) {
	// Same data, summary tool emitted columns in a different order.
	input := "Members Population Cluster Representative\n" +
		"10,12,14 3 1 12\n"

	records, err := NewReader().Read(strings.NewReader(input), "clusters.txt")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if records[0].ID != 1 || records[0].Representative != 12 {
		t.Errorf("Column reordering mishandled: %+v", records[0])
	}
}

func TestRead_PopulationInferredFromMembers(t *testing.T) {
	input := "Cluster Representative Members\n" +
		"3 7 5,6,7,9\n"

	records, err := NewReader().Read(strings.NewReader(input), "clusters.txt")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if records[0].Population != 4 {
		t.Errorf("Expected inferred population 4, got %d", records[0].Population)
	}
}

func TestRead_RepresentativeNotMemberIsRejected(t *testing.T) {
	input := "Cluster Representative Members\n" +
		"1 99 1,2,3\n"

	_, err := NewReader().Read(strings.NewReader(input), "clusters.txt")
	if err == nil {
		t.Fatal("Expected rejection before reconciliation, got nil")
	}
	if !core.IsInconsistentClusterSummary(err) {
		t.Errorf("Expected InconsistentClusterSummary error, got %v", err)
	}
}

func TestRead_MissingRequiredColumn(t *testing.T) {
	input := "Cluster Population Members\n1 2 1,2\n"
	_, err := NewReader().Read(strings.NewReader(input), "clusters.txt")
	if !core.IsInconsistentClusterSummary(err) {
		t.Errorf("Expected error for missing representative column, got %v", err)
	}
}

func TestRead_EmptySummaryHasNoClusters(t *testing.T) {
	input := "Cluster Representative Members\n"
	records, err := NewReader().Read(strings.NewReader(input), "clusters.txt")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}
