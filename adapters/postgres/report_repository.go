package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"framepick/domain/core"
	"framepick/domain/trajectory"
	"framepick/ports"
)

// ReportRepositoryImpl implements ports.ReportArchive for PostgreSQL.
// The archive is browse-only history: a run never reads it back as input.
type ReportRepositoryImpl struct {
	db *sqlx.DB
}

// NewReportRepository creates a new PostgreSQL report archive
func NewReportRepository(db *sqlx.DB) *ReportRepositoryImpl {
	return &ReportRepositoryImpl{db: db}
}

// EnsureSchema creates the archive table when it does not exist yet.
func (r *ReportRepositoryImpl) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS run_reports (
			run_id              TEXT PRIMARY KEY,
			fingerprint         TEXT NOT NULL,
			created_at          TIMESTAMPTZ NOT NULL,
			series_names        JSONB NOT NULL,
			frame_count         INTEGER NOT NULL,
			policy              TEXT NOT NULL,
			best_frame          INTEGER NOT NULL,
			best_score          DOUBLE PRECISION NOT NULL,
			dmcs                DOUBLE PRECISION NOT NULL,
			cluster_id          INTEGER,
			dominant_cluster_id INTEGER,
			dominant_population INTEGER NOT NULL DEFAULT 0,
			in_dominant_cluster BOOLEAN NOT NULL,
			profiles            JSONB,
			warnings            JSONB,
			runtime_ms          BIGINT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensuring run_reports schema: %w", err)
	}
	return nil
}

type reportRow struct {
	RunID              string         `db:"run_id"`
	Fingerprint        string         `db:"fingerprint"`
	CreatedAt          time.Time      `db:"created_at"`
	SeriesNames        []byte         `db:"series_names"`
	FrameCount         int            `db:"frame_count"`
	Policy             string         `db:"policy"`
	BestFrame          int            `db:"best_frame"`
	BestScore          float64        `db:"best_score"`
	DMCS               float64        `db:"dmcs"`
	ClusterID          sql.NullInt64  `db:"cluster_id"`
	DominantClusterID  sql.NullInt64  `db:"dominant_cluster_id"`
	DominantPopulation int            `db:"dominant_population"`
	InDominantCluster  bool           `db:"in_dominant_cluster"`
	Profiles           []byte         `db:"profiles"`
	Warnings           []byte         `db:"warnings"`
	RuntimeMs          int64          `db:"runtime_ms"`
}

// Save stores a completed run report, replacing any previous row for the
// same run id.
func (r *ReportRepositoryImpl) Save(ctx context.Context, record ports.ReportRecord) error {
	seriesNamesJSON, _ := json.Marshal(record.SeriesNames)
	profilesJSON, _ := json.Marshal(record.Profiles)
	warningsJSON, _ := json.Marshal(record.Warnings)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO run_reports (
			run_id, fingerprint, created_at, series_names, frame_count, policy,
			best_frame, best_score, dmcs,
			cluster_id, dominant_cluster_id, dominant_population, in_dominant_cluster,
			profiles, warnings, runtime_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (run_id) DO UPDATE SET
			fingerprint = EXCLUDED.fingerprint,
			created_at = EXCLUDED.created_at,
			series_names = EXCLUDED.series_names,
			frame_count = EXCLUDED.frame_count,
			policy = EXCLUDED.policy,
			best_frame = EXCLUDED.best_frame,
			best_score = EXCLUDED.best_score,
			dmcs = EXCLUDED.dmcs,
			cluster_id = EXCLUDED.cluster_id,
			dominant_cluster_id = EXCLUDED.dominant_cluster_id,
			dominant_population = EXCLUDED.dominant_population,
			in_dominant_cluster = EXCLUDED.in_dominant_cluster,
			profiles = EXCLUDED.profiles,
			warnings = EXCLUDED.warnings,
			runtime_ms = EXCLUDED.runtime_ms`,
		record.RunID.String(), record.Fingerprint.String(), record.CreatedAt,
		seriesNamesJSON, record.FrameCount, record.Policy,
		record.BestFrame, record.BestScore, record.DMCS,
		nullableInt(record.ClusterID), nullableInt(record.DominantClusterID),
		record.DominantPopulation, record.InDominantCluster,
		profilesJSON, warningsJSON, record.RuntimeMs)
	if err != nil {
		return fmt.Errorf("saving run report %s: %w", record.RunID, err)
	}
	return nil
}

// Get retrieves one archived report by run id; nil when absent.
func (r *ReportRepositoryImpl) Get(ctx context.Context, runID core.RunID) (*ports.ReportRecord, error) {
	var row reportRow
	err := r.db.GetContext(ctx, &row,
		`SELECT * FROM run_reports WHERE run_id = $1`, runID.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading run report %s: %w", runID, err)
	}

	record, err := row.toRecord()
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns the most recent archived reports.
func (r *ReportRepositoryImpl) List(ctx context.Context, limit int) ([]ports.ReportRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []reportRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM run_reports ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing run reports: %w", err)
	}

	records := make([]ports.ReportRecord, 0, len(rows))
	for _, row := range rows {
		record, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (row reportRow) toRecord() (ports.ReportRecord, error) {
	record := ports.ReportRecord{
		RunID:              core.RunID(row.RunID),
		Fingerprint:        core.Fingerprint(row.Fingerprint),
		CreatedAt:          row.CreatedAt,
		FrameCount:         row.FrameCount,
		Policy:             row.Policy,
		BestFrame:          row.BestFrame,
		BestScore:          row.BestScore,
		DMCS:               row.DMCS,
		DominantPopulation: row.DominantPopulation,
		InDominantCluster:  row.InDominantCluster,
		RuntimeMs:          row.RuntimeMs,
	}

	if row.ClusterID.Valid {
		id := int(row.ClusterID.Int64)
		record.ClusterID = &id
	}
	if row.DominantClusterID.Valid {
		id := int(row.DominantClusterID.Int64)
		record.DominantClusterID = &id
	}

	if err := json.Unmarshal(row.SeriesNames, &record.SeriesNames); err != nil {
		return ports.ReportRecord{}, fmt.Errorf("decoding series names for %s: %w", row.RunID, err)
	}
	if len(row.Profiles) > 0 {
		var profiles []trajectory.SeriesProfile
		if err := json.Unmarshal(row.Profiles, &profiles); err != nil {
			return ports.ReportRecord{}, fmt.Errorf("decoding profiles for %s: %w", row.RunID, err)
		}
		record.Profiles = profiles
	}
	if len(row.Warnings) > 0 {
		var warnings []core.Warning
		if err := json.Unmarshal(row.Warnings, &warnings); err != nil {
			return ports.ReportRecord{}, fmt.Errorf("decoding warnings for %s: %w", row.RunID, err)
		}
		record.Warnings = warnings
	}

	return record, nil
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
