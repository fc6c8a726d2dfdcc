// Package startups provides storage and synchronization of startup
// analysis records fetched from the analysis backend.
package startups

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/venturelens/venturelens/internal/domain"
)

// Repository provides startup record persistence over records.db.
//
// Scalar fields live in columns so they can be filtered and indexed;
// the optional nested analysis payloads are stored as JSON blobs and
// decoded back into the domain model on read.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new startup record repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ReplaceAll atomically replaces the stored records with the given set.
// Used after a successful sync: the upstream listing is the source of
// truth, so local rows for startups it no longer returns are dropped.
func (r *Repository) ReplaceAll(records []domain.StartupRecord) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM startups"); err != nil {
		return fmt.Errorf("failed to clear startups: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO startups
			(id, name, industry, risk_level, recommendation, overall_score, analysis_data, metrics, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		analysisJSON, metricsJSON, err := encodePayloads(&rec)
		if err != nil {
			return err
		}

		var score sql.NullFloat64
		if rec.OverallScore != nil {
			score = sql.NullFloat64{Float64: *rec.OverallScore, Valid: true}
		}

		_, err = stmt.Exec(
			rec.ID,
			rec.Name,
			rec.Industry,
			nullString(string(rec.RiskLevel)),
			nullString(rec.Recommendation),
			score,
			analysisJSON,
			metricsJSON,
			rec.CreatedAt.Unix(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert startup %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit replace: %w", err)
	}

	return nil
}

// List returns all stored records ordered by creation time (newest first).
func (r *Repository) List() ([]domain.StartupRecord, error) {
	rows, err := r.db.Query(`
		SELECT id, name, industry, risk_level, recommendation, overall_score, analysis_data, metrics, created_at
		FROM startups
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query startups: %w", err)
	}
	defer rows.Close()

	var records []domain.StartupRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate startups: %w", err)
	}

	return records, nil
}

// Get returns a single record by ID, or nil when not found.
func (r *Repository) Get(id string) (*domain.StartupRecord, error) {
	row := r.db.QueryRow(`
		SELECT id, name, industry, risk_level, recommendation, overall_score, analysis_data, metrics, created_at
		FROM startups
		WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Count returns the number of stored records.
func (r *Repository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM startups").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count startups: %w", err)
	}
	return count, nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanRecord
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(s scanner) (domain.StartupRecord, error) {
	var (
		rec            domain.StartupRecord
		riskLevel      sql.NullString
		recommendation sql.NullString
		score          sql.NullFloat64
		analysisJSON   sql.NullString
		metricsJSON    sql.NullString
		createdAt      int64
	)

	err := s.Scan(
		&rec.ID,
		&rec.Name,
		&rec.Industry,
		&riskLevel,
		&recommendation,
		&score,
		&analysisJSON,
		&metricsJSON,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return rec, err
	}
	if err != nil {
		return rec, fmt.Errorf("failed to scan startup: %w", err)
	}

	rec.RiskLevel = domain.RiskLevel(riskLevel.String)
	rec.Recommendation = recommendation.String
	rec.CreatedAt = time.Unix(createdAt, 0).UTC()

	if score.Valid {
		v := score.Float64
		rec.OverallScore = &v
	}

	if analysisJSON.Valid && analysisJSON.String != "" {
		var data domain.AnalysisData
		if err := json.Unmarshal([]byte(analysisJSON.String), &data); err != nil {
			return rec, fmt.Errorf("failed to decode analysis data for %s: %w", rec.ID, err)
		}
		rec.AnalysisData = &data
	}

	if metricsJSON.Valid && metricsJSON.String != "" {
		var m domain.Metrics
		if err := json.Unmarshal([]byte(metricsJSON.String), &m); err != nil {
			return rec, fmt.Errorf("failed to decode metrics for %s: %w", rec.ID, err)
		}
		rec.Metrics = &m
	}

	return rec, nil
}

func encodePayloads(rec *domain.StartupRecord) (sql.NullString, sql.NullString, error) {
	var analysisJSON, metricsJSON sql.NullString

	if rec.AnalysisData != nil {
		data, err := json.Marshal(rec.AnalysisData)
		if err != nil {
			return analysisJSON, metricsJSON, fmt.Errorf("failed to encode analysis data for %s: %w", rec.ID, err)
		}
		analysisJSON = sql.NullString{String: string(data), Valid: true}
	}

	if rec.Metrics != nil {
		data, err := json.Marshal(rec.Metrics)
		if err != nil {
			return analysisJSON, metricsJSON, fmt.Errorf("failed to encode metrics for %s: %w", rec.ID, err)
		}
		metricsJSON = sql.NullString{String: string(data), Valid: true}
	}

	return analysisJSON, metricsJSON, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
