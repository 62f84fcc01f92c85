package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MohammedAly22/Accent-Detective/internal/db"
	"github.com/MohammedAly22/Accent-Detective/internal/model"
	"github.com/google/uuid"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository() AnalysisRepository {
	return &postgresRepository{
		db: db.DB,
	}
}

// Create persists a finished analysis record
func (r *postgresRepository) Create(ctx context.Context, a *model.Analysis) error {
	query := `
		INSERT INTO analyses (
			id, title, source, source_url, audio_format, audio_duration_ms,
			audio_size_bytes, status, transcript, language, accent,
			accent_scores, confidence, quality, error_message,
			processing_time_ms, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		)
	`

	// Convert scores to JSONB
	var scoresJSON []byte
	if a.AccentScores != nil {
		var err error
		scoresJSON, err = json.Marshal(a.AccentScores)
		if err != nil {
			return fmt.Errorf("failed to marshal accent scores: %w", err)
		}
	}

	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.Title,
		a.Source,
		a.SourceURL,
		a.AudioFormat,
		a.AudioDurationMs,
		a.AudioSizeBytes,
		a.Status,
		a.Transcript,
		a.Language,
		a.Accent,
		scoresJSON,
		a.Confidence,
		a.Quality,
		a.ErrorMessage,
		a.ProcessingTimeMs,
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	return nil
}

// GetByID retrieves an analysis by ID
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Analysis, error) {
	query := `
		SELECT id, title, source, source_url, audio_format, audio_duration_ms,
		       audio_size_bytes, status, transcript, language, accent,
		       accent_scores, confidence, quality, error_message,
		       processing_time_ms, created_at
		FROM analyses
		WHERE id = $1 AND deleted_at IS NULL
	`

	a, err := scanAnalysis(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("analysis not found")
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	return a, nil
}

// List retrieves recent analyses, newest first
func (r *postgresRepository) List(ctx context.Context, limit, offset int) ([]model.Analysis, error) {
	query := `
		SELECT id, title, source, source_url, audio_format, audio_duration_ms,
		       audio_size_bytes, status, transcript, language, accent,
		       accent_scores, confidence, quality, error_message,
		       processing_time_ms, created_at
		FROM analyses
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var analyses []model.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		analyses = append(analyses, *a)
	}

	return analyses, rows.Err()
}

// Delete soft-deletes an analysis
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE analyses
		SET deleted_at = $2
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("analysis not found or already deleted")
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(s scanner) (*model.Analysis, error) {
	var a model.Analysis
	var scoresJSON []byte

	err := s.Scan(
		&a.ID,
		&a.Title,
		&a.Source,
		&a.SourceURL,
		&a.AudioFormat,
		&a.AudioDurationMs,
		&a.AudioSizeBytes,
		&a.Status,
		&a.Transcript,
		&a.Language,
		&a.Accent,
		&scoresJSON,
		&a.Confidence,
		&a.Quality,
		&a.ErrorMessage,
		&a.ProcessingTimeMs,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(scoresJSON) > 0 {
		if err := json.Unmarshal(scoresJSON, &a.AccentScores); err != nil {
			return nil, fmt.Errorf("failed to unmarshal accent scores: %w", err)
		}
	}

	return &a, nil
}
