package model

import (
	"time"

	"github.com/google/uuid"
)

// Analysis status values
const (
	StatusUploaded   = "uploaded"
	StatusProcessing = "processing"
	StatusProcessed  = "processed"
	StatusFailed     = "failed"
)

// Source type values
const (
	SourceUpload = "upload"
	SourceURL    = "url"
)

// Analysis represents one accent-analysis run: the media that came in,
// the transcript the speech model produced, and the accent distribution
// the classifier returned.
type Analysis struct {
	ID               uuid.UUID          `json:"id"`
	Title            string             `json:"title"`
	Source           string             `json:"source"`
	SourceURL        *string            `json:"source_url,omitempty"`
	AudioPath        string             `json:"-"`
	AudioFormat      *string            `json:"audio_format,omitempty"`
	AudioDurationMs  *int               `json:"audio_duration_ms,omitempty"`
	AudioSizeBytes   *int64             `json:"audio_size_bytes,omitempty"`
	Status           string             `json:"status"`
	Transcript       *string            `json:"transcript,omitempty"`
	Language         *string            `json:"language,omitempty"`
	Accent           *string            `json:"accent,omitempty"`
	AccentScores     map[string]float64 `json:"accent_scores,omitempty"`
	Confidence       *float64           `json:"confidence,omitempty"`
	Quality          *string            `json:"quality,omitempty"`
	ErrorMessage     *string            `json:"error_message,omitempty"`
	ProcessingTimeMs *int               `json:"processing_time_ms,omitempty"`
	CreatedAt        time.Time          `json:"created_at"`
}

// QualityTier maps a confidence percentage to the tier shown in the UI.
func QualityTier(confidence float64) string {
	switch {
	case confidence > 80:
		return "Excellent"
	case confidence > 60:
		return "Good"
	default:
		return "Fair"
	}
}
