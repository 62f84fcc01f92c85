package repository

import (
	"context"

	"github.com/MohammedAly22/Accent-Detective/internal/model"
	"github.com/google/uuid"
)

// AnalysisRepository defines the interface for analysis data access
type AnalysisRepository interface {
	// Create persists a new analysis record
	Create(ctx context.Context, a *model.Analysis) error

	// GetByID retrieves an analysis by ID
	GetByID(ctx context.Context, id uuid.UUID) (*model.Analysis, error)

	// List retrieves recent analyses with pagination, newest first
	List(ctx context.Context, limit, offset int) ([]model.Analysis, error)

	// Delete soft-deletes an analysis
	Delete(ctx context.Context, id uuid.UUID) error
}
