package api

import (
	"context"
	"log"

	"github.com/MohammedAly22/Accent-Detective/internal/model"
	"github.com/MohammedAly22/Accent-Detective/internal/repository"
	"github.com/gin-gonic/gin"
)

// analysisRepo is the optional DB-backed history; nil when the service runs
// without a database.
var analysisRepo repository.AnalysisRepository

// InitAnalysisRepository sets the repository used for persistent history
func InitAnalysisRepository(repo repository.AnalysisRepository) {
	analysisRepo = repo
	log.Printf("[API] Analysis repository initialized")
}

// persistAnalysis writes a finished analysis to the database when one is
// configured. Persistence failures are logged, not surfaced: the in-memory
// result was already delivered.
func persistAnalysis(c *gin.Context, a *model.Analysis) {
	if analysisRepo == nil {
		return
	}
	if err := analysisRepo.Create(context.WithoutCancel(c.Request.Context()), a); err != nil {
		log.Printf("[API] Warning: failed to persist analysis %s: %v", a.ID, err)
	}
}
