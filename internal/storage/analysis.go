package storage

import (
	"sort"
	"sync"

	"github.com/MohammedAly22/Accent-Detective/internal/model"
	"github.com/google/uuid"
)

var (
	analyses = make(map[uuid.UUID]*model.Analysis)
	mu       sync.Mutex
)

// SaveAnalysis stores an analysis record
func SaveAnalysis(a *model.Analysis) {
	mu.Lock()
	defer mu.Unlock()
	cp := cloneAnalysis(a)
	analyses[a.ID] = cp
}

// GetAnalysis retrieves an analysis by ID
func GetAnalysis(id uuid.UUID) (*model.Analysis, bool) {
	mu.Lock()
	defer mu.Unlock()
	a, ok := analyses[id]
	if !ok {
		return nil, false
	}
	// Return a copy to avoid race conditions
	return cloneAnalysis(a), true
}

// ListAnalyses returns stored analyses, newest first, capped at limit.
func ListAnalyses(limit int) []*model.Analysis {
	mu.Lock()
	defer mu.Unlock()

	out := make([]*model.Analysis, 0, len(analyses))
	for _, a := range analyses {
		out = append(out, cloneAnalysis(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// DeleteAnalysis removes an analysis by ID
func DeleteAnalysis(id uuid.UUID) bool {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := analyses[id]; !ok {
		return false
	}
	delete(analyses, id)
	return true
}

func cloneAnalysis(a *model.Analysis) *model.Analysis {
	cp := *a
	if a.AccentScores != nil {
		cp.AccentScores = make(map[string]float64, len(a.AccentScores))
		for k, v := range a.AccentScores {
			cp.AccentScores[k] = v
		}
	}
	return &cp
}
