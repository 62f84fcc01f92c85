package storage

import (
	"testing"
	"time"

	"github.com/MohammedAly22/Accent-Detective/internal/model"
	"github.com/google/uuid"
)

func newTestAnalysis(title string, createdAt time.Time) *model.Analysis {
	return &model.Analysis{
		ID:        uuid.New(),
		Title:     title,
		Source:    model.SourceUpload,
		Status:    model.StatusProcessed,
		CreatedAt: createdAt,
		AccentScores: map[string]float64{
			"American": 0.8,
			"British":  0.2,
		},
	}
}

func TestSaveAndGetAnalysis(t *testing.T) {
	a := newTestAnalysis("clip.mp4", time.Now())
	SaveAnalysis(a)

	got, ok := GetAnalysis(a.ID)
	if !ok {
		t.Fatal("analysis not found after save")
	}
	if got.Title != "clip.mp4" {
		t.Errorf("Title = %q", got.Title)
	}

	// Stored copy must be isolated from caller mutations
	got.AccentScores["American"] = 0.0
	again, _ := GetAnalysis(a.ID)
	if again.AccentScores["American"] != 0.8 {
		t.Error("stored scores were mutated through a returned copy")
	}
}

func TestGetAnalysisMissing(t *testing.T) {
	if _, ok := GetAnalysis(uuid.New()); ok {
		t.Error("expected miss for unknown ID")
	}
}

func TestListAnalysesNewestFirst(t *testing.T) {
	base := time.Now()
	older := newTestAnalysis("older.mp4", base.Add(-time.Hour))
	newer := newTestAnalysis("newer.mp4", base)
	SaveAnalysis(older)
	SaveAnalysis(newer)

	list := ListAnalyses(0)
	if len(list) < 2 {
		t.Fatalf("got %d analyses, want at least 2", len(list))
	}

	var iOlder, iNewer int = -1, -1
	for i, a := range list {
		switch a.ID {
		case older.ID:
			iOlder = i
		case newer.ID:
			iNewer = i
		}
	}
	if iOlder == -1 || iNewer == -1 {
		t.Fatal("saved analyses missing from list")
	}
	if iNewer > iOlder {
		t.Error("list is not newest first")
	}

	if got := ListAnalyses(1); len(got) != 1 {
		t.Errorf("limit 1 returned %d items", len(got))
	}
}

func TestDeleteAnalysis(t *testing.T) {
	a := newTestAnalysis("gone.mp4", time.Now())
	SaveAnalysis(a)

	if !DeleteAnalysis(a.ID) {
		t.Fatal("delete reported miss for existing analysis")
	}
	if _, ok := GetAnalysis(a.ID); ok {
		t.Error("analysis still present after delete")
	}
	if DeleteAnalysis(a.ID) {
		t.Error("second delete reported success")
	}
}
