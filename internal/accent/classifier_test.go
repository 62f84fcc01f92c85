package accent

import (
	"math"
	"testing"
)

func TestValidateScores(t *testing.T) {
	tests := []struct {
		name    string
		scores  []Score
		wantErr bool
	}{
		{
			name: "valid distribution",
			scores: []Score{
				{Label: "us", Score: 0.6},
				{Label: "england", Score: 0.25},
				{Label: "indian", Score: 0.15},
			},
		},
		{
			name: "rounding drift within tolerance",
			scores: []Score{
				{Label: "us", Score: 0.51},
				{Label: "england", Score: 0.48},
			},
		},
		{
			name:    "empty",
			scores:  nil,
			wantErr: true,
		},
		{
			name: "negative score",
			scores: []Score{
				{Label: "us", Score: 1.2},
				{Label: "england", Score: -0.2},
			},
			wantErr: true,
		},
		{
			name: "sum far from one",
			scores: []Score{
				{Label: "us", Score: 0.3},
				{Label: "england", Score: 0.3},
			},
			wantErr: true,
		},
		{
			name: "NaN score",
			scores: []Score{
				{Label: "us", Score: math.NaN()},
				{Label: "england", Score: 1.0},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateScores(tt.scores)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got scores %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			sum := 0.0
			for _, s := range got {
				if s.Score < 0 {
					t.Errorf("negative score after validation: %v", s)
				}
				sum += s.Score
			}
			if math.Abs(sum-1.0) > 1e-9 {
				t.Errorf("normalized sum = %v, want 1.0", sum)
			}
			for i := 1; i < len(got); i++ {
				if got[i].Score > got[i-1].Score {
					t.Errorf("scores not sorted descending: %v", got)
				}
			}
		})
	}
}

func TestPredict(t *testing.T) {
	scores := []Score{
		{Label: "england", Score: 0.15},
		{Label: "us", Score: 0.7},
		{Label: "indian", Score: 0.15},
	}

	pred, err := Predict(scores)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pred.Accent != "American" {
		t.Errorf("Accent = %q, want American", pred.Accent)
	}
	if math.Abs(pred.Confidence-70.0) > 1e-9 {
		t.Errorf("Confidence = %v, want 70.0", pred.Confidence)
	}
	if len(pred.Scores) != 3 {
		t.Errorf("Scores has %d entries, want 3", len(pred.Scores))
	}
	if _, ok := pred.Scores["British"]; !ok {
		t.Errorf("Scores missing mapped label British: %v", pred.Scores)
	}
}

func TestDisplayLabel(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"us", "American"},
		{"canada", "Canadian"},
		{"australia", "Australian"},
		{"england", "British"},
		{"indian", "Indian"},
		{"scotland", "scotland"}, // unknown labels pass through
	}

	for _, tt := range tests {
		if got := DisplayLabel(tt.raw); got != tt.want {
			t.Errorf("DisplayLabel(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
