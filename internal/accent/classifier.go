package accent

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// Score is one accent class with its probability.
type Score struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classifier defines the interface for accent classifiers
type Classifier interface {
	// Classify runs accent classification over an audio file and returns
	// per-class scores, highest first.
	Classify(ctx context.Context, audioPath string) ([]Score, error)

	// Name returns the name of the classifier backend
	Name() string
}

// labelNames maps the classifier's raw label set to display names.
var labelNames = map[string]string{
	"us":        "American",
	"canada":    "Canadian",
	"australia": "Australian",
	"england":   "British",
	"indian":    "Indian",
}

// DisplayLabel maps a raw model label to its display name. Unknown labels
// pass through unchanged.
func DisplayLabel(raw string) string {
	if name, ok := labelNames[raw]; ok {
		return name
	}
	return raw
}

// sumTolerance is how far from 1.0 the score total may drift before the
// distribution is considered invalid rather than a rounding artifact.
const sumTolerance = 0.05

// ValidateScores checks that scores form a valid probability distribution
// (non-negative, summing to ~1) and returns them sorted highest first with
// the sum normalized to exactly 1.
func ValidateScores(scores []Score) ([]Score, error) {
	if len(scores) == 0 {
		return nil, fmt.Errorf("classifier returned no scores")
	}

	sum := 0.0
	for _, s := range scores {
		if s.Score < 0 || math.IsNaN(s.Score) || math.IsInf(s.Score, 0) {
			return nil, fmt.Errorf("invalid score %v for label %q", s.Score, s.Label)
		}
		sum += s.Score
	}
	if math.Abs(sum-1.0) > sumTolerance {
		return nil, fmt.Errorf("scores sum to %.4f, expected ~1.0", sum)
	}

	out := make([]Score, len(scores))
	copy(out, scores)
	for i := range out {
		out[i].Score /= sum
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	return out, nil
}

// Prediction is the top pick derived from a validated score list.
type Prediction struct {
	Accent     string             // display name of the top class
	Confidence float64            // top score as a percentage (0-100)
	Scores     map[string]float64 // display name -> probability
}

// Predict validates raw scores and folds them into a Prediction.
func Predict(scores []Score) (*Prediction, error) {
	valid, err := ValidateScores(scores)
	if err != nil {
		return nil, err
	}

	dist := make(map[string]float64, len(valid))
	for _, s := range valid {
		dist[DisplayLabel(s.Label)] = s.Score
	}

	return &Prediction{
		Accent:     DisplayLabel(valid[0].Label),
		Confidence: valid[0].Score * 100,
		Scores:     dist,
	}, nil
}
