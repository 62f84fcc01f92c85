package model

import "testing"

func TestQualityTier(t *testing.T) {
	tests := []struct {
		confidence float64
		want       string
	}{
		{95.0, "Excellent"},
		{80.1, "Excellent"},
		{80.0, "Good"},
		{61.0, "Good"},
		{60.0, "Fair"},
		{42.0, "Fair"},
		{0.0, "Fair"},
	}

	for _, tt := range tests {
		if got := QualityTier(tt.confidence); got != tt.want {
			t.Errorf("QualityTier(%v) = %q, want %q", tt.confidence, got, tt.want)
		}
	}
}
