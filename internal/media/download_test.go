package media

import "testing"

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Talk.wav", "My Talk.wav"},
		{"plain_name-1.0.mp4", "plain_name-1.0.mp4"},
		{"a/b\\c:d*e?f", "a_b_c_d_e_f"},
		{"what's up? (live) [HD]", "what_s up_ _live_ _HD_"},
		{"café détour", "caf_ d_tour"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
