package stt

import (
	"testing"

	"github.com/MohammedAly22/Accent-Detective/internal/config"
)

func TestCreateProvider(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.Config
		wantName string
		wantErr  bool
	}{
		{
			name:     "openai",
			cfg:      &config.Config{STTProvider: "openai", OpenAIKey: "sk-test", WhisperModel: "whisper-1"},
			wantName: "openai",
		},
		{
			name:     "openai is the default",
			cfg:      &config.Config{STTProvider: "", OpenAIKey: "sk-test"},
			wantName: "openai",
		},
		{
			name:     "whisper-asr",
			cfg:      &config.Config{STTProvider: "whisper-asr", WhisperURL: "http://localhost:9000"},
			wantName: "whisper-asr",
		},
		{
			name:    "openai without key",
			cfg:     &config.Config{STTProvider: "openai"},
			wantErr: true,
		},
		{
			name:    "whisper-asr without url",
			cfg:     &config.Config{STTProvider: "whisper-asr"},
			wantErr: true,
		},
		{
			name:    "unknown provider",
			cfg:     &config.Config{STTProvider: "deepgram"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := CreateProvider(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got provider %v", p)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", p.Name(), tt.wantName)
			}
		})
	}
}
