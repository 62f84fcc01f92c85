package stt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeFakeAudio(t *testing.T, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := os.WriteFile(path, make([]byte, size), 0644); err != nil {
		t.Fatalf("failed to write fake audio: %v", err)
	}
	return path
}

func TestWhisperASRTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/asr" {
			t.Errorf("path = %q, want /asr", r.URL.Path)
		}
		if _, _, err := r.FormFile("audio_file"); err != nil {
			t.Errorf("missing audio_file form part: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"task": "transcribe",
			"language": "en",
			"duration": 12.4,
			"text": "Hello there, how are you doing today?",
			"segments": [{"start": 0, "end": 12.4, "text": "Hello there, how are you doing today?"}]
		}`))
	}))
	defer srv.Close()

	p := NewWhisperASRProvider(srv.URL)
	result, err := p.Transcribe(context.Background(), writeFakeAudio(t, 4096))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Transcript != "Hello there, how are you doing today?" {
		t.Errorf("Transcript = %q", result.Transcript)
	}
	if result.Language != "en" {
		t.Errorf("Language = %q, want en", result.Language)
	}
	if result.Duration != 12.4 {
		t.Errorf("Duration = %v, want 12.4", result.Duration)
	}
	if result.Provider != "whisper-asr" {
		t.Errorf("Provider = %q", result.Provider)
	}
}

func TestWhisperASRTranscribeEmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"task": "transcribe", "language": "en", "text": "   "}`))
	}))
	defer srv.Close()

	p := NewWhisperASRProvider(srv.URL)
	if _, err := p.Transcribe(context.Background(), writeFakeAudio(t, 4096)); err == nil {
		t.Fatal("expected error for empty transcript")
	}
}

func TestWhisperASRTranscribeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewWhisperASRProvider(srv.URL)
	if _, err := p.Transcribe(context.Background(), writeFakeAudio(t, 4096)); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestWhisperASRTranscribeTooSmallAudio(t *testing.T) {
	p := NewWhisperASRProvider("http://localhost:9000")
	if _, err := p.Transcribe(context.Background(), writeFakeAudio(t, 10)); err == nil {
		t.Fatal("expected error for tiny audio file")
	}
}
