package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port         string
	STTProvider  string
	OpenAIKey    string
	WhisperModel string
	WhisperURL   string
	HFToken      string
	AccentModel  string
	YTDLPPath    string
	FFmpegPath   string
	FFprobePath  string
	MaxUploadMB  int64
	DatabaseURL  string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		STTProvider:  getEnv("STT_PROVIDER", "openai"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		WhisperModel: getEnv("WHISPER_MODEL", "whisper-1"),
		WhisperURL:   os.Getenv("WHISPER_ASR_URL"),
		HFToken:      os.Getenv("HF_API_TOKEN"),
		AccentModel:  getEnv("ACCENT_MODEL", "dima806/english_accents_classification"),
		YTDLPPath:    getEnv("YTDLP_PATH", "yt-dlp"),
		FFmpegPath:   getEnv("FFMPEG_PATH", "ffmpeg"),
		FFprobePath:  getEnv("FFPROBE_PATH", "ffprobe"),
		MaxUploadMB:  getEnvInt("MAX_UPLOAD_MB", 100),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
	}

	// The classifier always needs a Hugging Face token. The STT key is only
	// validated for the provider that was actually selected.
	if cfg.HFToken == "" {
		return nil, fmt.Errorf("HF_API_TOKEN is required for accent classification. Please set it as environment variable:\n  Linux/Mac: export HF_API_TOKEN=\"hf_...\"\n  Windows PowerShell: $env:HF_API_TOKEN=\"hf_...\"")
	}
	if cfg.STTProvider == "openai" && cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required when STT_PROVIDER=openai")
	}
	if cfg.STTProvider == "whisper-asr" && cfg.WhisperURL == "" {
		return nil, fmt.Errorf("WHISPER_ASR_URL is required when STT_PROVIDER=whisper-asr")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
