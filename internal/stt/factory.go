package stt

import (
	"fmt"
	"log"
	"strings"

	"github.com/MohammedAly22/Accent-Detective/internal/config"
)

// CreateProvider creates an STT provider based on the loaded configuration
func CreateProvider(cfg *config.Config) (Provider, error) {
	providerName := strings.ToLower(cfg.STTProvider)

	// Default to OpenAI if not specified
	if providerName == "" {
		providerName = "openai"
		log.Printf("[STT Factory] STT_PROVIDER not set, defaulting to 'openai'")
	}

	switch providerName {
	case "openai":
		return createOpenAIProvider(cfg)
	case "whisper-asr":
		return createWhisperASRProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported STT provider: %s. Supported: openai, whisper-asr", providerName)
	}
}

func createOpenAIProvider(cfg *config.Config) (Provider, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	model := cfg.WhisperModel
	if model == "" {
		model = "whisper-1"
		log.Printf("[STT Factory] WHISPER_MODEL not set, using default: %s", model)
	}

	log.Printf("[STT Factory] Creating OpenAI Whisper provider with model: %s", model)
	return NewOpenAIProvider(cfg.OpenAIKey, model), nil
}

func createWhisperASRProvider(cfg *config.Config) (Provider, error) {
	if cfg.WhisperURL == "" {
		return nil, fmt.Errorf("WHISPER_ASR_URL environment variable is not set")
	}

	log.Printf("[STT Factory] Creating whisper-asr provider with URL: %s", cfg.WhisperURL)
	return NewWhisperASRProvider(cfg.WhisperURL), nil
}
