package stt

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements STT using the OpenAI audio transcriptions API
// (hosted Whisper).
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a new OpenAI Whisper provider
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Transcribe sends the audio file to the OpenAI transcriptions endpoint and
// returns transcript plus detected language. verbose_json is requested so
// the response carries the language the model detected.
func (p *OpenAIProvider) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	startTime := time.Now()

	info, err := os.Stat(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat audio file: %w", err)
	}

	log.Printf("[OpenAI STT] Processing audio file: %s, size: %d bytes", audioPath, info.Size())

	// Check if audio file is too small (likely empty or corrupted)
	if info.Size() < 1000 {
		return nil, fmt.Errorf("audio file too small (%d bytes), may be empty or corrupted", info.Size())
	}

	resp, err := p.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    p.model,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI transcription request failed: %w", err)
	}

	transcript := strings.TrimSpace(resp.Text)
	if transcript == "" {
		log.Printf("[OpenAI STT] Empty transcript returned")
		raw, _ := json.Marshal(resp)
		return &Result{
			Provider:    p.Name(),
			RawResponse: string(raw),
		}, fmt.Errorf("no speech detected in audio")
	}

	language := NormalizeLanguage(resp.Language)
	raw, _ := json.Marshal(resp)

	duration := time.Since(startTime)
	log.Printf("[OpenAI STT] Transcription successful: language=%s, length=%d, duration=%v",
		language, len(transcript), duration)

	return &Result{
		Transcript:  transcript,
		Language:    language,
		Duration:    resp.Duration,
		Provider:    p.Name(),
		RawResponse: string(raw),
	}, nil
}
