package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WhisperASRProvider implements STT against a self-hosted Whisper ASR
// webservice (openai-whisper-asr-webservice compatible API).
type WhisperASRProvider struct {
	url        string
	httpClient *http.Client
}

// NewWhisperASRProvider creates a new whisper-asr provider
func NewWhisperASRProvider(url string) *WhisperASRProvider {
	return &WhisperASRProvider{
		url:        strings.TrimSuffix(url, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Minute},
	}
}

// Name returns the provider name
func (p *WhisperASRProvider) Name() string {
	return "whisper-asr"
}

// whisperASRResponse represents the ASR webservice JSON response
type whisperASRResponse struct {
	Task     string  `json:"task"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Transcribe uploads the audio file to the ASR webservice and returns the
// transcript with the detected language.
func (p *WhisperASRProvider) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	startTime := time.Now()

	f, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat audio file: %w", err)
	}

	log.Printf("[Whisper ASR] Processing audio file: %s, size: %d bytes", audioPath, info.Size())

	if info.Size() < 1000 {
		return nil, fmt.Errorf("audio file too small (%d bytes), may be empty or corrupted", info.Size())
	}

	// Build multipart payload
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("audio_file", filepath.Base(audioPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(fw, f); err != nil {
		return nil, fmt.Errorf("failed to copy audio into form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	endpoint := p.url + "/asr?task=transcribe&output=json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to whisper-asr: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Whisper ASR] API error: Status %d, Body: %s", resp.StatusCode, string(respBody))
		return &Result{
			Provider:    p.Name(),
			RawResponse: string(respBody),
		}, fmt.Errorf("whisper-asr returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var asrResp whisperASRResponse
	if err := json.Unmarshal(respBody, &asrResp); err != nil {
		log.Printf("[Whisper ASR] Failed to parse response. Raw body: %s", string(respBody))
		return &Result{
			Provider:    p.Name(),
			RawResponse: string(respBody),
		}, fmt.Errorf("failed to parse whisper-asr response: %w", err)
	}

	transcript := strings.TrimSpace(asrResp.Text)
	if transcript == "" {
		log.Printf("[Whisper ASR] Empty transcript returned")
		return &Result{
			Provider:    p.Name(),
			RawResponse: string(respBody),
		}, fmt.Errorf("no speech detected in audio")
	}

	duration := time.Since(startTime)
	log.Printf("[Whisper ASR] Transcription successful: language=%s, length=%d, duration=%v",
		asrResp.Language, len(transcript), duration)

	return &Result{
		Transcript:  transcript,
		Language:    NormalizeLanguage(asrResp.Language),
		Duration:    asrResp.Duration,
		Provider:    p.Name(),
		RawResponse: string(respBody),
	}, nil
}
