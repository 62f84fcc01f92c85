package accent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

const defaultInferenceURL = "https://api-inference.huggingface.co/models/"

// HFClassifier implements accent classification via the Hugging Face
// Inference API audio-classification task.
type HFClassifier struct {
	token      string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewHFClassifier creates a classifier for the given model on the hosted
// Inference API.
func NewHFClassifier(token, model string) *HFClassifier {
	return &HFClassifier{
		token:      token,
		model:      model,
		baseURL:    defaultInferenceURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// Name returns the classifier backend name
func (c *HFClassifier) Name() string {
	return "huggingface"
}

// Classify posts the raw audio bytes to the Inference API and parses the
// returned label distribution. x-wait-for-model keeps the call synchronous
// while the hosted model cold-starts instead of failing with 503.
func (c *HFClassifier) Classify(ctx context.Context, audioPath string) ([]Score, error) {
	startTime := time.Now()

	audioBytes, err := os.ReadFile(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}

	log.Printf("[Accent HF] Classifying audio file: %s, size: %d bytes, model: %s",
		audioPath, len(audioBytes), c.model)

	if len(audioBytes) < 1000 {
		return nil, fmt.Errorf("audio file too small (%d bytes), may be empty or corrupted", len(audioBytes))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.model, bytes.NewReader(audioBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "audio/wav")
	req.Header.Set("x-wait-for-model", "true")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Hugging Face: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[Accent HF] API error: Status %d, Body: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("Hugging Face API returned status %d: %s", resp.StatusCode, string(body))
	}

	var scores []Score
	if err := json.Unmarshal(body, &scores); err != nil {
		log.Printf("[Accent HF] Failed to parse response. Raw body: %s", string(body))
		return nil, fmt.Errorf("failed to parse Hugging Face response: %w", err)
	}

	if len(scores) == 0 {
		return nil, fmt.Errorf("Hugging Face returned no classification scores")
	}

	duration := time.Since(startTime)
	log.Printf("[Accent HF] Classification successful: top=%s (%.4f), classes=%d, duration=%v",
		scores[0].Label, scores[0].Score, len(scores), duration)

	return scores, nil
}
