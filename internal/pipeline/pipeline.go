package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MohammedAly22/Accent-Detective/internal/accent"
	"github.com/MohammedAly22/Accent-Detective/internal/model"
	"github.com/MohammedAly22/Accent-Detective/internal/storage"
	"github.com/MohammedAly22/Accent-Detective/internal/stt"
	"github.com/google/uuid"
)

// Downloader fetches remote media into a temp dir as WAV.
type Downloader interface {
	DownloadAudio(ctx context.Context, url, tmpDir string) (path, title string, err error)
}

// Extractor normalizes media into mono 16 kHz WAV and probes durations.
type Extractor interface {
	ExtractAudio(ctx context.Context, inputPath, tmpDir string) (string, error)
	CheckDuration(ctx context.Context, path string) (time.Duration, error)
}

// Pipeline runs one analysis end to end: acquire media, normalize audio,
// transcribe, classify the accent when the speech is English, and store
// the result. Each run is synchronous and self-contained.
type Pipeline struct {
	downloader Downloader
	extractor  Extractor
	provider   stt.Provider
	classifier accent.Classifier
}

// New creates a pipeline over the given stage implementations
func New(d Downloader, e Extractor, p stt.Provider, c accent.Classifier) *Pipeline {
	return &Pipeline{
		downloader: d,
		extractor:  e,
		provider:   p,
		classifier: c,
	}
}

// AnalyzeUpload runs the pipeline over an already-saved uploaded file.
func (p *Pipeline) AnalyzeUpload(ctx context.Context, mediaPath, originalName string, sizeBytes int64) (*model.Analysis, error) {
	a := newAnalysis(originalName, model.SourceUpload)
	a.AudioPath = mediaPath
	a.AudioSizeBytes = &sizeBytes
	if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(originalName)), "."); ext != "" {
		a.AudioFormat = &ext
	}

	return p.run(ctx, a, mediaPath)
}

// AnalyzeURL downloads the media behind url and runs the pipeline over it.
func (p *Pipeline) AnalyzeURL(ctx context.Context, url string) (*model.Analysis, error) {
	a := newAnalysis(url, model.SourceURL)
	a.SourceURL = &url
	storage.SaveAnalysis(a)

	tmpDir, err := os.MkdirTemp("", "accent-detective-*")
	if err != nil {
		return p.fail(a, fmt.Errorf("failed to create temp directory: %w", err))
	}
	defer os.RemoveAll(tmpDir)

	log.Printf("[Pipeline] Step 1: Downloading audio for analysis %s", a.ID)
	audioPath, title, err := p.downloader.DownloadAudio(ctx, url, tmpDir)
	if err != nil {
		return p.fail(a, fmt.Errorf("failed to download audio: %w", err))
	}
	a.Title = title
	wav := "wav"
	a.AudioFormat = &wav
	if info, err := os.Stat(audioPath); err == nil {
		size := info.Size()
		a.AudioSizeBytes = &size
	}

	return p.run(ctx, a, audioPath)
}

// run executes extract -> transcribe -> classify over an acquired media file.
func (p *Pipeline) run(ctx context.Context, a *model.Analysis, mediaPath string) (*model.Analysis, error) {
	startTime := time.Now()
	a.Status = model.StatusProcessing
	storage.SaveAnalysis(a)

	tmpDir, err := os.MkdirTemp("", "accent-detective-*")
	if err != nil {
		return p.fail(a, fmt.Errorf("failed to create temp directory: %w", err))
	}
	defer os.RemoveAll(tmpDir)

	log.Printf("[Pipeline] Step 2: Extracting audio for analysis %s", a.ID)
	audioPath, err := p.extractor.ExtractAudio(ctx, mediaPath, tmpDir)
	if err != nil {
		return p.fail(a, fmt.Errorf("failed to extract audio: %w", err))
	}

	dur, err := p.extractor.CheckDuration(ctx, audioPath)
	if err != nil {
		return p.fail(a, err)
	}
	durMs := int(dur.Milliseconds())
	a.AudioDurationMs = &durMs

	log.Printf("[Pipeline] Step 3: Transcribing analysis %s (provider: %s)", a.ID, p.provider.Name())
	sttResult, err := p.provider.Transcribe(ctx, audioPath)
	if err != nil {
		return p.fail(a, fmt.Errorf("transcription failed: %w", err))
	}
	a.Transcript = &sttResult.Transcript
	a.Language = &sttResult.Language
	log.Printf("[Pipeline] Transcription done: language=%s, length=%d",
		sttResult.Language, len(sttResult.Transcript))

	// Accent classification only applies to English speech. For other
	// languages the analysis still completes with transcript + language.
	if sttResult.Language == "en" {
		log.Printf("[Pipeline] Step 4: Classifying accent for analysis %s", a.ID)
		scores, err := p.classifier.Classify(ctx, audioPath)
		if err != nil {
			return p.fail(a, fmt.Errorf("accent classification failed: %w", err))
		}

		pred, err := accent.Predict(scores)
		if err != nil {
			return p.fail(a, fmt.Errorf("invalid classifier output: %w", err))
		}

		quality := model.QualityTier(pred.Confidence)
		a.Accent = &pred.Accent
		a.AccentScores = pred.Scores
		a.Confidence = &pred.Confidence
		a.Quality = &quality
		log.Printf("[Pipeline] Accent detected: %s (%.2f%%, %s)", pred.Accent, pred.Confidence, quality)
	} else {
		log.Printf("[Pipeline] Skipping accent classification: detected language is %q, not English", sttResult.Language)
	}

	elapsed := int(time.Since(startTime).Milliseconds())
	a.ProcessingTimeMs = &elapsed
	a.Status = model.StatusProcessed
	storage.SaveAnalysis(a)

	log.Printf("[Pipeline] Analysis %s processed in %dms", a.ID, elapsed)
	return a, nil
}

// fail records the failure on the analysis and surfaces the error upward.
func (p *Pipeline) fail(a *model.Analysis, err error) (*model.Analysis, error) {
	msg := err.Error()
	a.Status = model.StatusFailed
	a.ErrorMessage = &msg
	storage.SaveAnalysis(a)
	log.Printf("[Pipeline] Analysis %s failed: %v", a.ID, err)
	return a, err
}

func newAnalysis(title, source string) *model.Analysis {
	return &model.Analysis{
		ID:        uuid.New(),
		Title:     title,
		Source:    source,
		Status:    model.StatusUploaded,
		CreatedAt: time.Now(),
	}
}
