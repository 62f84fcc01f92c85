package media

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// TargetSampleRate is the sample rate both pretrained models expect.
const TargetSampleRate = 16000

// MinDuration is the shortest clip worth sending to the models. Anything
// below this yields no usable speech signal.
const MinDuration = 1 * time.Second

// Extractor converts arbitrary audio/video inputs into mono 16 kHz PCM WAV
// by shelling out to ffmpeg, and probes durations with ffprobe.
type Extractor struct {
	ffmpegPath  string
	ffprobePath string
}

// NewExtractor creates an extractor using the given ffmpeg/ffprobe binaries
func NewExtractor(ffmpegPath, ffprobePath string) *Extractor {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Extractor{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath}
}

// ExtractAudio extracts a mono 16 kHz WAV from the input media file into
// tmpDir and returns its path.
func (e *Extractor) ExtractAudio(ctx context.Context, inputPath, tmpDir string) (string, error) {
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	out := filepath.Join(tmpDir, SanitizeFilename(base)+"_16k.wav")

	// ffmpeg -y -i input -vn -ac 1 -ar 16000 -f wav output
	cmd := exec.CommandContext(ctx, e.ffmpegPath,
		"-y", "-i", inputPath,
		"-vn",
		"-ac", "1",
		"-ar", strconv.Itoa(TargetSampleRate),
		"-f", "wav",
		out,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	log.Printf("[Extractor] Extracting audio: %s -> %s", inputPath, out)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg failed: %w: %s", err, tail(stderr.String(), 400))
	}

	// An empty or near-empty WAV means the input had no audio stream
	info, err := os.Stat(out)
	if err != nil {
		return "", fmt.Errorf("ffmpeg produced no output: %w", err)
	}
	if info.Size() < 1024 {
		return "", fmt.Errorf("extracted audio is too small (%d bytes), input may have no audio stream", info.Size())
	}

	return out, nil
}

// ProbeDuration returns the duration of a media file via ffprobe.
func (e *Extractor) ProbeDuration(ctx context.Context, path string) (time.Duration, error) {
	// ffprobe -v error -show_entries format=duration -of csv=p=0 input
	cmd := exec.CommandContext(ctx, e.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		path,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w: %s", err, tail(stderr.String(), 400))
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(stdout.String()), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe duration %q: %w", stdout.String(), err)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}

// CheckDuration probes the clip and rejects it when it is too short to
// carry usable speech.
func (e *Extractor) CheckDuration(ctx context.Context, path string) (time.Duration, error) {
	dur, err := e.ProbeDuration(ctx, path)
	if err != nil {
		return 0, err
	}
	if dur < MinDuration {
		return dur, fmt.Errorf("audio is too short (%.2fs), need at least %.0fs of speech", dur.Seconds(), MinDuration.Seconds())
	}
	return dur, nil
}

// tail returns at most n trailing characters of s, for error messages.
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
