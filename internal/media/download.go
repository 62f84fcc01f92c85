package media

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var unsafeFilenameChars = regexp.MustCompile(`[^\w\-_\. ]`)

// SanitizeFilename replaces characters that are not alphanumeric, dash,
// underscore, period, or space with an underscore.
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// Downloader fetches remote media and extracts its audio track as WAV
// using the yt-dlp command line tool.
type Downloader struct {
	ytdlpPath string
	timeout   time.Duration
}

// NewDownloader creates a downloader using the given yt-dlp binary path
func NewDownloader(ytdlpPath string) *Downloader {
	if ytdlpPath == "" {
		ytdlpPath = "yt-dlp"
	}
	return &Downloader{
		ytdlpPath: ytdlpPath,
		timeout:   10 * time.Minute,
	}
}

// DownloadAudio downloads the best audio stream of a video URL into tmpDir
// as a 16-bit WAV file. Returns the audio path and the video title.
func (d *Downloader) DownloadAudio(ctx context.Context, url, tmpDir string) (string, string, error) {
	if url == "" {
		return "", "", fmt.Errorf("url is empty")
	}
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	// Resolve the title first so the output file gets a predictable,
	// sanitized name.
	title, err := d.videoTitle(ctx, url)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve video title: %w", err)
	}
	safeTitle := SanitizeFilename(title)
	if safeTitle == "" {
		safeTitle = "audio"
	}

	outTemplate := filepath.Join(tmpDir, safeTitle+".%(ext)s")

	// yt-dlp -f bestaudio/best -x --audio-format wav --audio-quality 192K
	cmd := exec.CommandContext(ctx, d.ytdlpPath,
		"-f", "bestaudio/best",
		"-x", "--audio-format", "wav",
		"--audio-quality", "192K",
		"--no-playlist",
		"--quiet", "--no-warnings",
		"-o", outTemplate,
		url,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	log.Printf("[Downloader] Downloading audio from URL: %s", url)
	if err := cmd.Run(); err != nil {
		return "", "", fmt.Errorf("yt-dlp failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	audioPath := filepath.Join(tmpDir, safeTitle+".wav")
	if _, err := os.Stat(audioPath); err == nil {
		return audioPath, title, nil
	}

	// Fallback: yt-dlp occasionally renames the output, take any .wav in tmpDir
	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return "", "", fmt.Errorf("failed to read download directory: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".wav") {
			return filepath.Join(tmpDir, e.Name()), title, nil
		}
	}

	return "", "", fmt.Errorf("yt-dlp completed but no .wav output was found in %s", tmpDir)
}

// videoTitle asks yt-dlp for the media title without downloading it.
func (d *Downloader) videoTitle(ctx context.Context, url string) (string, error) {
	cmd := exec.CommandContext(ctx, d.ytdlpPath,
		"--print", "title",
		"--no-playlist",
		"--quiet", "--no-warnings",
		"--skip-download",
		url,
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("yt-dlp --print title failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	title := strings.TrimSpace(stdout.String())
	if title == "" {
		title = "audio"
	}
	return title, nil
}
