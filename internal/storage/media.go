package storage

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/MohammedAly22/Accent-Detective/internal/media"
)

// UploadsDir is where uploaded media files are kept until processing ends.
const UploadsDir = "uploads"

// SaveUpload saves an uploaded media file and returns its path on disk.
func SaveUpload(file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(UploadsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create uploads directory: %w", err)
	}

	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), media.SanitizeFilename(file.Filename))
	dst := filepath.Join(UploadsDir, name)

	if err := saveMultipartFile(file, dst); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return dst, nil
}

/* helper */
func saveMultipartFile(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = out.ReadFrom(src)
	return err
}
