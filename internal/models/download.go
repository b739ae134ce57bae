// Package models manages the local store of whisper ggml model files.
package models

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/dsamborskyi/recnamer/internal/transcribe"
)

// Path returns the on-disk path for a catalog model inside dir.
func Path(dir string, m *transcribe.Model) string {
	return filepath.Join(dir, m.File)
}

// IsDownloaded checks whether the model file exists and is non-empty.
func IsDownloaded(dir string, m *transcribe.Model) bool {
	info, err := os.Stat(Path(dir, m))
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}

// Ensure returns the path to the model file, downloading it first when
// it is not present.
func Ensure(dir string, m *transcribe.Model) (string, error) {
	if IsDownloaded(dir, m) {
		return Path(dir, m), nil
	}
	log.Info("model not found locally, downloading", "model", m.Label, "size", m.Size)
	return Download(dir, m.URL(), m)
}

// Download fetches the model file from url into dir. It writes to a
// temp file first and renames on success, so a partial download never
// passes the IsDownloaded check.
func Download(dir, url string, m *transcribe.Model) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating models dir: %w", err)
	}

	destPath := Path(dir, m)
	if info, err := os.Stat(destPath); err == nil && info.Size() > 0 {
		fmt.Printf("  Model already exists: %s (%.0f MB)\n", destPath, float64(info.Size())/(1024*1024))
		return destPath, nil
	}

	fmt.Printf("  Downloading %s\n", url)
	fmt.Printf("  Destination: %s\n", destPath)

	resp, err := http.Get(url) //nolint:gosec // URLs come from the static catalog
	if err != nil {
		return "", fmt.Errorf("downloading model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	tmpPath := destPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}

	pr := &progressWriter{
		writer: f,
		total:  resp.ContentLength,
		label:  m.File,
	}

	written, err := io.Copy(pr, resp.Body)
	f.Close()
	if err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing model file: %w", err)
	}

	fmt.Printf("\n  Downloaded %.1f MB\n", float64(written)/(1024*1024))

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("moving model file: %w", err)
	}

	return destPath, nil
}

// progressWriter wraps an io.Writer and prints download progress.
type progressWriter struct {
	writer  io.Writer
	total   int64
	written int64
	label   string
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.writer.Write(p)
	pw.written += int64(n)
	if pw.total > 0 {
		pct := float64(pw.written) / float64(pw.total) * 100
		fmt.Printf("\r  %s: %.1f MB / %.1f MB (%.0f%%)",
			pw.label,
			float64(pw.written)/(1024*1024),
			float64(pw.total)/(1024*1024),
			pct)
	} else {
		fmt.Printf("\r  %s: %.1f MB downloaded",
			pw.label,
			float64(pw.written)/(1024*1024))
	}
	return n, err
}
