// Package scan enumerates audio files in an input directory.
package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrNotFound is returned when the input directory does not exist or is
// not a directory.
var ErrNotFound = errors.New("input directory not found")

// AudioFile is one discovered input file.
type AudioFile struct {
	Path    string // absolute or as-given path
	Name    string // base name including extension
	Ext     string // extension including the dot, lower-cased
	ModTime time.Time
}

// audioExts are the recognized audio file extensions. Everything else in
// the input directory is skipped without error.
var audioExts = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".m4a":  true,
	".flac": true,
	".ogg":  true,
	".opus": true,
}

// IsAudio reports whether the file name has a recognized audio extension.
func IsAudio(name string) bool {
	return audioExts[strings.ToLower(filepath.Ext(name))]
}

// Scan lists the audio files in dir, non-recursively, ordered oldest
// first by modification time (name breaks ties). Each call re-lists the
// directory.
func Scan(dir string) ([]AudioFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, dir)
		}
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	files := make([]AudioFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsAudio(entry.Name()) {
			continue
		}

		fi, err := entry.Info()
		if err != nil {
			// Entry vanished between ReadDir and Info.
			continue
		}

		files = append(files, AudioFile{
			Path:    filepath.Join(dir, entry.Name()),
			Name:    entry.Name(),
			Ext:     strings.ToLower(filepath.Ext(entry.Name())),
			ModTime: fi.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		if !files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].ModTime.Before(files[j].ModTime)
		}
		return files[i].Name < files[j].Name
	})

	return files, nil
}
