// Package output creates the timestamped output directory and copies
// renamed files into it.
package output

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// timestampLayout matches <input>_renamed_20240131_154502.
const timestampLayout = "20060102_150405"

// PrepareDir creates a fresh output directory next to inputDir, named
// after it plus a timestamp. A same-second collision with an existing
// directory is resolved by appending _1, _2, ...
func PrepareDir(inputDir string, now time.Time) (string, error) {
	base := filepath.Clean(inputDir) + "_renamed_" + now.Format(timestampLayout)

	candidate := base
	for i := 1; ; i++ {
		err := os.Mkdir(candidate, 0755)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("creating output directory %s: %w", candidate, err)
		}
		candidate = fmt.Sprintf("%s_%d", base, i)
	}
}

// Writer copies source files into one output directory, keeping names
// unique within the run.
type Writer struct {
	dir  string
	used map[string]bool
}

// NewWriter returns a Writer for an existing output directory.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, used: make(map[string]bool)}
}

// Dir returns the output directory path.
func (w *Writer) Dir() string {
	return w.dir
}

// Write copies srcPath into the output directory as base+ext. When the
// name is already taken this run, a numeric suffix (_1, _2, ...) is
// appended until the name is unique. Returns the destination path.
func (w *Writer) Write(srcPath, base, ext string) (string, error) {
	name := base + ext
	for i := 1; w.used[name]; i++ {
		name = fmt.Sprintf("%s_%d%s", base, i, ext)
	}

	destPath := filepath.Join(w.dir, name)
	if err := copyFile(srcPath, destPath); err != nil {
		return "", fmt.Errorf("copying %s: %w", srcPath, err)
	}

	w.used[name] = true
	return destPath, nil
}

// copyFile copies src to dst, preserving the source modification time.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}

	// Keep the recording's original timestamp on the copy.
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
