// Package output writes generated files, leaving files whose content did not
// change untouched so build systems do not see a new timestamp.
package output

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"
)

// Result reports what happened to one file.
type Result struct {
	Path      string
	Written   bool
	Unchanged bool
	Digest    [blake2b.Size256]byte
}

// Writer writes files below Dir.
type Writer struct {
	Dir    string
	DryRun bool
	logger *slog.Logger
}

func NewWriter(logger *slog.Logger, dir string, dryRun bool) *Writer {
	return &Writer{Dir: dir, DryRun: dryRun, logger: logger}
}

// Write stores content at name (relative to Dir) unless an identical file
// already exists.
func (w *Writer) Write(name string, content []byte) (Result, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(w.Dir, name)
	}
	res := Result{Path: path, Digest: blake2b.Sum256(content)}

	same, err := unchanged(path, res.Digest)
	if err != nil {
		return res, err
	}
	if same {
		res.Unchanged = true
		w.logger.Debug("File unchanged", "path", path)
		return res, nil
	}
	if w.DryRun {
		w.logger.Info("Would write file", "path", path, "bytes", len(content))
		return res, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return res, fmt.Errorf("create output dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return res, fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return res, fmt.Errorf("rename %s: %w", tmp, err)
	}
	res.Written = true
	w.logger.Debug("Wrote file", "path", path, "bytes", len(content))
	return res, nil
}

func unchanged(path string, digest [blake2b.Size256]byte) (bool, error) {
	old, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read existing %s: %w", path, err)
	}
	sum := blake2b.Sum256(old)
	return bytes.Equal(sum[:], digest[:]), nil
}
