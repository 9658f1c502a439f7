// Package workspace keeps per-upload working copies of PDFs on disk.
package workspace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnknownDocument is returned for ids that are malformed or have no working copy.
var ErrUnknownDocument = errors.New("unknown document")

// Workspace lays out uploads as <UploadDir>/<id>/<file>.pdf and extracted
// images as <ImageDir>/<id>/. Nothing is ever removed.
type Workspace struct {
	UploadDir string
	ImageDir  string
}

func New(uploadDir, imageDir string) *Workspace {
	return &Workspace{UploadDir: uploadDir, ImageDir: imageDir}
}

// Save writes r as a new working copy named after filename and returns its id.
func (w *Workspace) Save(filename string, r io.Reader) (id, path string, err error) {
	id = uuid.NewString()
	dir := filepath.Join(w.UploadDir, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create upload dir: %w", err)
	}

	path = filepath.Join(dir, SanitizeFilename(filename))
	f, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("create working copy: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", "", fmt.Errorf("write working copy: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", "", fmt.Errorf("close working copy: %w", err)
	}
	return id, path, nil
}

// Path resolves the working copy for id.
func (w *Workspace) Path(id string) (string, error) {
	if !validID(id) {
		return "", ErrUnknownDocument
	}
	dir := filepath.Join(w.UploadDir, id)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownDocument, id)
	}
	for _, e := range entries {
		if e.Type().IsRegular() {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownDocument, id)
}

// ImagesDir is where images extracted from document id are written.
func (w *Workspace) ImagesDir(id string) string {
	return filepath.Join(w.ImageDir, id)
}

func validID(id string) bool {
	u, err := uuid.Parse(id)
	return err == nil && u.String() == id
}

// SanitizeFilename strips path components from an uploaded file name.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "_" {
		name = "unnamed.pdf"
	}
	return name
}
