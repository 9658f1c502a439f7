package parser

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when the PDF path does not exist.
var ErrNotFound = errors.New("pdf file not found")

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf": true,
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// TitleFromPath returns the file name without directory or extension.
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
