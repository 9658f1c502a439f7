package document

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

// Document is the result of extracting one PDF.
type Document struct {
	Title    string    // Document title (from filename)
	Path     string    // Working copy the document was read from
	Pages    int       // Number of pages in the file
	Text     string    // Concatenated page text
	Sections *Sections // Segmented text, in first-appearance order
	Tables   []Table   // Tables from all pages, in page order
	Images   []Image   // Embedded images written to the working directory
}

// Empty reports whether nothing useful was extracted.
func (d *Document) Empty() bool {
	return d == nil || (d.Sections.Len() == 0 && len(d.Tables) == 0)
}

// Table is a list of rows of cell text. Rows may have different lengths.
type Table struct {
	Page int
	Rows [][]string
}

// Image is an embedded image extracted to disk.
type Image struct {
	Page  int    // 1-based page number
	Index int    // 1-based position on the page
	Path  string // File written to the image directory
	Ext   string // File extension without the dot, e.g. "png"
}

// MIMEType maps the image extension to a content type.
func (img Image) MIMEType() string {
	switch strings.ToLower(img.Ext) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "tif", "tiff":
		return "image/tiff"
	case "webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// DataURI reads the image file and re-encodes it for inline display.
func (img Image) DataURI() (string, error) {
	data, err := os.ReadFile(img.Path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return "data:" + img.MIMEType() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
