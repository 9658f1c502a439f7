// Package pdftest builds small PDF fixtures for tests.
package pdftest

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-pdf/fpdf"
)

// Page is the text lines of one page.
type Page []string

// Build renders pages of text lines, one line per cell.
func Build(t testing.TB, pages ...Page) []byte {
	t.Helper()
	return render(t, false, pages)
}

// BuildWithImage renders pages and places one JPEG on the first page.
func BuildWithImage(t testing.TB, pages ...Page) []byte {
	t.Helper()
	return render(t, true, pages)
}

// BuildGrid renders rows as a bordered table of 40mm cells on one page.
func BuildGrid(t testing.TB, rows [][]string) []byte {
	t.Helper()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.AddPage()
	for _, row := range rows {
		for _, cell := range row {
			pdf.CellFormat(40, 10, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	return output(t, pdf)
}

// BuildParagraph renders text wrapped to the page width.
func BuildParagraph(t testing.TB, text string) []byte {
	t.Helper()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.AddPage()
	pdf.MultiCell(120, 6, text, "", "L", false)
	return output(t, pdf)
}

// Write stores data in dir under name and returns the full path.
func Write(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func render(t testing.TB, withImage bool, pages []Page) []byte {
	t.Helper()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 12)

	for i, page := range pages {
		pdf.AddPage()
		if withImage && i == 0 {
			opts := fpdf.ImageOptions{ImageType: "JPG"}
			pdf.RegisterImageOptionsReader("fixture", opts, bytes.NewReader(jpegBytes(t)))
			pdf.ImageOptions("fixture", 150, 10, 20, 20, false, opts, 0, "")
		}
		for _, line := range page {
			pdf.Cell(40, 10, line)
			pdf.Ln(10)
		}
	}

	return output(t, pdf)
}

func output(t testing.TB, pdf *fpdf.Fpdf) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("failed to generate test PDF: %v", err)
	}
	return buf.Bytes()
}

func jpegBytes(t testing.TB) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}
