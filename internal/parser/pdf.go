package parser

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/dgallion1/pdfqa/internal/document"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser extracts text, tables and sections from PDF files. It uses the
// Go library first and, when the library cannot open a file, falls back to
// pdftotext if enabled. The fallback yields text only.
type PDFParser struct {
	FallbackPdftotext bool
	Log               *slog.Logger
}

// pageSource is the per-page view of an opened PDF.
type pageSource interface {
	NumPage() int
	PageText(i int) (string, error)
	PageRows(i int) ([]textRow, error)
}

// Extraction is the raw, unsegmented output of a page walk.
type Extraction struct {
	Pages  int
	Text   string
	Tables []document.Table
}

// Parse extracts the PDF at path and segments its text into sections.
// A missing file returns ErrNotFound; any parse failure is returned wrapped.
func (p *PDFParser) Parse(ctx context.Context, path string) (*document.Document, error) {
	ext, err := p.Extract(ctx, path)
	if err != nil {
		return nil, err
	}
	return &document.Document{
		Title:    TitleFromPath(path),
		Path:     path,
		Pages:    ext.Pages,
		Text:     ext.Text,
		Sections: Segment(ext.Text),
		Tables:   ext.Tables,
	}, nil
}

// Extract walks every page of the PDF at path.
func (p *PDFParser) Extract(ctx context.Context, path string) (*Extraction, error) {
	log := p.logger().With("path", path)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Error("file not found")
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat pdf: %w", err)
	}

	log.Info("processing pdf")
	ext, err := extractWithLibrary(ctx, path, log)
	if err != nil && p.FallbackPdftotext {
		log.Warn("pdf library failed, trying pdftotext", "error", err)
		var text string
		text, err = extractPdftotext(ctx, path)
		if err == nil {
			ext = fromPdftotext(text)
		}
	}
	if err != nil {
		log.Error("pdf extraction failed", "error", err)
		return nil, fmt.Errorf("extract pdf: %w", err)
	}

	log.Info("processing complete", "pages", ext.Pages, "tables", len(ext.Tables))
	return ext, nil
}

func (p *PDFParser) logger() *slog.Logger {
	if p.Log != nil {
		return p.Log
	}
	return slog.Default()
}

func extractWithLibrary(ctx context.Context, path string, log *slog.Logger) (ext *Extraction, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	// The library panics on some malformed files, including inside NewReader.
	defer func() {
		if r := recover(); r != nil {
			ext, err = nil, fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdflib.NewReader(f, info.Size())
	if err != nil {
		return nil, err
	}
	return walkPages(ctx, &libSource{r: reader}, log)
}

// walkPages concatenates page text and collects tables in page order.
// Pages that cannot be read are logged and skipped.
func walkPages(ctx context.Context, src pageSource, log *slog.Logger) (*Extraction, error) {
	var buf strings.Builder
	var tables []document.Table

	numPages := src.NumPage()
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := src.PageText(i)
		if err != nil {
			log.Warn("skipping page text", "page", i, "error", err)
		} else {
			text = strings.Trim(text, "\r\n")
			if text != "" {
				buf.WriteString(text)
				buf.WriteString("\n")
			}
		}

		rows, err := src.PageRows(i)
		if err != nil {
			log.Warn("skipping page tables", "page", i, "error", err)
			continue
		}
		tables = append(tables, detectTables(i, rows)...)
	}

	return &Extraction{Pages: numPages, Text: buf.String(), Tables: tables}, nil
}

// libSource adapts ledongthuc/pdf to pageSource.
type libSource struct {
	r *pdflib.Reader
}

func (s *libSource) NumPage() int { return s.r.NumPage() }

func (s *libSource) PageText(i int) (text string, err error) {
	defer recoverPage(&err)
	page := s.r.Page(i)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

// PageRows reads positioned glyphs from the page content stream. The
// library's row grouping loses positions for text placed with Td, so rows
// are rebuilt from the glyph coordinates.
func (s *libSource) PageRows(i int) (rows []textRow, err error) {
	defer recoverPage(&err)
	page := s.r.Page(i)
	if page.V.IsNull() {
		return nil, nil
	}

	content := page.Content()
	glyphs := make([]glyph, 0, len(content.Text))
	for _, t := range content.Text {
		glyphs = append(glyphs, glyph{X: t.X, Y: t.Y, W: t.W, FontSize: t.FontSize, S: t.S})
	}
	return rowsFromGlyphs(glyphs), nil
}

func recoverPage(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("malformed page: %v", r)
	}
}

func extractPdftotext(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, "pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}

// fromPdftotext splits pdftotext output on form feeds, one per page.
func fromPdftotext(out string) *Extraction {
	pages := strings.Split(strings.TrimSuffix(out, "\f"), "\f")
	var buf strings.Builder
	for _, p := range pages {
		p = strings.Trim(p, "\r\n")
		if p != "" {
			buf.WriteString(p)
			buf.WriteString("\n")
		}
	}
	return &Extraction{Pages: len(pages), Text: buf.String()}
}
