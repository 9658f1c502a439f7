package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgallion1/pdfqa/internal/document"
	"github.com/dgallion1/pdfqa/internal/prompt"
)

// ErrNoContent is returned when a PDF opened but yielded no sections and no tables.
var ErrNoContent = errors.New("could not extract any useful data from the PDF")

// Extractor produces a segmented document from a PDF path.
type Extractor interface {
	Parse(ctx context.Context, path string) (*document.Document, error)
}

// ImageExtractor writes a PDF's embedded images into outDir.
type ImageExtractor interface {
	Extract(ctx context.Context, path, outDir string) ([]document.Image, error)
}

// Answerer turns a prompt into display text. It never fails.
type Answerer interface {
	Answer(ctx context.Context, prompt string) string
}

// Answer is the result of one question.
type Answer struct {
	Query  string        `json:"query"`
	Intent prompt.Intent `json:"intent"`
	Text   string        `json:"answer"`
}

// Pipeline runs extraction and question answering synchronously. It keeps
// no per-document state; callers re-load the document for every interaction.
type Pipeline struct {
	extractor Extractor
	images    ImageExtractor
	answerer  Answerer
	log       *slog.Logger
}

func New(extractor Extractor, images ImageExtractor, answerer Answerer, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{extractor: extractor, images: images, answerer: answerer, log: log}
}

// Load extracts and segments the PDF at path. A document with neither
// sections nor tables returns ErrNoContent.
func (p *Pipeline) Load(ctx context.Context, path string) (*document.Document, error) {
	doc, err := p.extractor.Parse(ctx, path)
	if err != nil {
		return nil, err
	}
	if doc.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrNoContent, path)
	}
	p.log.Info("document loaded",
		"path", path,
		"pages", doc.Pages,
		"sections", doc.Sections.Len(),
		"tables", len(doc.Tables),
	)
	return doc, nil
}

// LoadWithImages is Load plus image extraction into imageDir. Image
// failures are logged and leave the document without images.
func (p *Pipeline) LoadWithImages(ctx context.Context, path, imageDir string) (*document.Document, error) {
	doc, err := p.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	if p.images == nil {
		return doc, nil
	}

	images, err := p.images.Extract(ctx, path, imageDir)
	if err != nil {
		p.log.Warn("image extraction failed", "path", path, "error", err)
		return doc, nil
	}
	doc.Images = images
	return doc, nil
}

// Ask builds the prompt for query from doc's sections and tables and
// returns the model's answer.
func (p *Pipeline) Ask(ctx context.Context, doc *document.Document, query string) Answer {
	var (
		sections *document.Sections
		tables   []document.Table
	)
	if doc != nil {
		sections, tables = doc.Sections, doc.Tables
	}

	docContext := prompt.FormatContext(sections, tables)
	text, intent := prompt.Build(query, docContext)
	p.log.Info("answering question",
		"intent", intent,
		"context_tokens", prompt.EstimateTokens(docContext),
		"prompt_tokens", prompt.EstimateTokens(text),
	)

	return Answer{
		Query:  query,
		Intent: intent,
		Text:   p.answerer.Answer(ctx, text),
	}
}
