package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/pdfqa/internal/document"
	"github.com/dgallion1/pdfqa/internal/prompt"
)

type fakeExtractor struct {
	doc *document.Document
	err error
}

func (f *fakeExtractor) Parse(context.Context, string) (*document.Document, error) {
	return f.doc, f.err
}

type fakeImages struct {
	images []document.Image
	err    error
	outDir string
}

func (f *fakeImages) Extract(_ context.Context, _, outDir string) ([]document.Image, error) {
	f.outDir = outDir
	return f.images, f.err
}

type recordingAnswerer struct {
	prompts []string
	reply   string
}

func (r *recordingAnswerer) Answer(_ context.Context, p string) string {
	r.prompts = append(r.prompts, p)
	return r.reply
}

func sampleDoc() *document.Document {
	s := document.NewSections()
	s.Set("INTRO", "Hello world\nBye")
	return &document.Document{Title: "sample", Pages: 2, Sections: s}
}

func TestLoad_ReturnsDocument(t *testing.T) {
	p := New(&fakeExtractor{doc: sampleDoc()}, nil, &recordingAnswerer{}, nil)
	doc, err := p.Load(context.Background(), "sample.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body, _ := doc.Sections.Get("INTRO"); body != "Hello world\nBye" {
		t.Errorf("unexpected body %q", body)
	}
}

func TestLoad_EmptyDocument(t *testing.T) {
	empty := &document.Document{Sections: document.NewSections()}
	p := New(&fakeExtractor{doc: empty}, nil, &recordingAnswerer{}, nil)
	_, err := p.Load(context.Background(), "blank.pdf")
	if !errors.Is(err, ErrNoContent) {
		t.Errorf("expected ErrNoContent, got %v", err)
	}
}

func TestLoad_ExtractorError(t *testing.T) {
	boom := errors.New("boom")
	p := New(&fakeExtractor{err: boom}, nil, &recordingAnswerer{}, nil)
	if _, err := p.Load(context.Background(), "x.pdf"); !errors.Is(err, boom) {
		t.Errorf("expected extractor error, got %v", err)
	}
}

func TestLoadWithImages(t *testing.T) {
	imgs := &fakeImages{images: []document.Image{{Page: 1, Index: 1, Path: "a.png", Ext: "png"}}}
	p := New(&fakeExtractor{doc: sampleDoc()}, imgs, &recordingAnswerer{}, nil)

	doc, err := p.LoadWithImages(context.Background(), "x.pdf", "out")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Images) != 1 {
		t.Errorf("expected 1 image, got %d", len(doc.Images))
	}
	if imgs.outDir != "out" {
		t.Errorf("expected image dir to be forwarded, got %q", imgs.outDir)
	}
}

func TestLoadWithImages_ImageFailureIsNotFatal(t *testing.T) {
	imgs := &fakeImages{err: errors.New("bad xref")}
	p := New(&fakeExtractor{doc: sampleDoc()}, imgs, &recordingAnswerer{}, nil)

	doc, err := p.LoadWithImages(context.Background(), "x.pdf", "out")
	if err != nil {
		t.Fatalf("image failure should not fail load: %v", err)
	}
	if len(doc.Images) != 0 {
		t.Errorf("expected no images, got %d", len(doc.Images))
	}
}

func TestAsk_BuildsPromptFromDocument(t *testing.T) {
	ans := &recordingAnswerer{reply: "It says hello."}
	p := New(&fakeExtractor{}, nil, ans, nil)

	got := p.Ask(context.Background(), sampleDoc(), "summarize the key findings")
	if got.Text != "It says hello." {
		t.Errorf("unexpected answer %q", got.Text)
	}
	if got.Intent != prompt.IntentGeneral {
		t.Errorf("expected general intent, got %q", got.Intent)
	}
	if got.Query != "summarize the key findings" {
		t.Errorf("query not echoed, got %q", got.Query)
	}
	if len(ans.prompts) != 1 {
		t.Fatalf("expected one model call, got %d", len(ans.prompts))
	}
	if !strings.Contains(ans.prompts[0], "Section Title: INTRO\nContent:\nHello world\nBye") {
		t.Errorf("prompt missing document context: %q", ans.prompts[0])
	}
}

func TestAsk_TranslationIntent(t *testing.T) {
	ans := &recordingAnswerer{reply: "Bonjour"}
	p := New(&fakeExtractor{}, nil, ans, nil)

	got := p.Ask(context.Background(), sampleDoc(), "translate this to French")
	if got.Intent != prompt.IntentTranslation {
		t.Errorf("expected translation intent, got %q", got.Intent)
	}
	if !strings.Contains(ans.prompts[0], "TRANSLATED CONTENT:") {
		t.Error("expected translation template")
	}
}
