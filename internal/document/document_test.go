package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSections_PreservesInsertionOrder(t *testing.T) {
	s := NewSections()
	s.Set("B", "2")
	s.Set("A", "1")
	s.Set("C", "3")

	want := []string{"B", "A", "C"}
	got := s.Headers()
	if len(got) != len(want) {
		t.Fatalf("expected %d headers, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("header[%d]: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestSections_SetExistingKeepsPosition(t *testing.T) {
	s := NewSections()
	s.Set("A", "first")
	s.Set("B", "b")
	s.Set("A", "second")

	if s.Len() != 2 {
		t.Fatalf("expected 2 sections, got %d", s.Len())
	}
	if h := s.Headers(); h[0] != "A" || h[1] != "B" {
		t.Errorf("unexpected order %v", h)
	}
	if body, _ := s.Get("A"); body != "second" {
		t.Errorf("expected overwritten body, got %q", body)
	}
}

func TestSections_AppendAndDelete(t *testing.T) {
	var s Sections
	s.Append("X", "one\n")
	s.Append("X", "two\n")
	s.Set("Y", "y")

	if body, ok := s.Get("X"); !ok || body != "one\ntwo\n" {
		t.Errorf("unexpected body %q (ok=%v)", body, ok)
	}

	s.Delete("X")
	s.Delete("missing")
	if s.Len() != 1 {
		t.Fatalf("expected 1 section after delete, got %d", s.Len())
	}
	if _, ok := s.Get("X"); ok {
		t.Error("expected X to be gone")
	}
}

func TestSections_AllStopsEarly(t *testing.T) {
	s := NewSections()
	s.Set("A", "1")
	s.Set("B", "2")
	s.Set("C", "3")

	var seen []string
	for h, body := range s.All() {
		seen = append(seen, h+"="+body)
		if h == "B" {
			break
		}
	}
	if strings.Join(seen, ",") != "A=1,B=2" {
		t.Errorf("unexpected iteration %v", seen)
	}
}

func TestSections_NilIsEmpty(t *testing.T) {
	var s *Sections
	if s.Len() != 0 || s.Headers() != nil {
		t.Error("nil sections should be empty")
	}
	for range s.All() {
		t.Fatal("nil sections should not yield")
	}
}

func TestDocument_Empty(t *testing.T) {
	var d *Document
	if !d.Empty() {
		t.Error("nil document should be empty")
	}
	d = &Document{Sections: NewSections()}
	if !d.Empty() {
		t.Error("document without sections or tables should be empty")
	}
	d.Tables = []Table{{Rows: [][]string{{"a"}}}}
	if d.Empty() {
		t.Error("document with a table should not be empty")
	}
}

func TestImage_DataURI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page1_img1.png")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	img := Image{Page: 1, Index: 1, Path: path, Ext: "png"}
	uri, err := img.DataURI()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uri != "data:image/png;base64,YWJj" {
		t.Errorf("unexpected data uri %q", uri)
	}

	img.Path = filepath.Join(t.TempDir(), "missing.png")
	if _, err := img.DataURI(); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestImage_MIMEType(t *testing.T) {
	cases := map[string]string{
		"jpg":  "image/jpeg",
		"JPEG": "image/jpeg",
		"png":  "image/png",
		"tif":  "image/tiff",
		"jpx":  "application/octet-stream",
	}
	for ext, want := range cases {
		if got := (Image{Ext: ext}).MIMEType(); got != want {
			t.Errorf("%s: expected %q, got %q", ext, want, got)
		}
	}
}
