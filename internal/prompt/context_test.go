package prompt

import (
	"strings"
	"testing"

	"github.com/dgallion1/pdfqa/internal/document"
)

func TestFormatContext_Empty(t *testing.T) {
	if got := FormatContext(nil, nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	if got := FormatContext(document.NewSections(), []document.Table{}); got != "" {
		t.Errorf("expected empty string for empty inputs, got %q", got)
	}
}

func TestFormatContext_SectionsOnly(t *testing.T) {
	s := document.NewSections()
	s.Set("INTRO", "Hello world")
	s.Set("END", "Bye")

	got := FormatContext(s, nil)
	want := "--- DOCUMENT SECTIONS ---\n" +
		"Section Title: INTRO\nContent:\nHello world\n\n" +
		"Section Title: END\nContent:\nBye\n\n"
	if got != want {
		t.Errorf("unexpected context:\n%q\nwant:\n%q", got, want)
	}
	if strings.Contains(got, "DOCUMENT TABLES") {
		t.Error("table block should be omitted")
	}
}

func TestFormatContext_TablesOnly(t *testing.T) {
	tables := []document.Table{
		{Page: 1, Rows: [][]string{{"a", "b"}, {"c", "d"}}},
		{Page: 2, Rows: [][]string{{"x"}, {"y", "z", ""}}},
	}

	got := FormatContext(nil, tables)
	want := "--- DOCUMENT TABLES ---\n" +
		"Table 1:\na\tb\nc\td\n\n" +
		"Table 2:\nx\ny\tz\t\n\n"
	if got != want {
		t.Errorf("unexpected context:\n%q\nwant:\n%q", got, want)
	}
}

func TestFormatContext_Deterministic(t *testing.T) {
	s := document.NewSections()
	s.Set("B", "two")
	s.Set("A", "one")
	tables := []document.Table{{Rows: [][]string{{"1", "2"}}}}

	first := FormatContext(s, tables)
	for i := 0; i < 5; i++ {
		if got := FormatContext(s, tables); got != first {
			t.Fatalf("output changed between calls")
		}
	}
	if strings.Index(first, "Section Title: B") > strings.Index(first, "Section Title: A") {
		t.Error("sections should keep insertion order")
	}
}
