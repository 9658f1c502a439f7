// Package cli implements the terminal question loop and the extraction
// inspector.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/pdfqa/internal/document"
	"github.com/dgallion1/pdfqa/internal/pipeline"
)

const previewRunes = 200

// Runner drives a Pipeline over a terminal-like reader and writer.
type Runner struct {
	Pipeline *pipeline.Pipeline
	In       io.Reader
	Out      io.Writer
}

// Chat loads path and answers questions read from In until "exit" or EOF.
func (r *Runner) Chat(ctx context.Context, path string) error {
	doc, err := r.load(ctx, path)
	if err != nil {
		return err
	}

	fmt.Fprintln(r.Out, "\nDocument loaded. You can now ask questions.")
	scanner := bufio.NewScanner(r.In)
	for {
		fmt.Fprint(r.Out, "\nAsk a question (or type 'exit' to quit): ")
		if !scanner.Scan() {
			fmt.Fprintln(r.Out)
			return scanner.Err()
		}
		query := strings.TrimRight(scanner.Text(), "\r")
		if strings.ToLower(query) == "exit" {
			return nil
		}

		ans := r.Pipeline.Ask(ctx, doc, query)
		fmt.Fprintln(r.Out, "\n--- Answer ---")
		fmt.Fprintln(r.Out, ans.Text)
		fmt.Fprintln(r.Out, "----------------")
	}
}

// Inspect prints a preview of every section and the rows of the first table.
func (r *Runner) Inspect(ctx context.Context, path string) error {
	doc, err := r.load(ctx, path)
	if err != nil {
		return err
	}

	if doc.Sections.Len() > 0 {
		fmt.Fprintln(r.Out, "\n--- DETECTED SECTIONS ---")
		for header, body := range doc.Sections.All() {
			fmt.Fprintf(r.Out, "--- HEADER: %s ---\n", header)
			fmt.Fprintln(r.Out, preview(body)+"...")
			fmt.Fprintln(r.Out, strings.Repeat("-", utf8.RuneCountInString(header)+16))
			fmt.Fprintln(r.Out)
		}
	}

	switch {
	case len(doc.Tables) > 0:
		fmt.Fprintln(r.Out, "\n--- DETECTED TABLES ---")
		fmt.Fprintln(r.Out, "Showing the first table found:")
		printTable(r.Out, doc.Tables[0])
	case doc.Sections.Len() > 0:
		fmt.Fprintln(r.Out, "\n--- NO TABLES DETECTED ---")
	}
	return nil
}

func (r *Runner) load(ctx context.Context, path string) (*document.Document, error) {
	doc, err := r.Pipeline.Load(ctx, path)
	if err != nil {
		fmt.Fprintf(r.Out, "Could not extract any useful data from the PDF: %s\n", path)
		return nil, err
	}
	return doc, nil
}

func preview(body string) string {
	if utf8.RuneCountInString(body) > previewRunes {
		body = string([]rune(body)[:previewRunes])
	}
	return strings.TrimSpace(body)
}

func printTable(w io.Writer, t document.Table) {
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = fmt.Sprintf("%q", strings.TrimSpace(c))
		}
		fmt.Fprintf(w, "[%s]\n", strings.Join(cells, ", "))
	}
}
