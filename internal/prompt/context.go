package prompt

import (
	"fmt"
	"strings"

	"github.com/dgallion1/pdfqa/internal/document"
)

// FormatContext flattens sections and tables into the text block placed in
// every prompt. Both empty yields "".
func FormatContext(sections *document.Sections, tables []document.Table) string {
	var sb strings.Builder

	if sections.Len() > 0 {
		sb.WriteString("--- DOCUMENT SECTIONS ---\n")
		for header, body := range sections.All() {
			fmt.Fprintf(&sb, "Section Title: %s\nContent:\n%s\n\n", header, body)
		}
	}

	if len(tables) > 0 {
		sb.WriteString("--- DOCUMENT TABLES ---\n")
		for i, table := range tables {
			fmt.Fprintf(&sb, "Table %d:\n%s\n\n", i+1, tableText(table.Rows))
		}
	}

	return sb.String()
}

func tableText(rows [][]string) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, "\t")
	}
	return strings.Join(lines, "\n")
}
