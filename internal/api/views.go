package api

import (
	"bytes"
	"html/template"
	"log/slog"
	"path/filepath"

	"github.com/dgallion1/pdfqa/internal/document"
	"github.com/dgallion1/pdfqa/internal/pipeline"
)

type sectionView struct {
	Header string `json:"header"`
	Body   string `json:"body"`
}

type tableView struct {
	Index int        `json:"index"`
	Page  int        `json:"page"`
	Rows  [][]string `json:"rows"`
}

type imageView struct {
	Page     int    `json:"page"`
	Index    int    `json:"index"`
	File     string `json:"file"`
	MIMEType string `json:"mime_type"`

	Src template.URL `json:"-"`
}

// docView is the rendered shape of a document for both the page and the API.
type docView struct {
	ID       string        `json:"doc_id"`
	Title    string        `json:"title"`
	Pages    int           `json:"pages"`
	Sections []sectionView `json:"sections"`
	Tables   []tableView   `json:"tables"`
	Images   []imageView   `json:"images"`
}

type answerView struct {
	Query  string
	Intent string
	HTML   template.HTML
}

type pageData struct {
	Doc     *docView
	Query   string
	Answer  *answerView
	Warning string
	Error   string
}

func newDocView(id string, doc *document.Document, inline bool, log *slog.Logger) *docView {
	v := &docView{
		ID:       id,
		Title:    doc.Title,
		Pages:    doc.Pages,
		Sections: []sectionView{},
		Tables:   []tableView{},
		Images:   []imageView{},
	}
	for header, body := range doc.Sections.All() {
		v.Sections = append(v.Sections, sectionView{Header: header, Body: body})
	}
	for i, t := range doc.Tables {
		v.Tables = append(v.Tables, tableView{Index: i + 1, Page: t.Page, Rows: t.Rows})
	}
	for _, img := range doc.Images {
		iv := imageView{Page: img.Page, Index: img.Index, File: filepath.Base(img.Path), MIMEType: img.MIMEType()}
		if inline {
			uri, err := img.DataURI()
			if err != nil {
				log.Warn("skipping image", "path", img.Path, "error", err)
				continue
			}
			iv.Src = template.URL(uri)
		}
		v.Images = append(v.Images, iv)
	}
	return v
}

func (s *Server) newAnswerView(a pipeline.Answer) *answerView {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(a.Text), &buf); err != nil {
		s.log.Warn("markdown render failed", "error", err)
		buf.Reset()
		buf.WriteString("<pre>")
		buf.WriteString(template.HTMLEscapeString(a.Text))
		buf.WriteString("</pre>")
	}
	return &answerView{Query: a.Query, Intent: string(a.Intent), HTML: template.HTML(buf.String())}
}
