package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

const blankQueryWarning = "Please enter a question to get started."

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, pageData{})
}

func (s *Server) handleUploadPage(w http.ResponseWriter, r *http.Request) {
	id, path, err := s.receiveUpload(w, r)
	if err != nil {
		code, msg := failure(err)
		s.render(w, code, pageData{Error: msg})
		return
	}

	doc, err := s.pipeline.LoadWithImages(r.Context(), path, s.ws.ImagesDir(id))
	if err != nil {
		s.log.Warn("extraction failed", "doc_id", id, "error", err)
		code, msg := failure(err)
		s.render(w, code, pageData{Error: msg})
		return
	}

	s.render(w, http.StatusOK, pageData{Doc: newDocView(id, doc, true, s.log)})
}

func (s *Server) handleAskPage(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	path, err := s.ws.Path(docID)
	if err != nil {
		code, msg := failure(err)
		s.render(w, code, pageData{Error: msg})
		return
	}

	doc, err := s.pipeline.LoadWithImages(r.Context(), path, s.ws.ImagesDir(docID))
	if err != nil {
		code, msg := failure(err)
		s.render(w, code, pageData{Error: msg})
		return
	}

	data := pageData{Doc: newDocView(docID, doc, true, s.log)}
	query := r.FormValue("query")
	data.Query = query
	if strings.TrimSpace(query) == "" {
		data.Warning = blankQueryWarning
		s.render(w, http.StatusOK, data)
		return
	}

	data.Answer = s.newAnswerView(s.pipeline.Ask(r.Context(), doc, query))
	s.render(w, http.StatusOK, data)
}
