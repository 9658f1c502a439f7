package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dgallion1/pdfqa/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	id, path, err := s.receiveUpload(w, r)
	if err != nil {
		code, msg := failure(err)
		jsonError(w, msg, code)
		return
	}

	doc, err := s.pipeline.LoadWithImages(r.Context(), path, s.ws.ImagesDir(id))
	if err != nil {
		s.log.Warn("extraction failed", "doc_id", id, "error", err)
		code, msg := failure(err)
		jsonError(w, msg, code)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(newDocView(id, doc, false, s.log))
}

type askRequest struct {
	Query string `json:"query"`
}

type askResponse struct {
	DocID string `json:"doc_id"`
	pipeline.Answer
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		jsonError(w, "query is required", http.StatusBadRequest)
		return
	}

	path, err := s.ws.Path(docID)
	if err != nil {
		code, msg := failure(err)
		jsonError(w, msg, code)
		return
	}

	// Re-extract on every question; nothing is cached between requests.
	doc, err := s.pipeline.Load(r.Context(), path)
	if err != nil {
		code, msg := failure(err)
		jsonError(w, msg, code)
		return
	}

	ans := s.pipeline.Ask(r.Context(), doc, req.Query)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(askResponse{DocID: docID, Answer: ans})
}
