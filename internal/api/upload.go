package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/dgallion1/pdfqa/internal/parser"
	"github.com/dgallion1/pdfqa/internal/pipeline"
	"github.com/dgallion1/pdfqa/internal/workspace"
)

// uploadError carries the HTTP status an upload failure maps to.
type uploadError struct {
	status int
	msg    string
}

func (e *uploadError) Error() string { return e.msg }

// receiveUpload validates the multipart "file" field and stores it as a
// working copy.
func (s *Server) receiveUpload(w http.ResponseWriter, r *http.Request) (id, path string, err error) {
	// Extra 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", "", &uploadError{http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)}
		}
		return "", "", &uploadError{http.StatusBadRequest, "invalid multipart form: " + err.Error()}
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", "", &uploadError{http.StatusBadRequest, "file is required: " + err.Error()}
	}
	defer file.Close()

	filename := workspace.SanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		return "", "", &uploadError{http.StatusBadRequest, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename))}
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return "", "", &uploadError{http.StatusInternalServerError, "failed to read file"}
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return "", "", &uploadError{http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)}
	}

	id, path, err = s.ws.Save(filename, bytes.NewReader(data))
	if err != nil {
		s.log.Error("save upload failed", "filename", filename, "error", err)
		return "", "", &uploadError{http.StatusInternalServerError, "failed to store file"}
	}
	s.log.Info("upload stored", "doc_id", id, "filename", filename, "bytes", len(data))
	return id, path, nil
}

// failure maps an error from upload, lookup or extraction to a status and
// a user-facing message.
func failure(err error) (int, string) {
	var ue *uploadError
	switch {
	case errors.As(err, &ue):
		return ue.status, ue.msg
	case errors.Is(err, workspace.ErrUnknownDocument), errors.Is(err, parser.ErrNotFound):
		return http.StatusNotFound, "document not found"
	case errors.Is(err, pipeline.ErrNoContent):
		return http.StatusUnprocessableEntity, "Could not extract any useful data from the PDF"
	default:
		return http.StatusUnprocessableEntity, "Could not extract any useful data from the PDF: " + err.Error()
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
