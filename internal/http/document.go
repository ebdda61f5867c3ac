package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/josinaldojr/finwise-advisor/internal/document"
)

// multipart overhead allowed on top of the file itself
const uploadSlack = 1 << 20

// AnalyzeDocument expects a multipart form with the upload in "file".
func (h *Handler) AnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, document.MaxFileSize+uploadSlack)
	if err := r.ParseMultipartForm(document.MaxFileSize + uploadSlack); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			h.respondErr(w, document.ErrFileTooLarge)
			return
		}
		h.respondError(w, http.StatusBadRequest, "multipart form with a file field is required")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	if header.Size > document.MaxFileSize {
		h.respondErr(w, document.ErrFileTooLarge)
		return
	}
	data, err := io.ReadAll(io.LimitReader(file, document.MaxFileSize+1))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "could not read upload")
		return
	}

	analysis, err := h.svc.Documents.Analyze(r.Context(), header.Filename, data)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, analysis)
}
