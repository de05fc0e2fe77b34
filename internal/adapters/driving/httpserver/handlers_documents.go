package httpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/custodia-labs/deskhub/internal/core/domain"
)

// handleProcessDocument extracts text from an uploaded image or PDF.
// Oversized uploads are rejected before any extraction work starts.
func (s *Server) handleProcessDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		writeError(w, s.log, uploadError(err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, s.log, fmt.Errorf("%w: a file upload is required", domain.ErrInvalidInput))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, s.log, uploadError(err))
		return
	}

	ctx := r.Context()
	contentType := header.Header.Get("Content-Type")

	var text string
	switch {
	case contentType == "application/pdf":
		text, err = s.extractor.ExtractPDF(ctx, data)
	case strings.HasPrefix(contentType, "image/"):
		// OCR is CPU-heavy; run it on the worker pool.
		text, err = s.pool.Submit(ctx, func(ctx context.Context) (string, error) {
			return s.extractor.RecognizeImage(ctx, data)
		})
	default:
		err = fmt.Errorf("%w: only images and PDFs are supported, got %q",
			domain.ErrUnsupportedMedia, contentType)
	}
	if err != nil {
		writeError(w, s.log, err)
		return
	}

	writeJSON(w, s.log, http.StatusOK, map[string]string{"text": text})
}

// uploadError recognises the transport's size-limit error and maps it
// to the domain sentinel.
func uploadError(err error) error {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return fmt.Errorf("%w: upload exceeds %d bytes", domain.ErrPayloadTooLarge, maxBytes.Limit)
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
}
