package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/custodia-labs/deskhub/internal/core/domain"
	"github.com/custodia-labs/deskhub/internal/core/services"
)

// docsPage and sheetsPage name their file list the way the frontend
// expects it.
type docsPage struct {
	Docs          []domain.FileSummary `json:"docs"`
	NextPageToken domain.PageCursor    `json:"nextPageToken"`
}

type sheetsPage struct {
	Sheets        []domain.FileSummary `json:"sheets"`
	NextPageToken domain.PageCursor    `json:"nextPageToken"`
}

// handleDocsList lists one page of Google Docs.
func (s *Server) handleDocsList(w http.ResponseWriter, r *http.Request) {
	s.listFiles(w, r, "docs", s.files.ListDocs, s.files.NextDocsPage,
		func(page *domain.FilePage) any {
			return docsPage{Docs: page.Files, NextPageToken: page.NextPageToken}
		})
}

// handleSheetsList lists one page of Google Sheets.
func (s *Server) handleSheetsList(w http.ResponseWriter, r *http.Request) {
	s.listFiles(w, r, "sheets", s.files.ListSheets, s.files.NextSheetsPage,
		func(page *domain.FilePage) any {
			return sheetsPage{Sheets: page.Files, NextPageToken: page.NextPageToken}
		})
}

type (
	listFilesFunc func(ctx context.Context, pageToken string, pageSize int64) (*domain.FilePage, error)
	nextPageFunc  func(ctx context.Context, pageToken string, pageSize int64) (string, error)
	shapeFunc     func(page *domain.FilePage) any
)

// listFiles is the shared listing skeleton for docs and sheets:
// auth gate, cache, cursor walk, fetch, shape, cache, respond.
func (s *Server) listFiles(
	w http.ResponseWriter,
	r *http.Request,
	resource string,
	list listFilesFunc,
	next nextPageFunc,
	shape shapeFunc,
) {
	page, pageSize, err := pageParams(r)
	if err != nil {
		writeError(w, s.log, err)
		return
	}

	cacheKey := fmt.Sprintf("%s:%d:%d", resource, page, pageSize)
	if cached, ok := s.cache.Get(cacheKey); ok {
		writeJSON(w, s.log, http.StatusOK, cached)
		return
	}

	ctx := r.Context()
	if err := s.auth.EnsureFresh(ctx); err != nil {
		writeError(w, s.log, err)
		return
	}

	token, err := services.ResolvePageToken(ctx, page, func(ctx context.Context, pageToken string) (string, error) {
		return next(ctx, pageToken, pageSize)
	})
	if err != nil {
		if errors.Is(err, domain.ErrPageOutOfRange) {
			writeJSON(w, s.log, http.StatusOK, shape(&domain.FilePage{Files: []domain.FileSummary{}}))
			return
		}
		writeError(w, s.log, err)
		return
	}

	result, err := list(ctx, token, pageSize)
	if err != nil {
		writeError(w, s.log, err)
		return
	}

	shaped := shape(result)
	s.cache.Set(cacheKey, shaped)
	writeJSON(w, s.log, http.StatusOK, shaped)
}

// appendDocRequest is the body of POST /api/docs/{id}.
type appendDocRequest struct {
	Content []string `json:"content"`
}

// handleDocsAppend appends lines of text to a Google Doc.
func (s *Server) handleDocsAppend(w http.ResponseWriter, r *http.Request) {
	docID := r.PathValue("id")

	var req appendDocRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Content) == 0 {
		writeError(w, s.log, fmt.Errorf("%w: content must be a non-empty array of strings", domain.ErrInvalidInput))
		return
	}

	ctx := r.Context()
	if err := s.auth.EnsureFresh(ctx); err != nil {
		writeError(w, s.log, err)
		return
	}

	if err := s.docs.AppendLines(ctx, docID, req.Content); err != nil {
		writeError(w, s.log, err)
		return
	}

	writeJSON(w, s.log, http.StatusOK, map[string]bool{"success": true})
}

// appendSheetRequest is the body of POST /api/sheets/{id}.
type appendSheetRequest struct {
	Range  string `json:"range"`
	Values []any  `json:"values"`
}

// handleSheetsAppend appends one row of values to a spreadsheet.
func (s *Server) handleSheetsAppend(w http.ResponseWriter, r *http.Request) {
	spreadsheetID := r.PathValue("id")

	var req appendSheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Range == "" || len(req.Values) == 0 {
		writeError(w, s.log, fmt.Errorf("%w: range and values are required", domain.ErrInvalidInput))
		return
	}

	ctx := r.Context()
	if err := s.auth.EnsureFresh(ctx); err != nil {
		writeError(w, s.log, err)
		return
	}

	if err := s.sheets.AppendRow(ctx, spreadsheetID, req.Range, req.Values); err != nil {
		writeError(w, s.log, err)
		return
	}

	writeJSON(w, s.log, http.StatusOK, map[string]bool{"success": true})
}
