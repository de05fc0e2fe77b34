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

// handleEmails lists one page of inbox summaries. Identical results
// within the cache TTL are served without touching Gmail.
func (s *Server) handleEmails(w http.ResponseWriter, r *http.Request) {
	page, pageSize, err := pageParams(r)
	if err != nil {
		writeError(w, s.log, err)
		return
	}

	cacheKey := fmt.Sprintf("emails:%d:%d", page, pageSize)
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
		return s.mail.NextPage(ctx, pageToken, pageSize)
	})
	if err != nil {
		if errors.Is(err, domain.ErrPageOutOfRange) {
			// Requested page is past the end: an explicit empty page,
			// not a silent refetch of page one.
			writeJSON(w, s.log, http.StatusOK, domain.EmailPage{Emails: []domain.EmailSummary{}})
			return
		}
		writeError(w, s.log, err)
		return
	}

	result, err := s.mail.ListMessages(ctx, token, pageSize)
	if err != nil {
		writeError(w, s.log, err)
		return
	}

	s.cache.Set(cacheKey, result)
	writeJSON(w, s.log, http.StatusOK, result)
}

// attachmentsRequest is the body of POST /api/process-email-attachments.
type attachmentsRequest struct {
	MessageID string `json:"messageId"`
}

// attachmentsResponse mirrors the frontend contract: null results when
// the message has no image attachments.
type attachmentsResponse struct {
	Results []domain.AttachmentText `json:"results"`
}

// handleEmailAttachments downloads a message's image attachments and
// runs text recognition over each one on the worker pool.
func (s *Server) handleEmailAttachments(w http.ResponseWriter, r *http.Request) {
	var req attachmentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MessageID == "" {
		writeError(w, s.log, fmt.Errorf("%w: messageId is required", domain.ErrInvalidInput))
		return
	}

	cacheKey := "attachments:" + req.MessageID
	if cached, ok := s.cache.Get(cacheKey); ok {
		writeJSON(w, s.log, http.StatusOK, cached)
		return
	}

	ctx := r.Context()
	if err := s.auth.EnsureFresh(ctx); err != nil {
		writeError(w, s.log, err)
		return
	}

	attachments, err := s.mail.ImageAttachments(ctx, req.MessageID)
	if err != nil {
		writeError(w, s.log, err)
		return
	}

	if len(attachments) == 0 {
		writeJSON(w, s.log, http.StatusOK, attachmentsResponse{Results: nil})
		return
	}

	results := make([]domain.AttachmentText, 0, len(attachments))
	for _, att := range attachments {
		text, err := s.pool.Submit(ctx, func(ctx context.Context) (string, error) {
			return s.extractor.RecognizeImage(ctx, att.Data)
		})
		if err != nil {
			writeError(w, s.log, fmt.Errorf("recognising %q: %w", att.Filename, err))
			return
		}
		results = append(results, domain.AttachmentText{Filename: att.Filename, Text: text})
	}

	response := attachmentsResponse{Results: results}
	s.cache.Set(cacheKey, response)
	writeJSON(w, s.log, http.StatusOK, response)
}
