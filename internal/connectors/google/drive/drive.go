// Package drive implements the file source on the Google Drive API.
package drive

import (
	"context"
	"fmt"

	driveapi "google.golang.org/api/drive/v3"

	"github.com/custodia-labs/deskhub/internal/connectors/google"
	"github.com/custodia-labs/deskhub/internal/core/domain"
	"github.com/custodia-labs/deskhub/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.FileSource = (*Source)(nil)

// Google Workspace MIME types.
const (
	MimeTypeDocument    = "application/vnd.google-apps.document"
	MimeTypeSpreadsheet = "application/vnd.google-apps.spreadsheet"
)

// listFields keeps responses to the fields the dashboard shows.
const listFields = "files(id, name, modifiedTime), nextPageToken"

// Source lists Google Docs and Sheets from the user's Drive.
type Source struct {
	svc     *driveapi.Service
	limiter *google.RateLimiter
}

// NewSource creates a file source on top of a Drive API service.
func NewSource(svc *driveapi.Service) *Source {
	return &Source{
		svc:     svc,
		limiter: google.NewRateLimiter(google.ServiceDrive),
	}
}

// ListDocs returns one page of Google Docs, newest modification first.
func (s *Source) ListDocs(ctx context.Context, pageToken string, pageSize int64) (*domain.FilePage, error) {
	return s.list(ctx, MimeTypeDocument, pageToken, pageSize)
}

// ListSheets returns one page of Google Sheets, newest modification first.
func (s *Source) ListSheets(ctx context.Context, pageToken string, pageSize int64) (*domain.FilePage, error) {
	return s.list(ctx, MimeTypeSpreadsheet, pageToken, pageSize)
}

// NextDocsPage returns the cursor following the Docs page at pageToken.
func (s *Source) NextDocsPage(ctx context.Context, pageToken string, pageSize int64) (string, error) {
	return s.nextPage(ctx, MimeTypeDocument, pageToken, pageSize)
}

// NextSheetsPage returns the cursor following the Sheets page at pageToken.
func (s *Source) NextSheetsPage(ctx context.Context, pageToken string, pageSize int64) (string, error) {
	return s.nextPage(ctx, MimeTypeSpreadsheet, pageToken, pageSize)
}

func (s *Source) list(ctx context.Context, mimeType, pageToken string, pageSize int64) (*domain.FilePage, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	call := s.svc.Files.List().
		Q(mimeQuery(mimeType)).
		PageSize(pageSize).
		OrderBy("modifiedTime desc").
		Fields(listFields).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	list, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("listing drive files: %w", s.limiter.WrapError(err))
	}

	files := make([]domain.FileSummary, 0, len(list.Files))
	for _, f := range list.Files {
		files = append(files, domain.FileSummary{
			ID:           f.Id,
			Title:        f.Name,
			ModifiedTime: f.ModifiedTime,
		})
	}
	return &domain.FilePage{Files: files, NextPageToken: domain.PageCursor(list.NextPageToken)}, nil
}

func (s *Source) nextPage(ctx context.Context, mimeType, pageToken string, pageSize int64) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	call := s.svc.Files.List().
		Q(mimeQuery(mimeType)).
		PageSize(pageSize).
		OrderBy("modifiedTime desc").
		Fields("nextPageToken").
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	list, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("walking drive pages: %w", s.limiter.WrapError(err))
	}
	return list.NextPageToken, nil
}

func mimeQuery(mimeType string) string {
	return fmt.Sprintf("mimeType='%s'", mimeType)
}
