// Package docs implements the document writer on the Google Docs API.
package docs

import (
	"context"
	"fmt"
	"strings"

	docsapi "google.golang.org/api/docs/v1"

	"github.com/custodia-labs/deskhub/internal/connectors/google"
	"github.com/custodia-labs/deskhub/internal/core/domain"
	"github.com/custodia-labs/deskhub/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.DocWriter = (*Writer)(nil)

// Writer appends text content to Google Docs.
type Writer struct {
	svc     *docsapi.Service
	limiter *google.RateLimiter
}

// NewWriter creates a document writer on top of a Docs API service.
func NewWriter(svc *docsapi.Service) *Writer {
	return &Writer{
		svc:     svc,
		limiter: google.NewRateLimiter(google.ServiceDocs),
	}
}

// AppendLines inserts the given lines, each followed by a newline, at
// the start of the document body.
func (w *Writer) AppendLines(ctx context.Context, docID string, lines []string) error {
	if docID == "" {
		return fmt.Errorf("%w: document ID is required", domain.ErrInvalidInput)
	}
	if len(lines) == 0 {
		return fmt.Errorf("%w: content lines are required", domain.ErrInvalidInput)
	}

	if err := w.limiter.Wait(ctx); err != nil {
		return err
	}

	_, err := w.svc.Documents.BatchUpdate(docID, &docsapi.BatchUpdateDocumentRequest{
		Requests: []*docsapi.Request{{
			InsertText: &docsapi.InsertTextRequest{
				Text: strings.Join(lines, "\n") + "\n",
				// Index 1 is the first writable position of the body.
				Location: &docsapi.Location{Index: 1},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("appending to document %s: %w", docID, w.limiter.WrapError(err))
	}
	return nil
}
