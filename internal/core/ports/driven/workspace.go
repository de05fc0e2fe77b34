package driven

import (
	"context"

	"github.com/custodia-labs/deskhub/internal/core/domain"
)

// MailSource lists Gmail messages and fetches their image attachments.
type MailSource interface {
	// ListMessages returns one page of message summaries starting at
	// pageToken ("" means the first page).
	ListMessages(ctx context.Context, pageToken string, pageSize int64) (*domain.EmailPage, error)

	// NextPage returns the cursor following the page at pageToken
	// without fetching message metadata. Empty result means the page at
	// pageToken is the last one.
	NextPage(ctx context.Context, pageToken string, pageSize int64) (string, error)

	// ImageAttachments downloads the image attachments of a message.
	// Returns nil when the message has no image attachments.
	ImageAttachments(ctx context.Context, messageID string) ([]domain.Attachment, error)
}

// FileSource lists Drive files by kind.
type FileSource interface {
	// ListDocs returns one page of Google Docs, newest modification first.
	ListDocs(ctx context.Context, pageToken string, pageSize int64) (*domain.FilePage, error)

	// ListSheets returns one page of Google Sheets, newest modification first.
	ListSheets(ctx context.Context, pageToken string, pageSize int64) (*domain.FilePage, error)

	// NextDocsPage and NextSheetsPage walk cursors without shaping results.
	NextDocsPage(ctx context.Context, pageToken string, pageSize int64) (string, error)
	NextSheetsPage(ctx context.Context, pageToken string, pageSize int64) (string, error)
}

// CalendarSource reads and writes primary-calendar events.
type CalendarSource interface {
	// UpcomingEvents returns the next events from now, ordered by start time.
	UpcomingEvents(ctx context.Context, max int64) ([]domain.Event, error)

	// CreateEvent inserts an event into the primary calendar.
	CreateEvent(ctx context.Context, input domain.EventInput) (*domain.Event, error)
}

// DocWriter appends content to a Google Doc.
type DocWriter interface {
	// AppendLines inserts each line followed by a newline at the start
	// of the document body.
	AppendLines(ctx context.Context, docID string, lines []string) error
}

// SheetWriter appends rows to a spreadsheet.
type SheetWriter interface {
	// AppendRow appends one row of values to the given A1 range.
	AppendRow(ctx context.Context, spreadsheetID, a1Range string, values []any) error
}
