// Package sheets implements the spreadsheet writer on the Google
// Sheets API.
package sheets

import (
	"context"
	"fmt"

	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/deskhub/internal/connectors/google"
	"github.com/custodia-labs/deskhub/internal/core/domain"
	"github.com/custodia-labs/deskhub/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.SheetWriter = (*Writer)(nil)

// valueInputOption makes Sheets parse values the way manual entry
// would (numbers, dates, formulae).
const valueInputOption = "USER_ENTERED"

// Writer appends rows to Google Sheets.
type Writer struct {
	svc     *sheetsapi.Service
	limiter *google.RateLimiter
}

// NewWriter creates a spreadsheet writer on top of a Sheets API service.
func NewWriter(svc *sheetsapi.Service) *Writer {
	return &Writer{
		svc:     svc,
		limiter: google.NewRateLimiter(google.ServiceSheets),
	}
}

// AppendRow appends one row of values after the table found at the
// given A1 range.
func (w *Writer) AppendRow(ctx context.Context, spreadsheetID, a1Range string, values []any) error {
	if spreadsheetID == "" {
		return fmt.Errorf("%w: spreadsheet ID is required", domain.ErrInvalidInput)
	}
	if a1Range == "" {
		return fmt.Errorf("%w: range is required", domain.ErrInvalidInput)
	}
	if len(values) == 0 {
		return fmt.Errorf("%w: row values are required", domain.ErrInvalidInput)
	}

	if err := w.limiter.Wait(ctx); err != nil {
		return err
	}

	_, err := w.svc.Spreadsheets.Values.Append(spreadsheetID, a1Range, &sheetsapi.ValueRange{
		Values: [][]any{values},
	}).ValueInputOption(valueInputOption).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("appending to spreadsheet %s: %w", spreadsheetID, w.limiter.WrapError(err))
	}
	return nil
}
