package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/deskhub/internal/core/domain"
)

// ListPageFunc returns the cursor following the page that starts at
// pageToken. An empty pageToken means the first page; an empty result
// means the page at pageToken is the last one.
type ListPageFunc func(ctx context.Context, pageToken string) (next string, err error)

// ResolvePageToken translates a 1-based page number into the upstream's
// cursor semantics. The upstream only exposes cursor-based pagination,
// so reaching page P costs P-1 sequential listing calls.
//
// For targetPage <= 1 it returns the start cursor ("") without calling
// list. When the walk runs out of pages before reaching the target it
// returns domain.ErrPageOutOfRange; callers respond with an explicit
// empty page rather than silently refetching page 1.
func ResolvePageToken(ctx context.Context, targetPage int, list ListPageFunc) (string, error) {
	if targetPage <= 1 {
		return "", nil
	}

	token := ""
	for page := 1; page < targetPage; page++ {
		next, err := list(ctx, token)
		if err != nil {
			return "", fmt.Errorf("walking to page %d: %w", targetPage, err)
		}
		if next == "" {
			return "", fmt.Errorf("%w: upstream ends at page %d", domain.ErrPageOutOfRange, page)
		}
		token = next
	}
	return token, nil
}
