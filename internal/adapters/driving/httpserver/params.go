package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/custodia-labs/deskhub/internal/core/domain"
)

// Listing defaults shared by the emails, docs and sheets handlers.
const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
)

// pageParams reads the page and pageSize query parameters, applying
// the defaults when absent.
func pageParams(r *http.Request) (page int, pageSize int64, err error) {
	page = defaultPage
	pageSize = defaultPageSize

	if raw := r.URL.Query().Get("page"); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil || n < 1 {
			return 0, 0, fmt.Errorf("%w: page must be a positive integer", domain.ErrInvalidInput)
		}
		page = n
	}

	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		n, convErr := strconv.ParseInt(raw, 10, 64)
		if convErr != nil || n < 1 || n > maxPageSize {
			return 0, 0, fmt.Errorf("%w: pageSize must be between 1 and %d", domain.ErrInvalidInput, maxPageSize)
		}
		pageSize = n
	}

	return page, pageSize, nil
}
