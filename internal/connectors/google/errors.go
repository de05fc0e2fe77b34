package google

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/deskhub/internal/core/domain"
)

// WrapError translates a Google API error into the matching domain
// sentinel so callers can branch with errors.Is. Non-API errors pass
// through unchanged.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return err
	}

	switch gerr.Code {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", domain.ErrAuthRequired, gerr.Message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, gerr.Message)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", domain.ErrRateLimited, gerr.Message)
	default:
		return err
	}
}

// IsRateLimited reports whether the error indicates a 429 from Google.
func IsRateLimited(err error) bool {
	if errors.Is(err, domain.ErrRateLimited) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests
	}
	return false
}
