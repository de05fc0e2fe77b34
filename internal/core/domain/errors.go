package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAuthRequired indicates no usable credential record exists.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthExchange indicates the authorization code exchange failed
	// (expired, already used, malformed, or missing code).
	ErrAuthExchange = errors.New("authorization code exchange failed")

	// ErrTokenRefreshFailed indicates the token refresh operation failed.
	// The stale record stays in place; callers must force re-authentication.
	ErrTokenRefreshFailed = errors.New("token refresh failed")

	// ErrPageOutOfRange indicates a requested page number lies beyond the
	// last page the upstream listing can produce.
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrUnsupportedMedia indicates an upload with a content type the
	// extraction pipeline does not handle.
	ErrUnsupportedMedia = errors.New("unsupported media type")

	// ErrPayloadTooLarge indicates an upload exceeding the size limit.
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrPoolSaturated indicates the extraction worker pool rejected a
	// task because its queue is full.
	ErrPoolSaturated = errors.New("worker pool saturated")

	// ErrLLMUnavailable indicates the chat completion service is not
	// configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrRateLimited indicates the upstream API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
