package domain

import (
	"encoding/json"
	"time"
)

// TelemetryEvent is an arbitrary client-side metrics payload posted by
// the frontend. The body is stored verbatim; the server attaches only an
// identity and a receive timestamp.
type TelemetryEvent struct {
	ID         string
	ReceivedAt time.Time
	Body       json.RawMessage
}
