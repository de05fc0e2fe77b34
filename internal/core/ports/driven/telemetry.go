package driven

import (
	"context"

	"github.com/custodia-labs/deskhub/internal/core/domain"
)

// TelemetryStore records client-side metrics payloads.
type TelemetryStore interface {
	Record(ctx context.Context, event domain.TelemetryEvent) error
	Close() error
}
