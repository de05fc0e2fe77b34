package driven

import (
	"context"

	"github.com/custodia-labs/deskhub/internal/core/domain"
)

// CredentialsStore persists the single OAuth credential record.
// Save must be synchronous: when it returns, the record is durable.
type CredentialsStore interface {
	// Load reads the persisted record. Returns domain.ErrNotFound when
	// no record has been saved yet.
	Load(ctx context.Context) (*domain.Credentials, error)

	// Save replaces the persisted record wholesale.
	Save(ctx context.Context, creds *domain.Credentials) error
}
