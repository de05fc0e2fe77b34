package google

import (
	"context"

	"golang.org/x/oauth2"
)

// TokenProvider supplies a valid Google access token, refreshing it
// first when needed.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// TokenSourceAdapter adapts a TokenProvider to oauth2.TokenSource so
// Google API clients can use the dashboard's token management.
type TokenSourceAdapter struct {
	provider TokenProvider
	ctx      context.Context
}

// NewTokenSource creates an oauth2.TokenSource from a TokenProvider.
// The returned TokenSource can be used with option.WithTokenSource()
// when creating Google API services.
func NewTokenSource(ctx context.Context, provider TokenProvider) oauth2.TokenSource {
	return &TokenSourceAdapter{
		provider: provider,
		ctx:      ctx,
	}
}

// Token implements oauth2.TokenSource. Called by Google API clients
// whenever they need an access token.
func (t *TokenSourceAdapter) Token() (*oauth2.Token, error) {
	accessToken, err := t.provider.AccessToken(t.ctx)
	if err != nil {
		return nil, err
	}

	return &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}, nil
}
