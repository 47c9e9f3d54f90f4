package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/stemsi/exstem-summary/internal/repository"
)

type requestTokenKey struct{}

// WithRequestToken attaches the caller's bearer token to ctx so upstream
// reads are made on the caller's behalf.
func WithRequestToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, requestTokenKey{}, token)
}

// RequestToken returns the token attached by WithRequestToken.
func RequestToken(ctx context.Context) string {
	tok, _ := ctx.Value(requestTokenKey{}).(string)
	return tok
}

// TokenStore is the persisted token backend.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
}

// TokenService resolves the upstream bearer token. Precedence: the
// caller's token, then the stored access_token, then the static fallback.
type TokenService struct {
	store    TokenStore
	fallback string
	log      zerolog.Logger
}

// NewTokenService creates a TokenService. store may be nil.
func NewTokenService(store TokenStore, fallback string, log zerolog.Logger) *TokenService {
	return &TokenService{
		store:    store,
		fallback: fallback,
		log:      log.With().Str("component", "token_service").Logger(),
	}
}

// AccessToken implements upstream.TokenSource.
func (s *TokenService) AccessToken(ctx context.Context) (string, error) {
	if tok := RequestToken(ctx); tok != "" {
		return tok, nil
	}

	if s.store != nil {
		tok, err := s.store.Get(ctx)
		switch {
		case err == nil:
			return tok, nil
		case errors.Is(err, repository.ErrTokenNotFound):
		default:
			if s.fallback == "" {
				return "", err
			}
			s.log.Warn().Err(err).Msg("Token store unavailable, using fallback token")
		}
	}

	return s.fallback, nil
}
