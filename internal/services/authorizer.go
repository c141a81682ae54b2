package services

import (
	"context"
	"errors"
	"log"

	"wedding-app/media-service/internal/models"
)

type WeddingRepository interface {
	FindByID(ctx context.Context, weddingID string) (*models.Wedding, error)
}

type GuestSessionRepository interface {
	Create(ctx context.Context, s *models.GuestSession) error
	FindValid(ctx context.Context, sessionToken, weddingID string) (*models.GuestSession, error)
}

type TokenResolver interface {
	ResolveUserID(tokenString string) (string, error)
}

// Caller carries the credentials a request arrived with. A bearer token, when
// present, is authoritative and the guest identifier is ignored.
type Caller struct {
	BearerToken     string
	GuestIdentifier string
}

type Authorizer struct {
	weddings WeddingRepository
	sessions GuestSessionRepository
	tokens   TokenResolver
}

func NewAuthorizer(weddings WeddingRepository, sessions GuestSessionRepository, tokens TokenResolver) *Authorizer {
	return &Authorizer{weddings: weddings, sessions: sessions, tokens: tokens}
}

// Authorize resolves the wedding and checks that the caller may write media
// for it. Every failure path, including store errors, denies.
func (a *Authorizer) Authorize(ctx context.Context, caller Caller, weddingID string) (*models.Wedding, error) {
	wedding, err := a.weddings.FindByID(ctx, weddingID)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			log.Printf("[AUTH] wedding lookup failed for %s: %v", weddingID, err)
		}
		return nil, models.ErrUnauthorized
	}

	if caller.BearerToken != "" {
		userID, err := a.tokens.ResolveUserID(caller.BearerToken)
		if err != nil || userID != wedding.OwnerID {
			return nil, models.ErrUnauthorized
		}
		return wedding, nil
	}

	if caller.GuestIdentifier != "" {
		if _, err := a.sessions.FindValid(ctx, caller.GuestIdentifier, weddingID); err != nil {
			return nil, models.ErrUnauthorized
		}
		return wedding, nil
	}

	return nil, models.ErrUnauthorized
}
