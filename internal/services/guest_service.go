package services

import (
	"context"
	"time"

	"wedding-app/media-service/internal/models"

	"github.com/google/uuid"
)

const guestSessionTTL = 24 * time.Hour

// GuestService mints the session tokens guests later upload with.
type GuestService struct {
	weddings WeddingRepository
	sessions GuestSessionRepository
}

func NewGuestService(weddings WeddingRepository, sessions GuestSessionRepository) *GuestService {
	return &GuestService{weddings: weddings, sessions: sessions}
}

func (s *GuestService) CreateSession(ctx context.Context, weddingID, guestName string) (*models.GuestSession, error) {
	if _, err := s.weddings.FindByID(ctx, weddingID); err != nil {
		return nil, err
	}

	session := &models.GuestSession{
		SessionToken: uuid.NewString(),
		WeddingID:    weddingID,
		GuestName:    guestName,
		ExpiresAt:    time.Now().UTC().Add(guestSessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
