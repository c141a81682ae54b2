package repository

import (
	"context"
	"errors"
	"time"

	"wedding-app/media-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type GuestSessionRepository struct {
	col *mongo.Collection
}

func NewGuestSessionRepository(db *mongo.Database) *GuestSessionRepository {
	return &GuestSessionRepository{col: db.Collection("guest_sessions")}
}

func (r *GuestSessionRepository) Create(ctx context.Context, s *models.GuestSession) error {
	s.CreatedAt = time.Now().UTC()
	_, err := r.col.InsertOne(ctx, s)
	return err
}

// FindValid looks up a live session for this wedding specifically. A valid
// token issued for another wedding must not match.
func (r *GuestSessionRepository) FindValid(ctx context.Context, sessionToken, weddingID string) (*models.GuestSession, error) {
	var session models.GuestSession
	err := r.col.FindOne(ctx, bson.M{
		"session_token": sessionToken,
		"wedding_id":    weddingID,
		"expires_at":    bson.M{"$gt": time.Now().UTC()},
	}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}
