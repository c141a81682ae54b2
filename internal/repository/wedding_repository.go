package repository

import (
	"context"
	"errors"

	"wedding-app/media-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type WeddingRepository struct {
	col *mongo.Collection
}

func NewWeddingRepository(db *mongo.Database) *WeddingRepository {
	return &WeddingRepository{col: db.Collection("weddings")}
}

// FindByID resolves a wedding by its hex id, falling back to the public slug.
// Unknown weddings come back as ErrNotFound so callers fail closed.
func (r *WeddingRepository) FindByID(ctx context.Context, weddingID string) (*models.Wedding, error) {
	filter := bson.M{"slug": weddingID}
	if oid, err := primitive.ObjectIDFromHex(weddingID); err == nil {
		filter = bson.M{"_id": oid}
	}

	var wedding models.Wedding
	err := r.col.FindOne(ctx, filter).Decode(&wedding)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &wedding, nil
}
