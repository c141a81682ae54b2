package repository

import (
	"context"
	"errors"
	"time"

	"wedding-app/media-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MediaRepository struct {
	col *mongo.Collection
}

func NewMediaRepository(db *mongo.Database) *MediaRepository {
	return &MediaRepository{col: db.Collection("media")}
}

// EnsureIndexes creates the unique (wedding_id, original_url) index that
// closes the read-then-insert race between concurrent confirmations.
func (r *MediaRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "wedding_id", Value: 1}, {Key: "original_url", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MediaRepository) Insert(ctx context.Context, m *models.Media) error {
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, m)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrDuplicateMedia
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid
	}
	return nil
}

func (r *MediaRepository) FindByOriginalURL(ctx context.Context, weddingID, originalURL string) (*models.Media, error) {
	var media models.Media
	err := r.col.FindOne(ctx, bson.M{"wedding_id": weddingID, "original_url": originalURL}).Decode(&media)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *MediaRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Media, error) {
	var media models.Media
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&media)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *MediaRepository) FindByWeddingID(ctx context.Context, weddingID string) ([]models.Media, error) {
	cursor, err := r.col.Find(ctx, bson.M{"wedding_id": weddingID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}

	res := make([]models.Media, 0)
	if err := cursor.All(ctx, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *MediaRepository) SetThumbnail(ctx context.Context, id primitive.ObjectID, thumbnailURL string) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"thumbnail_url": thumbnailURL,
		"status":        models.StatusReady,
		"updated_at":    time.Now().UTC(),
	}})
	return err
}

func (r *MediaRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status models.MediaStatus) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

func (r *MediaRepository) CountByType(ctx context.Context, weddingID string, mediaType models.MediaType) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"wedding_id": weddingID, "type": mediaType})
}
