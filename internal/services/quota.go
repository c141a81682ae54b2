package services

import (
	"context"
	"fmt"

	"wedding-app/media-service/internal/models"
)

type MediaCounter interface {
	CountByType(ctx context.Context, weddingID string, mediaType models.MediaType) (int64, error)
}

// QuotaGate enforces trial plan caps. It runs both at presign time and again
// at confirmation, so a client cannot dodge the limit by skipping presign.
type QuotaGate struct {
	media      MediaCounter
	photoLimit int64
	videoLimit int64
}

func NewQuotaGate(media MediaCounter, photoLimit, videoLimit int64) *QuotaGate {
	return &QuotaGate{media: media, photoLimit: photoLimit, videoLimit: videoLimit}
}

func (g *QuotaGate) Check(ctx context.Context, weddingID string, sub models.SubscriptionStatus, mediaType models.MediaType) error {
	switch sub {
	case models.StatusActive:
		// paid plans skip the count query entirely
		return nil
	case models.StatusTrial:
	default:
		return models.NewQuotaError(models.CodeSubscriptionExpired, "subscription is not active")
	}

	count, err := g.media.CountByType(ctx, weddingID, mediaType)
	if err != nil {
		// counting failures block the upload, never allow unlimited uploads
		return fmt.Errorf("%w: %v", models.ErrQuotaUnverified, err)
	}

	limit, code, noun := g.photoLimit, models.CodeTrialPhotoLimit, "photos"
	if mediaType == models.VideoMedia {
		limit, code, noun = g.videoLimit, models.CodeTrialVideoLimit, "videos"
	}

	if count >= limit {
		return models.NewQuotaError(code, fmt.Sprintf("trial plan allows up to %d %s", limit, noun))
	}
	return nil
}
