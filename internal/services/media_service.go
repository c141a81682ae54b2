package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"wedding-app/media-service/internal/img"
	"wedding-app/media-service/internal/models"
	"wedding-app/media-service/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MediaRepository interface {
	Insert(ctx context.Context, m *models.Media) error
	FindByOriginalURL(ctx context.Context, weddingID, originalURL string) (*models.Media, error)
	FindByWeddingID(ctx context.Context, weddingID string) ([]models.Media, error)
	SetThumbnail(ctx context.Context, id primitive.ObjectID, thumbnailURL string) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.MediaStatus) error
}

type ObjectStore interface {
	FetchFile(ctx context.Context, key string) ([]byte, error)
	UploadFile(ctx context.Context, key string, data []byte, contentType string, metadata map[string]string) (*utils.UploadedObject, error)
	PresignedPutURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	PublicURL(key string) string
}

// MediaService drives an upload confirmation from validation through the
// thumbnail step. The database row is always inserted before any thumbnail
// object is written, so a failed insert can never leave an orphan in the
// store.
type MediaService struct {
	repo  MediaRepository
	store ObjectStore
	auth  *Authorizer
	quota *QuotaGate

	thumbWidth     int
	thumbQuality   int
	maxSourceBytes int64
	asyncThumbs    bool

	thumbWG sync.WaitGroup
}

type MediaServiceOptions struct {
	ThumbWidth     int
	ThumbQuality   int
	MaxSourceBytes int64
	// AsyncThumbnails makes Confirm return before the thumbnail step settles;
	// the row then briefly reads status=processing.
	AsyncThumbnails bool
}

func NewMediaService(repo MediaRepository, store ObjectStore, auth *Authorizer, quota *QuotaGate, opts MediaServiceOptions) *MediaService {
	if opts.ThumbWidth == 0 {
		opts.ThumbWidth = 400
	}
	if opts.ThumbQuality == 0 {
		opts.ThumbQuality = 85
	}
	if opts.MaxSourceBytes == 0 {
		opts.MaxSourceBytes = 10 << 20
	}
	return &MediaService{
		repo:           repo,
		store:          store,
		auth:           auth,
		quota:          quota,
		thumbWidth:     opts.ThumbWidth,
		thumbQuality:   opts.ThumbQuality,
		maxSourceBytes: opts.MaxSourceBytes,
		asyncThumbs:    opts.AsyncThumbnails,
	}
}

type ConfirmRequest struct {
	WeddingID       string
	Key             string
	PublicURL       string
	ContentType     string
	Caption         string
	GuestName       string
	GuestIdentifier string
}

type ConfirmResult struct {
	Media      *models.Media
	Idempotent bool
}

func (s *MediaService) Confirm(ctx context.Context, caller Caller, req ConfirmRequest) (*ConfirmResult, error) {
	if !utils.KeyBelongsToWedding(req.Key, req.WeddingID) {
		return nil, models.ErrInvalidKey
	}
	if !strings.Contains(req.PublicURL, req.Key) {
		return nil, models.ErrInvalidURL
	}

	// Repeated confirmations for the same object return the original row.
	// A failed lookup does not block the upload.
	existing, err := s.repo.FindByOriginalURL(ctx, req.WeddingID, req.PublicURL)
	if err == nil {
		return &ConfirmResult{Media: existing, Idempotent: true}, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		log.Printf("[CONFIRM] idempotency check failed for %s: %v", req.PublicURL, err)
	}

	wedding, err := s.auth.Authorize(ctx, caller, req.WeddingID)
	if err != nil {
		return nil, err
	}

	mediaType := models.MediaTypeFromContentType(req.ContentType)
	if err := s.quota.Check(ctx, req.WeddingID, wedding.Subscription, mediaType); err != nil {
		return nil, err
	}

	media := &models.Media{
		WeddingID:   req.WeddingID,
		OriginalURL: req.PublicURL,
		ObjectKey:   req.Key,
		Type:        mediaType,
		Status:      models.StatusReady,
		Caption:     req.Caption,
		Moderation:  models.ModerationApproved,
	}
	if caller.BearerToken == "" {
		media.GuestName = req.GuestName
		media.GuestIdentifier = req.GuestIdentifier
	}
	if mediaType == models.ImageMedia {
		media.Status = models.StatusProcessing
	}

	if err := s.repo.Insert(ctx, media); err != nil {
		if errors.Is(err, models.ErrDuplicateMedia) {
			// Two confirmations raced past the pre-check; the unique index
			// caught the loser, merge onto the winner's row.
			winner, ferr := s.repo.FindByOriginalURL(ctx, req.WeddingID, req.PublicURL)
			if ferr == nil {
				return &ConfirmResult{Media: winner, Idempotent: true}, nil
			}
		}
		if code := quotaCodeFromInsertError(err); code != "" {
			return nil, models.NewQuotaError(code, "trial upload limit reached")
		}
		return nil, fmt.Errorf("insert media: %w", err)
	}

	if mediaType == models.VideoMedia {
		return &ConfirmResult{Media: media}, nil
	}

	if s.asyncThumbs {
		// The caller sees status=processing; the background step owns its own
		// copy of the row and a fresh context that survives the request.
		background := *media
		s.thumbWG.Add(1)
		go func() {
			defer s.thumbWG.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[THUMB] panic while processing %s: %v", background.ID.Hex(), r)
					s.finalizeWithoutThumbnail(context.Background(), background.ID)
				}
			}()
			s.processThumbnail(context.Background(), &background)
		}()
		return &ConfirmResult{Media: media}, nil
	}

	s.processThumbnail(ctx, media)
	return &ConfirmResult{Media: media}, nil
}

// processThumbnail fetches the original, resizes it and records the result.
// Every failure degrades to a row without a thumbnail; none of them fails the
// confirmation, and the row is never left in processing.
func (s *MediaService) processThumbnail(ctx context.Context, media *models.Media) {
	data, err := s.store.FetchFile(ctx, media.ObjectKey)
	if err != nil {
		log.Printf("[THUMB] fetch %s: %v", media.ObjectKey, err)
		s.finalizeWithoutThumbnail(ctx, media.ID)
		media.Status = models.StatusReady
		return
	}

	if int64(len(data)) > s.maxSourceBytes {
		log.Printf("[THUMB] skipping %s: source is %d bytes", media.ObjectKey, len(data))
		s.finalizeWithoutThumbnail(ctx, media.ID)
		media.Status = models.StatusReady
		return
	}

	res, err := img.GenerateThumbnail(data, img.Options{Width: s.thumbWidth, Quality: s.thumbQuality})
	if err != nil {
		log.Printf("[THUMB] generate for %s: %v", media.ObjectKey, err)
		s.finalizeWithoutThumbnail(ctx, media.ID)
		media.Status = models.StatusReady
		return
	}

	thumbKey := utils.GenerateThumbnailKey(media.ObjectKey, fmt.Sprintf("%dw", s.thumbWidth))
	uploaded, err := s.store.UploadFile(ctx, thumbKey, res.Buffer, "image/webp", map[string]string{
		"wedding-id": media.WeddingID,
		"parent-id":  media.ID.Hex(),
		"width":      fmt.Sprintf("%d", res.Width),
		"height":     fmt.Sprintf("%d", res.Height),
	})
	if err != nil {
		log.Printf("[THUMB] upload %s: %v", thumbKey, err)
		s.finalizeWithoutThumbnail(ctx, media.ID)
		media.Status = models.StatusReady
		return
	}

	if err := s.repo.SetThumbnail(ctx, media.ID, uploaded.URL); err != nil {
		log.Printf("[THUMB] record thumbnail for %s: %v", media.ID.Hex(), err)
		s.finalizeWithoutThumbnail(ctx, media.ID)
		media.Status = models.StatusReady
		return
	}

	media.ThumbnailURL = &uploaded.URL
	media.Status = models.StatusReady
}

func (s *MediaService) finalizeWithoutThumbnail(ctx context.Context, id primitive.ObjectID) {
	if err := s.repo.SetStatus(ctx, id, models.StatusReady); err != nil {
		log.Printf("[THUMB] finalize %s: %v", id.Hex(), err)
	}
}

// WaitForThumbnails blocks until in-flight background thumbnail tasks settle.
// Used on shutdown so rows are not stranded in processing.
func (s *MediaService) WaitForThumbnails() {
	s.thumbWG.Wait()
}

// quotaCodeFromInsertError pattern-matches quota sentinels a record store may
// raise from an insert trigger.
func quotaCodeFromInsertError(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, models.CodeTrialPhotoLimit):
		return models.CodeTrialPhotoLimit
	case strings.Contains(msg, models.CodeTrialVideoLimit):
		return models.CodeTrialVideoLimit
	default:
		return ""
	}
}

type PresignRequest struct {
	WeddingID   string
	FileName    string
	ContentType string
}

type PresignResult struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
	PublicURL string `json:"public_url"`
	ExpiresIn int64  `json:"expires_in"`
}

const presignExpiry = 15 * time.Minute

// Presign authorizes and quota-checks the caller before the client moves any
// bytes, then issues a direct PUT URL under the wedding's key prefix.
func (s *MediaService) Presign(ctx context.Context, caller Caller, req PresignRequest) (*PresignResult, error) {
	wedding, err := s.auth.Authorize(ctx, caller, req.WeddingID)
	if err != nil {
		return nil, err
	}

	mediaType := models.MediaTypeFromContentType(req.ContentType)
	if err := s.quota.Check(ctx, req.WeddingID, wedding.Subscription, mediaType); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%smedia/%d_%s", utils.WeddingKeyPrefix(req.WeddingID), time.Now().UnixNano(), req.FileName)
	uploadURL, err := s.store.PresignedPutURL(ctx, key, presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign %s: %w", key, err)
	}

	return &PresignResult{
		UploadURL: uploadURL,
		Key:       key,
		PublicURL: s.store.PublicURL(key),
		ExpiresIn: int64(presignExpiry.Seconds()),
	}, nil
}

func (s *MediaService) ListByWedding(ctx context.Context, weddingID string) ([]models.Media, error) {
	return s.repo.FindByWeddingID(ctx, weddingID)
}
