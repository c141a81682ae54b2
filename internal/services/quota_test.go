package services

import (
	"context"
	"errors"
	"testing"

	"wedding-app/media-service/internal/models"
)

func TestQuotaActiveBypassesCount(t *testing.T) {
	repo := newFakeMediaRepo()
	repo.counts[models.ImageMedia] = 9999
	gate := NewQuotaGate(repo, 50, 1)

	if err := gate.Check(context.Background(), "w1", models.StatusActive, models.ImageMedia); err != nil {
		t.Fatalf("active plan should pass: %v", err)
	}
	if repo.countCalls != 0 {
		t.Fatalf("active plan issued %d count queries", repo.countCalls)
	}
}

func TestQuotaTrialUnderLimit(t *testing.T) {
	repo := newFakeMediaRepo()
	repo.counts[models.ImageMedia] = 49
	gate := NewQuotaGate(repo, 50, 1)

	if err := gate.Check(context.Background(), "w1", models.StatusTrial, models.ImageMedia); err != nil {
		t.Fatalf("49 of 50 photos should pass: %v", err)
	}
}

func TestQuotaTrialPhotoLimitReached(t *testing.T) {
	repo := newFakeMediaRepo()
	repo.counts[models.ImageMedia] = 50
	gate := NewQuotaGate(repo, 50, 1)

	err := gate.Check(context.Background(), "w1", models.StatusTrial, models.ImageMedia)
	qe, ok := models.AsQuotaError(err)
	if !ok || qe.Code != models.CodeTrialPhotoLimit {
		t.Fatalf("expected %s, got %v", models.CodeTrialPhotoLimit, err)
	}
}

func TestQuotaTrialVideoLimitReached(t *testing.T) {
	repo := newFakeMediaRepo()
	repo.counts[models.VideoMedia] = 1
	gate := NewQuotaGate(repo, 50, 1)

	err := gate.Check(context.Background(), "w1", models.StatusTrial, models.VideoMedia)
	qe, ok := models.AsQuotaError(err)
	if !ok || qe.Code != models.CodeTrialVideoLimit {
		t.Fatalf("expected %s, got %v", models.CodeTrialVideoLimit, err)
	}
}

func TestQuotaCountErrorFailsClosed(t *testing.T) {
	repo := newFakeMediaRepo()
	repo.countErr = errors.New("timeout")
	gate := NewQuotaGate(repo, 50, 1)

	if err := gate.Check(context.Background(), "w1", models.StatusTrial, models.ImageMedia); !errors.Is(err, models.ErrQuotaUnverified) {
		t.Fatalf("expected ErrQuotaUnverified, got %v", err)
	}
}

func TestQuotaInactiveSubscriptions(t *testing.T) {
	gate := NewQuotaGate(newFakeMediaRepo(), 50, 1)

	for _, sub := range []models.SubscriptionStatus{models.StatusExpired, models.StatusCanceled} {
		err := gate.Check(context.Background(), "w1", sub, models.ImageMedia)
		qe, ok := models.AsQuotaError(err)
		if !ok || qe.Code != models.CodeSubscriptionExpired {
			t.Fatalf("%s: expected %s, got %v", sub, models.CodeSubscriptionExpired, err)
		}
	}
}
