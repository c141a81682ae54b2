package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"wedding-app/media-service/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newAuthFixture() (*Authorizer, *fakeWeddingRepo, *fakeSessionRepo) {
	weddings := &fakeWeddingRepo{weddings: map[string]*models.Wedding{
		"w1": {ID: primitive.NewObjectID(), Slug: "w1", OwnerID: "owner-1", Subscription: models.StatusActive},
	}}
	sessions := newFakeSessionRepo()
	tokens := &fakeTokens{users: map[string]string{
		"owner-token":    "owner-1",
		"stranger-token": "someone-else",
	}}
	return NewAuthorizer(weddings, sessions, tokens), weddings, sessions
}

func TestAuthorizeOwner(t *testing.T) {
	auth, _, _ := newAuthFixture()

	wedding, err := auth.Authorize(context.Background(), Caller{BearerToken: "owner-token"}, "w1")
	if err != nil {
		t.Fatalf("owner should be authorized: %v", err)
	}
	if wedding.OwnerID != "owner-1" {
		t.Fatalf("unexpected wedding resolved: %+v", wedding)
	}
}

func TestAuthorizeNonOwnerTokenDenied(t *testing.T) {
	auth, _, _ := newAuthFixture()

	if _, err := auth.Authorize(context.Background(), Caller{BearerToken: "stranger-token"}, "w1"); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthorizeInvalidTokenDoesNotFallBackToGuest(t *testing.T) {
	auth, _, sessions := newAuthFixture()
	sessions.Create(context.Background(), &models.GuestSession{
		SessionToken: "guest-token",
		WeddingID:    "w1",
		ExpiresAt:    time.Now().Add(time.Hour),
	})

	caller := Caller{BearerToken: "garbage", GuestIdentifier: "guest-token"}
	if _, err := auth.Authorize(context.Background(), caller, "w1"); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("bearer token must be authoritative, got %v", err)
	}
}

func TestAuthorizeGuestSession(t *testing.T) {
	auth, _, sessions := newAuthFixture()
	sessions.Create(context.Background(), &models.GuestSession{
		SessionToken: "guest-token",
		WeddingID:    "w1",
		ExpiresAt:    time.Now().Add(time.Hour),
	})

	if _, err := auth.Authorize(context.Background(), Caller{GuestIdentifier: "guest-token"}, "w1"); err != nil {
		t.Fatalf("valid guest session should be authorized: %v", err)
	}
}

func TestAuthorizeExpiredGuestSessionDenied(t *testing.T) {
	auth, _, sessions := newAuthFixture()
	sessions.Create(context.Background(), &models.GuestSession{
		SessionToken: "guest-token",
		WeddingID:    "w1",
		ExpiresAt:    time.Now().Add(-time.Minute),
	})

	if _, err := auth.Authorize(context.Background(), Caller{GuestIdentifier: "guest-token"}, "w1"); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthorizeNoCredentialsDenied(t *testing.T) {
	auth, _, _ := newAuthFixture()

	if _, err := auth.Authorize(context.Background(), Caller{}, "w1"); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthorizeUnknownWeddingDenied(t *testing.T) {
	auth, _, _ := newAuthFixture()

	if _, err := auth.Authorize(context.Background(), Caller{BearerToken: "owner-token"}, "missing"); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthorizeWeddingLookupErrorFailsClosed(t *testing.T) {
	auth, weddings, _ := newAuthFixture()
	weddings.err = errors.New("connection refused")

	if _, err := auth.Authorize(context.Background(), Caller{BearerToken: "owner-token"}, "w1"); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("store errors must deny, got %v", err)
	}
}
