package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GuestSession struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionToken string             `bson:"session_token" json:"session_token"`
	WeddingID    string             `bson:"wedding_id"    json:"wedding_id"`
	GuestName    string             `bson:"guest_name"    json:"guest_name"`
	ExpiresAt    time.Time          `bson:"expires_at"    json:"expires_at"`
	CreatedAt    time.Time          `bson:"created_at"    json:"created_at"`
}
