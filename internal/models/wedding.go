package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "active"
	StatusTrial    SubscriptionStatus = "trial"
	StatusExpired  SubscriptionStatus = "expired"
	StatusCanceled SubscriptionStatus = "canceled"
)

type Wedding struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"  json:"id"`
	Slug         string             `bson:"slug"           json:"slug"`
	OwnerID      string             `bson:"owner_id"       json:"owner_id"`
	Subscription SubscriptionStatus `bson:"subscription"   json:"subscription"`
	CreatedAt    time.Time          `bson:"created_at"     json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"     json:"updated_at"`
}
