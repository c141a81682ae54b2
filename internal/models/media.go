package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MediaType string

const (
	ImageMedia MediaType = "image"
	VideoMedia MediaType = "video"
)

// MediaTypeFromContentType derives the stored media type from the declared
// content type. Bytes are not re-validated here.
func MediaTypeFromContentType(contentType string) MediaType {
	if strings.HasPrefix(strings.ToLower(contentType), "video/") {
		return VideoMedia
	}
	return ImageMedia
}

type MediaStatus string

const (
	StatusUploading  MediaStatus = "uploading"
	StatusProcessing MediaStatus = "processing"
	StatusReady      MediaStatus = "ready"
	StatusError      MediaStatus = "error"
)

type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

type Media struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"             json:"id"`
	WeddingID       string             `bson:"wedding_id"                json:"wedding_id"`
	OriginalURL     string             `bson:"original_url"              json:"original_url"`
	ThumbnailURL    *string            `bson:"thumbnail_url,omitempty"   json:"thumbnail_url"`
	OptimizedURL    *string            `bson:"optimized_url,omitempty"   json:"optimized_url"`
	ObjectKey       string             `bson:"object_key"                json:"object_key"`
	Type            MediaType          `bson:"type"                      json:"type"`
	Status          MediaStatus        `bson:"status"                    json:"status"`
	Caption         string             `bson:"caption,omitempty"         json:"caption,omitempty"`
	GuestName       string             `bson:"guest_name,omitempty"      json:"guest_name,omitempty"`
	GuestIdentifier string             `bson:"guest_identifier,omitempty" json:"guest_identifier,omitempty"`
	Moderation      ModerationStatus   `bson:"moderation_status"         json:"moderation_status"`
	CreatedAt       time.Time          `bson:"created_at"                json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"                json:"updated_at"`
}
