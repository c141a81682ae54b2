package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"wedding-app/media-service/internal/models"
	"wedding-app/media-service/internal/services"
	"wedding-app/media-service/internal/utils"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	svc    *services.MediaService
	guests *services.GuestService
}

func NewMediaHandler(svc *services.MediaService, guests *services.GuestService) *MediaHandler {
	return &MediaHandler{svc: svc, guests: guests}
}

type confirmUploadRequest struct {
	WeddingID       string `json:"weddingId" validate:"required"`
	Key             string `json:"key" validate:"required"`
	PublicURL       string `json:"publicUrl" validate:"required"`
	ContentType     string `json:"contentType" validate:"required"`
	Caption         string `json:"caption"`
	GuestName       string `json:"guestName"`
	GuestIdentifier string `json:"guestIdentifier"`
}

// ConfirmUpload is called after a client finishes a direct-to-store upload.
func (h *MediaHandler) ConfirmUpload(c *gin.Context) {
	var req confirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": "body must be valid JSON"})
		return
	}
	if err := utils.GetValidator().Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing required fields",
			"message": "required: " + strings.Join(utils.MissingFields(err), ", "),
		})
		return
	}

	caller := services.Caller{
		BearerToken:     bearerToken(c),
		GuestIdentifier: req.GuestIdentifier,
	}

	res, err := h.svc.Confirm(c.Request.Context(), caller, services.ConfirmRequest{
		WeddingID:       req.WeddingID,
		Key:             req.Key,
		PublicURL:       req.PublicURL,
		ContentType:     req.ContentType,
		Caption:         req.Caption,
		GuestName:       req.GuestName,
		GuestIdentifier: req.GuestIdentifier,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Upload confirmed"
	if res.Idempotent {
		message = "Upload already confirmed (idempotent)"
	}
	c.JSON(http.StatusOK, gin.H{"media": res.Media, "message": message})
}

type presignUploadRequest struct {
	WeddingID       string `json:"weddingId" validate:"required"`
	FileName        string `json:"fileName" validate:"required"`
	ContentType     string `json:"contentType" validate:"required"`
	GuestIdentifier string `json:"guestIdentifier"`
}

func (h *MediaHandler) PresignUpload(c *gin.Context) {
	var req presignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": "body must be valid JSON"})
		return
	}
	if err := utils.GetValidator().Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing required fields",
			"message": "required: " + strings.Join(utils.MissingFields(err), ", "),
		})
		return
	}

	caller := services.Caller{
		BearerToken:     bearerToken(c),
		GuestIdentifier: req.GuestIdentifier,
	}

	res, err := h.svc.Presign(c.Request.Context(), caller, services.PresignRequest{
		WeddingID:   req.WeddingID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *MediaHandler) ListMedia(c *gin.Context) {
	weddingID := c.Param("weddingId")
	media, err := h.svc.ListByWedding(c.Request.Context(), weddingID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"media": media})
}

type guestSessionRequest struct {
	WeddingID string `json:"weddingId" validate:"required"`
	GuestName string `json:"guestName" validate:"required"`
}

func (h *MediaHandler) CreateGuestSession(c *gin.Context) {
	var req guestSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": "body must be valid JSON"})
		return
	}
	if err := utils.GetValidator().Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing required fields",
			"message": "required: " + strings.Join(utils.MissingFields(err), ", "),
		})
		return
	}

	session, err := h.guests.CreateSession(c.Request.Context(), req.WeddingID, req.GuestName)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "message": "wedding does not exist"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// respondError maps service errors onto the stable error/message/code shape
// clients branch on.
func respondError(c *gin.Context, err error) {
	if qe, ok := models.AsQuotaError(err); ok {
		errLabel := "Trial limit reached"
		if qe.Code == models.CodeSubscriptionExpired {
			errLabel = "Subscription expired"
		}
		c.JSON(http.StatusForbidden, gin.H{"error": errLabel, "code": qe.Code, "message": qe.Message})
		return
	}

	switch {
	case errors.Is(err, models.ErrInvalidKey):
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid key", "message": "object key does not belong to this wedding"})
	case errors.Is(err, models.ErrInvalidURL):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": "public url does not match object key"})
	case errors.Is(err, models.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "caller may not upload media for this wedding"})
	case errors.Is(err, models.ErrQuotaUnverified):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service unavailable", "message": "unable to verify upload limits, try again"})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "message": "resource does not exist"})
	default:
		log.Printf("[HANDLER] internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "message": "something went wrong"})
	}
}
