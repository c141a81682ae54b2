package models

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidKey      = errors.New("object key does not belong to wedding")
	ErrInvalidURL      = errors.New("public url does not match object key")
	ErrQuotaUnverified = errors.New("unable to verify upload limits")
	ErrDuplicateMedia  = errors.New("media already recorded for this url")
)

// Machine-readable quota codes returned to clients alongside 403s.
const (
	CodeTrialPhotoLimit     = "TRIAL_PHOTO_LIMIT"
	CodeTrialVideoLimit     = "TRIAL_VIDEO_LIMIT"
	CodeSubscriptionExpired = "SUBSCRIPTION_EXPIRED"
)

// QuotaError rejects an upload with a stable code the client can branch on.
type QuotaError struct {
	Code    string
	Message string
}

func (e *QuotaError) Error() string { return e.Message }

func NewQuotaError(code, message string) *QuotaError {
	return &QuotaError{Code: code, Message: message}
}

func AsQuotaError(err error) (*QuotaError, bool) {
	var qe *QuotaError
	if errors.As(err, &qe) {
		return qe, true
	}
	return nil, false
}
