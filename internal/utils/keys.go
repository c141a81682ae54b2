package utils

import (
	"fmt"
	"path"
	"strings"
)

// WeddingKeyPrefix returns the object-key prefix every asset of a wedding
// must live under. Tenant isolation in the shared bucket hangs on this.
func WeddingKeyPrefix(weddingID string) string {
	return fmt.Sprintf("weddings/%s/", weddingID)
}

func KeyBelongsToWedding(key, weddingID string) bool {
	return strings.HasPrefix(key, WeddingKeyPrefix(weddingID))
}

// GenerateThumbnailKey derives the thumbnail key from the original's key,
// e.g. weddings/w1/media/photo.jpg -> weddings/w1/thumbnails/photo-400w.webp.
func GenerateThumbnailKey(originalKey, sizeLabel string) string {
	dir := path.Dir(originalKey)
	if path.Base(dir) == "media" {
		dir = path.Dir(dir)
	}
	base := strings.TrimSuffix(path.Base(originalKey), path.Ext(originalKey))
	return path.Join(dir, "thumbnails", fmt.Sprintf("%s-%s.webp", base, sizeLabel))
}
