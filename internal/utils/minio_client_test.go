package utils

import "testing"

func TestPublicURLRoundTrip(t *testing.T) {
	store := &ObjectStore{bucket: "wedding-media", publicURL: "https://cdn.example.com/"}

	key := "weddings/w1/media/a.jpg"
	url := store.PublicURL(key)
	if url != "https://cdn.example.com/wedding-media/weddings/w1/media/a.jpg" {
		t.Fatalf("unexpected public url: %s", url)
	}

	if got := store.ExtractKeyFromURL(url); got != key {
		t.Fatalf("ExtractKeyFromURL = %q, want %q", got, key)
	}
}

func TestExtractKeyFromURLForeignBucket(t *testing.T) {
	store := &ObjectStore{bucket: "wedding-media", publicURL: "https://cdn.example.com"}

	if got := store.ExtractKeyFromURL("https://cdn.example.com/other-bucket/weddings/w1/media/a.jpg"); got != "" {
		t.Fatalf("expected empty key for foreign bucket, got %q", got)
	}
	if got := store.ExtractKeyFromURL("://bad-url"); got != "" {
		t.Fatalf("expected empty key for malformed url, got %q", got)
	}
}
