package config

import "testing"

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("THUMB_WIDTH", "")
	t.Setenv("TRIAL_PHOTO_LIMIT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.TrialPhotoLimit != 50 || cfg.TrialVideoLimit != 1 {
		t.Fatalf("unexpected trial limits: %d photos, %d videos", cfg.TrialPhotoLimit, cfg.TrialVideoLimit)
	}
	if cfg.ThumbWidth != 400 || cfg.ThumbQuality != 85 {
		t.Fatalf("unexpected thumbnail settings: %dpx q%d", cfg.ThumbWidth, cfg.ThumbQuality)
	}
	if cfg.MaxSourceMiB != 10 {
		t.Fatalf("unexpected source cap: %d MiB", cfg.MaxSourceMiB)
	}
	if !cfg.AsyncThumbnails {
		t.Fatal("async thumbnails should default to on")
	}
	if cfg.MongoDatabase != "wedding_service" {
		t.Fatalf("unexpected database name: %s", cfg.MongoDatabase)
	}
}

func TestLoadConfigInvalidNumber(t *testing.T) {
	setRequired(t)
	t.Setenv("THUMB_WIDTH", "not-a-number")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for invalid THUMB_WIDTH")
	}
}

func TestLoadConfigMissingRequired(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when MONGO_URI is missing")
	}
}
