package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr string

	MongoURI      string
	MongoDatabase string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioPublicURL string
	MinioUseSSL    bool

	RedisAddr     string
	RedisPassword string

	JWTSecret string

	TrialPhotoLimit int64
	TrialVideoLimit int64
	ThumbWidth      int
	ThumbQuality    int
	MaxSourceMiB    int64
	AsyncThumbnails bool

	RateLimitPerMinute int
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:     getenv("LISTEN_ADDR", "0.0.0.0:8010"),
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDatabase:  getenv("MONGO_DATABASE", "wedding_service"),
		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getenv("MINIO_BUCKET", "wedding-media"),
		MinioPublicURL: os.Getenv("MINIO_PUBLIC_URL"),
		MinioUseSSL:    getenv("MINIO_USE_SSL", "false") == "true",
		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	var err error
	if cfg.TrialPhotoLimit, err = getenvInt64("TRIAL_PHOTO_LIMIT", 50); err != nil {
		return nil, err
	}
	if cfg.TrialVideoLimit, err = getenvInt64("TRIAL_VIDEO_LIMIT", 1); err != nil {
		return nil, err
	}
	thumbWidth, err := getenvInt64("THUMB_WIDTH", 400)
	if err != nil {
		return nil, err
	}
	cfg.ThumbWidth = int(thumbWidth)
	thumbQuality, err := getenvInt64("THUMB_QUALITY", 85)
	if err != nil {
		return nil, err
	}
	cfg.ThumbQuality = int(thumbQuality)
	if cfg.MaxSourceMiB, err = getenvInt64("THUMB_MAX_SOURCE_MIB", 10); err != nil {
		return nil, err
	}
	rateLimit, err := getenvInt64("RATE_LIMIT_PER_MINUTE", 60)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitPerMinute = int(rateLimit)

	cfg.AsyncThumbnails = getenv("ASYNC_THUMBNAILS", "true") == "true"

	return cfg, nil
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvInt64(key string, fallback int64) (int64, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
