package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"wedding-app/media-service/internal/config"
	"wedding-app/media-service/internal/handler"
	"wedding-app/media-service/internal/repository"
	"wedding-app/media-service/internal/services"
	"wedding-app/media-service/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	baseCtx := context.Background()
	ctx, shutdownManager := utils.NewShutdownManager(baseCtx)
	shutdownManager.StartListening()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	db := mongoClient.Database(cfg.MongoDatabase)

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Closing MongoDB connection...")
		return mongoClient.Disconnect(ctx)
	})

	store, err := utils.NewObjectStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioPublicURL, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("minio init: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Closing Redis connection...")
		return redisClient.Close()
	})

	mediaRepo := repository.NewMediaRepository(db)
	if err := mediaRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("media indexes: %v", err)
	}
	weddingRepo := repository.NewWeddingRepository(db)
	sessionRepo := repository.NewGuestSessionRepository(db)

	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret)
	authorizer := services.NewAuthorizer(weddingRepo, sessionRepo, jwtUtil)
	quota := services.NewQuotaGate(mediaRepo, cfg.TrialPhotoLimit, cfg.TrialVideoLimit)
	svc := services.NewMediaService(mediaRepo, store, authorizer, quota, services.MediaServiceOptions{
		ThumbWidth:      cfg.ThumbWidth,
		ThumbQuality:    cfg.ThumbQuality,
		MaxSourceBytes:  cfg.MaxSourceMiB << 20,
		AsyncThumbnails: cfg.AsyncThumbnails,
	})
	guests := services.NewGuestService(weddingRepo, sessionRepo)
	mediaHandler := handler.NewMediaHandler(svc, guests)

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Waiting for background thumbnails...")
		svc.WaitForThumbnails()
		return nil
	})

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.RedirectTrailingSlash = false

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	rateLimiter := utils.NewRateLimiter(redisClient, cfg.RateLimitPerMinute, time.Minute)

	upload := router.Group("/upload")
	upload.Use(rateLimiter.Middleware())
	{
		upload.POST("/presign", mediaHandler.PresignUpload)
		upload.POST("/confirm", mediaHandler.ConfirmUpload)
	}

	router.GET("/media/:weddingId", mediaHandler.ListMedia)
	router.POST("/guest/session", rateLimiter.Middleware(), mediaHandler.CreateGuestSession)

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		log.Println("Media Service running on", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	shutdownManager.Register(func(ctx context.Context) error {
		log.Println("[SHUTDOWN] Shutting down HTTP server...")
		return server.Shutdown(ctx)
	})

	shutdownManager.Wait()
}
