package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/anonto42/nano-social/backend/internal/imagestore"
	"github.com/anonto42/nano-social/backend/internal/logger"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/router"
	"github.com/anonto42/nano-social/backend/internal/token"
	"github.com/anonto42/nano-social/backend/pkg/config"
	"github.com/anonto42/nano-social/backend/pkg/firebase"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.New(0).Fatal("failed to load config", "error", err)
	}
	log := logger.New(cfg.LogLevel)

	// Initialize database connections
	db, err := config.InitDB(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize databases", "error", err)
	}
	defer db.CloseDB()

	if err := repositories.AutoMigrate(db.Postgres); err != nil {
		log.Fatal("failed to auto migrate models", "error", err)
	}
	postRepo := repositories.NewMongoPostRepository(db.Mongo.Database(cfg.Mongo.Database))
	if err := postRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal("failed to create post indexes", "error", err)
	}

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		log.Fatal("failed to create minio client", "error", err)
	}
	images, err := imagestore.NewClient(ctx, minioClient, cfg.Storage.Bucket, cfg.Storage.PublicURL)
	if err != nil {
		log.Fatal("failed to initialize image store", "error", err)
	}

	deps := router.Dependencies{
		Users:         repositories.NewPostgresUserRepository(db.Postgres),
		Follows:       repositories.NewPostgresFollowRepository(db.Postgres),
		Likes:         repositories.NewPostgresLikeRepository(db.Postgres),
		Notifications: repositories.NewPostgresNotificationRepository(db.Postgres),
		Posts:         postRepo,
		Images:        images,
		Tokens:        token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL),
		Logger:        log,
		BcryptCost:    cfg.BcryptCost,
		SecureCookie:  !cfg.IsDevelopment(),
	}

	// Firebase login is optional
	if cfg.Firebase.CredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.Firebase.CredentialsPath)
		if err != nil {
			log.Fatal("failed to initialize Firebase", "error", err)
		}
		deps.Firebase = firebaseApp
	}

	e, err := router.New(deps)
	if err != nil {
		log.Fatal("failed to build router", "error", err)
	}

	go func() {
		log.Info("server started", "port", cfg.Port, "env", cfg.Env)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shut down server", "error", err)
	}
	log.Info("server stopped")
}
