package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/crossroads/apparel-backend/internal/auth"
	"github.com/crossroads/apparel-backend/internal/config"
	"github.com/crossroads/apparel-backend/internal/health"
	"github.com/crossroads/apparel-backend/internal/logging"
	"github.com/crossroads/apparel-backend/internal/notify"
	"github.com/crossroads/apparel-backend/internal/password"
	"github.com/crossroads/apparel-backend/internal/profile"
	"github.com/crossroads/apparel-backend/internal/server"
	"github.com/crossroads/apparel-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	log, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatalf("logging: %v", err)
	}
	for _, w := range cfg.Warnings() {
		log.Warn(w)
	}
	ctx := context.Background()

	// ── PostgreSQL ────────────────────────────────────────────
	pgPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("postgres connect: %v", err)
	}
	defer pgPool.Close()
	if err := store.Migrate(ctx, pgPool); err != nil {
		log.Fatalf("postgres migrate: %v", err)
	}
	log.Info("verified users and logins tables")
	pgStore := store.NewPostgresStore(pgPool)

	// ── Email ────────────────────────────────────────────────
	var notifier notify.Notifier
	if cfg.EmailEnabled() {
		notifier = notify.NewSendGrid(cfg.SendGridAPIKey, cfg.FromEmail, cfg.FromName)
	}

	// ── MongoDB (delivery log) ───────────────────────────────
	if notifier != nil && cfg.DeliveryLogEnabled() {
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatalf("mongo connect: %v", err)
		}
		defer mongoClient.Disconnect(ctx)
		mongoStore := store.NewMongoStore(mongoClient.Database(cfg.MongoDB))
		notifier = notify.NewRecording(notifier, mongoStore, log)
	}

	// ── Redis (login rate limit) ─────────────────────────────
	var limiter *store.RedisLimiter
	if cfg.RateLimitEnabled() {
		rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("redis connect: %v", err)
		}
		defer rdb.Close()
		limiter = store.NewRedisLimiter(rdb, "login:", cfg.LoginRateLimit, cfg.LoginRateWindow)
	}

	// ── MinIO (profile pictures) ─────────────────────────────
	var pictures *profile.PictureHandler
	if cfg.PicturesEnabled() {
		minioStore, err := store.NewMinioStore(
			ctx, cfg.MinioEndpoint, cfg.MinioAccessKey,
			cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL,
		)
		if err != nil {
			log.Fatalf("minio connect: %v", err)
		}
		pictures = profile.NewPictureHandler(minioStore, log)
	}

	// ── Handlers ─────────────────────────────────────────────
	hasher := password.NewHasher(cfg.BcryptCost)
	profileSvc := profile.NewService(pgStore, hasher, notifier, cfg.EmailTimeout, log)
	authSvc := auth.NewService(pgStore, hasher, log)

	opts := server.Options{
		Log:            log,
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
		Health:         health.NewHandler(pgStore),
		Profiles:       profile.NewHandler(profileSvc, log),
		Auth:           auth.NewHandler(authSvc, log),
		Pictures:       pictures,
	}
	if limiter != nil {
		opts.Limiter = limiter
	}

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.NewRouter(opts),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
	}

	go func() {
		log.Infof("server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
}
