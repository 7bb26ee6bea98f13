package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/thanaritk/markvault/services/bookmark-service/internal/config"
	"github.com/thanaritk/markvault/services/bookmark-service/internal/handler"
	"github.com/thanaritk/markvault/services/bookmark-service/internal/repository"
	"github.com/thanaritk/markvault/services/bookmark-service/internal/usecase"
	"github.com/thanaritk/markvault/shared/auth"
	"github.com/thanaritk/markvault/shared/cache"
	"github.com/thanaritk/markvault/shared/discovery"
	"github.com/thanaritk/markvault/shared/mailer"
	"github.com/thanaritk/markvault/shared/provider"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger = logger.With().Str("service", cfg.ServiceName).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	if err := client.Ping(pingCtx, nil); err != nil {
		cancel()
		logger.Fatal().Err(err).Msg("failed to ping mongodb")
	}
	cancel()

	db := client.Database(cfg.MongoDatabase)

	var c cache.Cache
	if cfg.RedisAddr != "" {
		redisClient, err := cache.Connect(ctx, &logger, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()

		c = cache.NewRedisCache(redisClient)
	}

	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)
	folderRepo := repository.NewFolderMongoRepository(ctx, &logger, db)
	bookmarkRepo := repository.NewBookmarkMongoRepository(ctx, &logger, db)

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)

	var m *mailer.Mailer
	if cfg.MailEnabled {
		m = mailer.NewMailer(&logger)
	}

	var googleVerifier *provider.GoogleVerifier
	if cfg.GoogleClientID != "" {
		googleVerifier = provider.NewGoogleVerifier(cfg.GoogleClientID)
	}

	authUC := usecase.NewAuthUsecase(userRepo, jwtAuth, m, googleVerifier, cfg.Token, &logger)
	folderUC := usecase.NewFolderUsecase(folderRepo, bookmarkRepo, c, cfg.CacheTTL)
	bookmarkUC := usecase.NewBookmarkUsecase(bookmarkRepo, c, cfg.CacheTTL)
	userUC := usecase.NewUserUsecase(userRepo)

	authMW := handler.NewAuthMiddleware(jwtAuth, cfg.Token.AccessTokenSecret)
	handlers := handler.NewHandlers(authUC, folderUC, bookmarkUC, userUC, authMW, &logger)
	router := handler.NewRouter(handlers, &logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if cfg.ConsulAddr != "" {
		deregister, err := discovery.Register(cfg.ConsulAddr, discovery.Registration{
			ID:         cfg.ServiceName + "-" + uuid.NewString(),
			Name:       cfg.ServiceName,
			Address:    cfg.AdvertiseAddr,
			Port:       cfg.HTTPPort,
			HealthPath: "/healthz",
		}, &logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to register with consul")
		}
		defer deregister()
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()

	logger.Info().Msg("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shut down http server cleanly")
	}
}
