package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gotaagota/collections-api/internal/api"
	"github.com/gotaagota/collections-api/internal/core/service"
	"github.com/gotaagota/collections-api/internal/infrastructure/config"
	mongodb "github.com/gotaagota/collections-api/internal/infrastructure/db/mongo"
	redisdb "github.com/gotaagota/collections-api/internal/infrastructure/db/redis"
	"github.com/gotaagota/collections-api/pkg/logger"
)

// @title           Collections API
// @version         1.0
// @description     Management API for a door-to-door microloan collection operation.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	if err := bootstrap(ctx, db, cfg); err != nil {
		log.Fatal().Err(err).Msg("bootstrap failed")
	}

	e := api.NewRouter(db, rdb, cfg)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("collections api started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// bootstrap creates the MongoDB indexes and seeds the default admin
// account when the admins collection is empty.
func bootstrap(ctx context.Context, db *mongo.Database, cfg *config.Config) error {
	log := logger.Get()

	authRepo := mongodb.NewAuthRepository(db)
	collectorRepo := mongodb.NewCollectorRepository(db)

	type indexer interface {
		EnsureIndexes(ctx context.Context) error
	}
	for _, repo := range []indexer{
		authRepo,
		collectorRepo,
		mongodb.NewClientRepository(db),
		mongodb.NewLoanRepository(db),
		mongodb.NewPaymentRepository(db),
		mongodb.NewVisitRepository(db),
		mongodb.NewInventoryRepository(db),
	} {
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
	}

	if cfg.Admin.Password == "" {
		log.Warn().Msg("ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}
	authService := service.NewAuthService(authRepo, collectorRepo, cfg.JWTSecret, cfg.JWTTTL, log)
	return authService.EnsureDefaultAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
}
