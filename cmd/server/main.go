package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/relaydesk/handover-api/internal/api"
	"github.com/relaydesk/handover-api/internal/core/domain"
	"github.com/relaydesk/handover-api/internal/core/ports"
	"github.com/relaydesk/handover-api/internal/infrastructure/config"
	"github.com/relaydesk/handover-api/internal/infrastructure/db/postgres"
	redisdb "github.com/relaydesk/handover-api/internal/infrastructure/db/redis"
	"github.com/relaydesk/handover-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Handover API
// @version      1.0
// @description  Session-authenticated storage of opaque handover documents.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer db.Close()

	if err := postgres.RunMigrations(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	userRepo := postgres.NewUserRepository(db)
	if err := seedAdmin(ctx, userRepo, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("admin seeding failed")
	}

	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("handover api started")

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	log.Info().Msg("handover api stopped")
}

// seedAdmin creates the reserved admin account on first start. An existing
// admin record is left untouched, so password changes via configuration do
// not silently rewrite credentials.
func seedAdmin(ctx context.Context, users ports.UserRepository, password string) error {
	_, err := users.FindByUsername(ctx, domain.ProtectedUsername)
	if err == nil {
		return nil
	}
	if err != domain.ErrUserNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return users.Insert(ctx, &domain.User{
		Username:     domain.ProtectedUsername,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		DisplayName:  "Administrator",
		CreatedAt:    time.Now().UTC(),
	})
}
