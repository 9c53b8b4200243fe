package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/neokart/neokart-backend/internal/users"
	"github.com/neokart/neokart-backend/pkg/config"
	"github.com/neokart/neokart-backend/pkg/db"
	"github.com/neokart/neokart-backend/pkg/logger"
	"github.com/neokart/neokart-backend/pkg/security"
)

// Seeds the admin account from NEOKART_ADMIN_EMAIL / NEOKART_ADMIN_PASSWORD.
// Safe to run repeatedly; an existing account is left untouched.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "provision"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "provision",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		logg.Warn(ctx, "admin credentials not configured, nothing to provision")
		return
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	hash, err := security.HashPassword(cfg.Admin.Password, cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to hash admin password", err)
		os.Exit(1)
	}

	repo := users.NewRepository(dbClient.DB())
	created, err := repo.EnsureAdmin(ctx, cfg.Admin.Email, hash)
	if err != nil {
		logg.Error(ctx, "failed to provision admin", err)
		os.Exit(1)
	}

	ctx = logg.WithField(ctx, "email", users.NormalizeEmail(cfg.Admin.Email))
	if created {
		logg.Info(ctx, "admin account created")
		return
	}
	logg.Info(ctx, "admin account already present")
}
