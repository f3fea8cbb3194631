package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/cleversamer/accountsvc/domain"
	"github.com/cleversamer/accountsvc/internal/config"
	"github.com/cleversamer/accountsvc/internal/infrastructure/auth"
	"github.com/cleversamer/accountsvc/internal/infrastructure/database"
	"github.com/cleversamer/accountsvc/internal/infrastructure/repositories"
)

// Seeds the first admin account. Safe to re-run: an existing admin with
// the same email is left untouched.
func main() {
	_ = godotenv.Load()
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config")
	}

	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		logger.Fatal().Msg("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}

	db, err := database.Open(cfg.DSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("database")
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal().Err(err).Msg("migrate")
	}

	ctx := context.Background()
	accounts := repositories.NewAccountRepository(db)

	if existing, err := accounts.FindByEmail(ctx, email); err == nil {
		logger.Info().Str("id", existing.ID.String()).Msg("admin already seeded")
		return
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		logger.Fatal().Err(err).Msg("lookup")
	}

	hash, err := auth.NewPasswordService().Hash(password)
	if err != nil {
		logger.Fatal().Err(err).Msg("hash")
	}

	account := &domain.Account{
		ID:            uuid.New(),
		Name:          "Administrator",
		Email:         email,
		PasswordHash:  hash,
		Role:          domain.RoleAdmin,
		EmailVerified: true,
		PhoneVerified: true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := accounts.Create(ctx, account); err != nil {
		logger.Fatal().Err(err).Msg("create")
	}
	logger.Info().Str("id", account.ID.String()).Msg("admin seeded")
}
