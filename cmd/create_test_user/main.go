package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"multiverse_backend/internal/app"
	"multiverse_backend/internal/config"
	"multiverse_backend/internal/logger"
	"multiverse_backend/internal/repository"
	"multiverse_backend/internal/service"
)

// Seeds an account through the same services the API uses and prints a token
// for it. -ban marks the account banned afterwards.
func main() {
	email := flag.String("email", "tester@example.com", "account email")
	password := flag.String("password", "password123", "account password")
	name := flag.String("name", "Tester", "display name")
	ban := flag.Bool("ban", false, "ban the account after creating it")
	flag.Parse()

	cfg := config.Load()
	a, err := app.New(cfg)
	if err != nil {
		logger.Fatal("failed to build application", "error", err)
	}
	defer a.Close()

	ctx := context.Background()
	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	accounts := service.NewAccountService(a.Store, service.NewBcryptHasher(), tokens)

	u, err := accounts.Register(ctx, *name, *email, *password)
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		u, err = a.Store.GetByEmail(ctx, *email)
		if err != nil {
			logger.Fatal("lookup existing user", "error", err)
		}
		logger.Info("user already exists", "user_id", u.ID)
	case err != nil:
		logger.Fatal("create user failed", "error", err)
	default:
		logger.Info("user created", "user_id", u.ID)
	}

	if *ban {
		if err := a.Store.SetBanned(ctx, u.ID, true); err != nil {
			logger.Fatal("ban user failed", "error", err)
		}
		logger.Info("user banned", "user_id", u.ID)
	}

	token, err := tokens.Generate(u.ID)
	if err != nil {
		logger.Fatal("failed to generate token", "error", err)
	}
	fmt.Printf("user_id=%s referral_code=%s\ntoken=%s\n", u.ID, u.ReferralCode, token)
}
