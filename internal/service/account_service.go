package service

import (
	"context"
	"errors"
	"fmt"

	"multiverse_backend/internal/domain"
	"multiverse_backend/internal/logger"
	"multiverse_backend/internal/referral"
	"multiverse_backend/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrBanned          = errors.New("account banned")
	ErrInvalidPassword = errors.New("invalid password")
)

// AccountService handles registration, login and profile lookups
type AccountService struct {
	users   repository.UserStore
	hasher  PasswordHasher
	tokens  *TokenIssuer
	newCode func() (string, error)
}

func NewAccountService(users repository.UserStore, hasher PasswordHasher, tokens *TokenIssuer) *AccountService {
	return &AccountService{
		users:   users,
		hasher:  hasher,
		tokens:  tokens,
		newCode: referral.NewCode,
	}
}

// SetCodeGenerator replaces the referral code source.
func (s *AccountService) SetCodeGenerator(fn func() (string, error)) {
	s.newCode = fn
}

// Register creates an account with the default credit balance and a fresh
// referral code.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		authAttempts.WithLabelValues("register", "duplicate_email").Inc()
		return nil, repository.ErrDuplicateEmail
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	code, err := s.newCode()
	if err != nil {
		return nil, fmt.Errorf("generate referral code: %w", err)
	}

	u := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Credits:      domain.DefaultCredits,
		PlanType:     domain.DefaultPlanType,
		ReferralCode: code,
	}
	if err := s.users.Create(ctx, u); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			authAttempts.WithLabelValues("register", "duplicate_email").Inc()
			return nil, err
		case errors.Is(err, repository.ErrDuplicateCode):
			authAttempts.WithLabelValues("register", "duplicate_code").Inc()
			logger.Warn("referral code collision", "code", code)
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	authAttempts.WithLabelValues("register", "success").Inc()
	logger.Info("user registered", "user_id", u.ID)
	u.PasswordHash = ""
	return u, nil
}

// Login checks the ban flag before the password so a banned user with the
// right password still learns the account is banned.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			authAttempts.WithLabelValues("login", "not_found").Inc()
			return "", nil, err
		}
		return "", nil, fmt.Errorf("lookup email: %w", err)
	}

	if u.IsBanned {
		authAttempts.WithLabelValues("login", "banned").Inc()
		return "", nil, ErrBanned
	}

	if !s.hasher.Check(password, u.PasswordHash) {
		authAttempts.WithLabelValues("login", "invalid_password").Inc()
		return "", nil, ErrInvalidPassword
	}

	token, err := s.tokens.Generate(u.ID)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	authAttempts.WithLabelValues("login", "success").Inc()
	u.PasswordHash = ""
	return token, u, nil
}

// Profile returns the user without the password hash.
func (s *AccountService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

// Tokens exposes the issuer so the auth middleware verifies with the same key.
func (s *AccountService) Tokens() *TokenIssuer {
	return s.tokens
}
