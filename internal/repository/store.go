package repository

import (
	"context"
	"errors"

	"multiverse_backend/internal/domain"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrDuplicateCode  = errors.New("referral code already taken")
	// ErrConflict means a guarded update matched no row inside a redemption
	// transaction; the transaction has been rolled back.
	ErrConflict = errors.New("conflicting concurrent update")
)

// Redemption is one referral-code redemption to apply atomically.
type Redemption struct {
	RedeemerID  string
	Code        string
	Bonus       int64
	ReferrerCap int
}

// RedeemCheck inspects the locked rows before any write. redeemer is nil when
// RedeemerID does not exist, referrer is nil when no user owns Code. Returning
// a non-nil error aborts the redemption and is passed through unchanged.
type RedeemCheck func(redeemer, referrer *domain.User) error

// UserStore persists user documents.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetBanned(ctx context.Context, id string, banned bool) error
	// Redeem locks the redeemer and the owner of the code, runs check against
	// that snapshot and, if it passes, credits both users and records the
	// ledger row in one transaction.
	Redeem(ctx context.Context, r Redemption, check RedeemCheck) (*domain.ReferralEvent, error)
	Ping(ctx context.Context) error
}

func pickLocked(users []*domain.User, r Redemption) (redeemer, referrer *domain.User) {
	for _, u := range users {
		if u.ID == r.RedeemerID {
			redeemer = u
		}
		if u.ReferralCode == r.Code {
			referrer = u
		}
	}
	return redeemer, referrer
}
