package repository

import (
	"context"
	"errors"
	"fmt"

	"multiverse_backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, name, email, password_hash, credits, plan_type, referral_code,
	referred_by, referral_count, is_banned, created_at`

// UserRepository is the Postgres-backed UserStore
type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Credits,
		&u.PlanType,
		&u.ReferralCode,
		&u.ReferredBy,
		&u.ReferralCount,
		&u.IsBanned,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (id, name, email, password_hash, credits, plan_type, referral_code)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		u.ID,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Credits,
		u.PlanType,
		u.ReferralCode,
	).Scan(&u.CreatedAt)
	return translatePgError(err)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	return u, translatePgError(err)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	return u, translatePgError(err)
}

func (r *UserRepository) SetBanned(ctx context.Context, id string, banned bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET is_banned = $1 WHERE id = $2`, banned, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Redeem(ctx context.Context, red Redemption, check RedeemCheck) (*domain.ReferralEvent, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Both rows are locked in id order so two redemptions touching the same
	// pair of users cannot deadlock each other.
	rows, err := tx.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users
		 WHERE id = $1 OR referral_code = $2
		 ORDER BY id
		 FOR UPDATE`,
		red.RedeemerID, red.Code,
	)
	if err != nil {
		return nil, err
	}
	var locked []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		locked = append(locked, u)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	redeemer, referrer := pickLocked(locked, red)
	if err := check(redeemer, referrer); err != nil {
		return nil, err
	}
	if redeemer == nil || referrer == nil {
		return nil, ErrUserNotFound
	}

	tag, err := tx.Exec(ctx,
		`UPDATE users
		 SET referral_count = referral_count + 1, credits = credits + $1
		 WHERE id = $2 AND referral_count < $3`,
		red.Bonus, referrer.ID, red.ReferrerCap,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() != 1 {
		return nil, ErrConflict
	}

	tag, err = tx.Exec(ctx,
		`UPDATE users
		 SET referred_by = $1, credits = credits + $2
		 WHERE id = $3 AND referred_by IS NULL AND id <> $1`,
		referrer.ID, red.Bonus, redeemer.ID,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() != 1 {
		return nil, ErrConflict
	}

	ev := &domain.ReferralEvent{
		ID:         uuid.NewString(),
		ReferrerID: referrer.ID,
		RedeemerID: redeemer.ID,
		Code:       red.Code,
		Bonus:      red.Bonus,
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO referral_events (id, referrer_id, redeemer_id, code, bonus)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		ev.ID, ev.ReferrerID, ev.RedeemerID, ev.Code, ev.Bonus,
	).Scan(&ev.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("record referral event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return ev, nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// translatePgError maps driver errors onto the repository sentinels.
func translatePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrUserNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "users_email_key":
			return ErrDuplicateEmail
		case "users_referral_code_key":
			return ErrDuplicateCode
		}
	}
	return err
}
