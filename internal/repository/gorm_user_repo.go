package repository

import (
	"context"
	"errors"
	"strings"

	"multiverse_backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository is the UserStore used with the embedded SQLite database.
// The underlying pool is limited to one connection, so every transaction runs
// alone and the locked snapshot in Redeem is exact.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, u *domain.User) error {
	return translateGormError(r.db.WithContext(ctx).Create(u).Error)
}

func (r *GormUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &u, nil
}

func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &u, nil
}

func (r *GormUserRepository) SetBanned(ctx context.Context, id string, banned bool) error {
	res := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Update("is_banned", banned)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *GormUserRepository) Redeem(ctx context.Context, red Redemption, check RedeemCheck) (*domain.ReferralEvent, error) {
	var ev *domain.ReferralEvent
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []domain.User
		if err := tx.Where("id = ? OR referral_code = ?", red.RedeemerID, red.Code).
			Order("id").Find(&rows).Error; err != nil {
			return err
		}
		locked := make([]*domain.User, 0, len(rows))
		for i := range rows {
			locked = append(locked, &rows[i])
		}

		redeemer, referrer := pickLocked(locked, red)
		if err := check(redeemer, referrer); err != nil {
			return err
		}
		if redeemer == nil || referrer == nil {
			return ErrUserNotFound
		}

		res := tx.Model(&domain.User{}).
			Where("id = ? AND referral_count < ?", referrer.ID, red.ReferrerCap).
			Updates(map[string]any{
				"referral_count": gorm.Expr("referral_count + 1"),
				"credits":        gorm.Expr("credits + ?", red.Bonus),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return ErrConflict
		}

		res = tx.Model(&domain.User{}).
			Where("id = ? AND referred_by IS NULL AND id <> ?", redeemer.ID, referrer.ID).
			Updates(map[string]any{
				"referred_by": referrer.ID,
				"credits":     gorm.Expr("credits + ?", red.Bonus),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return ErrConflict
		}

		ev = &domain.ReferralEvent{
			ID:         uuid.NewString(),
			ReferrerID: referrer.ID,
			RedeemerID: redeemer.ID,
			Code:       red.Code,
			Bonus:      red.Bonus,
		}
		return tx.Create(ev).Error
	})
	if err != nil {
		return nil, err
	}
	return ev, nil
}

func (r *GormUserRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func translateGormError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		switch {
		case strings.Contains(msg, "users.email"):
			return ErrDuplicateEmail
		case strings.Contains(msg, "users.referral_code"):
			return ErrDuplicateCode
		}
	}
	return err
}
