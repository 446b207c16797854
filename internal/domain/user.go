package domain

import "time"

// Defaults applied to every newly registered account
const (
	DefaultCredits  int64 = 1000
	DefaultPlanType       = "free"
)

type User struct {
	ID            string    `db:"id" json:"id" gorm:"primaryKey;type:text"`
	Name          string    `db:"name" json:"name"`
	Email         string    `db:"email" json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash  string    `db:"password_hash" json:"-" gorm:"not null"`
	Credits       int64     `db:"credits" json:"credits" gorm:"not null;default:1000"`
	PlanType      string    `db:"plan_type" json:"plan_type" gorm:"not null;default:'free'"`
	ReferralCode  string    `db:"referral_code" json:"referral_code" gorm:"uniqueIndex;not null"`
	ReferredBy    *string   `db:"referred_by" json:"referred_by"`
	ReferralCount int       `db:"referral_count" json:"referral_count" gorm:"not null;default:0"`
	IsBanned      bool      `db:"is_banned" json:"is_banned" gorm:"not null;default:false"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// HasRedeemed reports whether the user already used someone's referral code.
func (u *User) HasRedeemed() bool {
	return u.ReferredBy != nil && *u.ReferredBy != ""
}
