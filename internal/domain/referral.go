package domain

import "time"

// ReferralEvent is the ledger row written together with a successful redemption
type ReferralEvent struct {
	ID         string    `db:"id" json:"id" gorm:"primaryKey;type:text"`
	ReferrerID string    `db:"referrer_id" json:"referrer_id" gorm:"index;not null"`
	RedeemerID string    `db:"redeemer_id" json:"redeemer_id" gorm:"uniqueIndex;not null"`
	Code       string    `db:"code" json:"code" gorm:"not null"`
	Bonus      int64     `db:"bonus" json:"bonus" gorm:"not null"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

func (ReferralEvent) TableName() string {
	return "referral_events"
}
