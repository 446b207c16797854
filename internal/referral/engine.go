// Package referral applies one-time mutual credit bonuses between a redeeming
// user and the owner of a referral code.
package referral

import (
	"context"
	"errors"
	"fmt"

	"multiverse_backend/internal/domain"
	"multiverse_backend/internal/logger"
	"multiverse_backend/internal/repository"
)

type Engine struct {
	store  repository.UserStore
	policy Policy
}

func NewEngine(store repository.UserStore, policy Policy) *Engine {
	return &Engine{store: store, policy: policy}
}

func (e *Engine) Policy() Policy {
	return e.policy
}

// Redeem credits redeemerID and the owner of code if every precondition holds.
// Business-rule rejections come back as a Result; the error is reserved for
// store failures, in which case nothing was written.
func (e *Engine) Redeem(ctx context.Context, redeemerID, code string) (Result, error) {
	red := repository.Redemption{
		RedeemerID:  redeemerID,
		Code:        code,
		Bonus:       e.policy.Bonus,
		ReferrerCap: e.policy.ReferrerCap,
	}

	ev, err := e.store.Redeem(ctx, red, func(redeemer, referrer *domain.User) error {
		if o := e.policy.Evaluate(redeemer, referrer, code); o != Success {
			return &Rejection{Outcome: o}
		}
		return nil
	})

	var rej *Rejection
	switch {
	case errors.As(err, &rej):
		redemptions.WithLabelValues(rej.Outcome.Code()).Inc()
		return newResult(rej.Outcome, 0), nil
	case err != nil:
		redemptions.WithLabelValues("error").Inc()
		return Result{}, fmt.Errorf("redeem referral code: %w", err)
	}

	redemptions.WithLabelValues(Success.Code()).Inc()
	logger.Info("referral redeemed",
		"redeemer_id", ev.RedeemerID,
		"referrer_id", ev.ReferrerID,
		"bonus", ev.Bonus,
	)
	return newResult(Success, ev.Bonus), nil
}
