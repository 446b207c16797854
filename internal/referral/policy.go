package referral

import "multiverse_backend/internal/domain"

// Policy holds the referral economics.
type Policy struct {
	Bonus       int64
	ReferrerCap int
}

func DefaultPolicy() Policy {
	return Policy{Bonus: 200, ReferrerCap: 100}
}

// Evaluate applies the redemption preconditions in order. redeemer or referrer
// may be nil when the corresponding user does not exist.
func (p Policy) Evaluate(redeemer, referrer *domain.User, code string) Outcome {
	switch {
	case redeemer == nil:
		return NotFound
	case redeemer.HasRedeemed():
		return AlreadyRedeemed
	case redeemer.ReferralCode == code:
		return SelfReferral
	case referrer == nil:
		return InvalidCode
	case referrer.ReferralCount >= p.ReferrerCap:
		return ReferrerLimitReached
	}
	return Success
}
