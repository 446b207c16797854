package referral

import "fmt"

// Outcome is the closed set of results a redemption can have.
type Outcome int

const (
	Success Outcome = iota
	NotFound
	AlreadyRedeemed
	SelfReferral
	InvalidCode
	ReferrerLimitReached
)

var outcomeCodes = [...]string{
	Success:              "success",
	NotFound:             "not_found",
	AlreadyRedeemed:      "already_redeemed",
	SelfReferral:         "self_referral",
	InvalidCode:          "invalid_code",
	ReferrerLimitReached: "referrer_limit_reached",
}

var outcomeMessages = [...]string{
	NotFound:             "User not found",
	AlreadyRedeemed:      "Already redeemed",
	SelfReferral:         "Cannot redeem own code",
	InvalidCode:          "Invalid code",
	ReferrerLimitReached: "Referrer has reached the referral limit",
}

// Code is the stable machine-readable name clients branch on.
func (o Outcome) Code() string {
	if o < Success || int(o) >= len(outcomeCodes) {
		return "unknown"
	}
	return outcomeCodes[o]
}

func (o Outcome) String() string {
	return o.Code()
}

// Rejection carries a business-rule outcome out of the store transaction.
type Rejection struct {
	Outcome Outcome
}

func (r *Rejection) Error() string {
	return "referral rejected: " + r.Outcome.Code()
}

// Result is what Engine.Redeem reports for a handled request.
type Result struct {
	Outcome Outcome
	Message string
	Bonus   int64
}

func (r Result) OK() bool {
	return r.Outcome == Success
}

func newResult(o Outcome, bonus int64) Result {
	if o == Success {
		return Result{
			Outcome: Success,
			Message: fmt.Sprintf("Success! %d Credits added.", bonus),
			Bonus:   bonus,
		}
	}
	return Result{Outcome: o, Message: outcomeMessages[o]}
}
