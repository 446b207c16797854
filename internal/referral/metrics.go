package referral

import "github.com/prometheus/client_golang/prometheus"

var redemptions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "referral_redemptions_total",
		Help: "Referral redemption attempts by outcome",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(redemptions)
}
