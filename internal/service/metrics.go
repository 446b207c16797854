package service

import "github.com/prometheus/client_golang/prometheus"

var authAttempts = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "account_auth_attempts_total",
		Help: "Registration and login attempts by result",
	},
	[]string{"action", "result"},
)

func init() {
	prometheus.MustRegister(authAttempts)
}
