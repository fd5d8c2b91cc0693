package pusher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pushAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gitpulse",
		Subsystem: "pusher",
		Name:      "attempts_total",
		Help:      "Total number of push attempts, retries included.",
	})
	pushFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gitpulse",
		Subsystem: "pusher",
		Name:      "failures_total",
		Help:      "Total number of failed push attempts.",
	})
)
