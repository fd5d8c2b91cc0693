package orchestrator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cycles = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "gitpulse",
	Subsystem: "orchestrator",
	Name:      "cycles_total",
	Help:      "Total number of commit cycles by outcome.",
}, []string{"outcome"})
