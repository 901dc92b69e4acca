package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ChannelLabel = "channel"
	Outcome      = "outcome"
	Succeeded    = "succeeded"
	Failed       = "failed"
)

// To add new metrics:
// 1. Register them in RegisterSolver() below.
// 2. Add an emit helper and call it where the value is produced.
var (
	solveSummary = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "gosolv_solve_duration_seconds",
			Help:       "The duration of a dependency solve attempt",
			Objectives: map[float64]float64{0.95: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{Outcome},
	)

	poolSolvables = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gosolv_pool_solvables",
			Help: "Number of candidate solvables loaded from a channel",
		},
		[]string{ChannelLabel},
	)
)

func RegisterSolver() {
	prometheus.MustRegister(solveSummary)
	prometheus.MustRegister(poolSolvables)
}

func RegisterSolveSuccess(duration time.Duration) {
	solveSummary.WithLabelValues(Succeeded).Observe(duration.Seconds())
}

func RegisterSolveFailure(duration time.Duration) {
	solveSummary.WithLabelValues(Failed).Observe(duration.Seconds())
}

func EmitChannelSize(channel string, solvables int) {
	poolSolvables.WithLabelValues(channel).Set(float64(solvables))
}
