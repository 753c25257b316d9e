package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	BetsPlaced = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "betslip_bets_placed_total",
			Help: "Total committed bets",
		},
	)

	ValidationRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betslip_validation_rejections_total",
			Help: "Total betslip validation errors by public code",
		},
		[]string{"code"},
	)

	CommitFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "betslip_commit_failures_total",
			Help: "Total aborted bet commits (persistence failures and late insufficiency)",
		},
	)

	CommitDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "betslip_commit_duration_seconds",
			Help:    "Bet commit transaction duration",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func Init() {
	prometheus.MustRegister(BetsPlaced)
	prometheus.MustRegister(ValidationRejections)
	prometheus.MustRegister(CommitFailures)
	prometheus.MustRegister(CommitDuration)
}
