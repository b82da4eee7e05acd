package matching

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MatchingRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_runs_total",
			Help: "Total number of matching runs by outcome",
		},
		[]string{"outcome"},
	)

	MatchingCandidatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_candidates_total",
			Help: "Candidate routes by evaluation outcome",
		},
		[]string{"outcome", "reason"},
	)

	MatchingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_duration_seconds",
			Help:    "Duration of a matching run including candidate search and persistence",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)
)

func observeEvaluation(e *Evaluation) {
	MatchingCandidatesTotal.WithLabelValues("matched", "").Add(float64(len(e.Results)))
	MatchingCandidatesTotal.WithLabelValues("below_score", "").Add(float64(e.BelowScore))
	MatchingCandidatesTotal.WithLabelValues("failed", "").Add(float64(len(e.Failures)))
	for reason, n := range e.Rejected {
		MatchingCandidatesTotal.WithLabelValues("incompatible", reason.String()).Add(float64(n))
	}
}
