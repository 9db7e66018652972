package jobs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	scansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_scans_total",
			Help: "Job description scans by resulting risk tier and trigger (submit, edit, rescan).",
		},
		[]string{"tier", "trigger"},
	)

	indicatorHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_indicator_hits_total",
			Help: "Scam indicators fired, by label.",
		},
		[]string{"label"},
	)

	reviewsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_reviews_total",
			Help: "Admin review actions applied to jobs.",
		},
		[]string{"action"},
	)

	applicationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobboard_applications_total",
			Help: "Applications accepted for approved jobs.",
		},
	)
)
