// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeGenerated = "generated"
	OutcomeSkipped   = "skipped"
)

var (
	// DocumentJobsCompleted counts completed jobs. outcome is "generated" when a
	// PDF was produced and "skipped" when the application was absent or in a
	// state without a document.
	DocumentJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "document_jobs_completed_total",
			Help: "Total number of document jobs completed by worker",
		},
		[]string{"task_type", "outcome"},
	)

	DocumentJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "document_jobs_failed_total",
			Help: "Total number of document jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	DocumentJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "document_job_duration_seconds",
			Help:    "Duration of document job processing in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"task_type"},
	)

	DocumentJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "document_jobs_active",
			Help: "Number of document jobs currently being processed",
		},
		[]string{"task_type"},
	)

	DocumentSizeBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "document_size_bytes",
			Help:    "Size of generated PDF documents",
			Buckets: prometheus.ExponentialBuckets(4096, 2, 10),
		},
		[]string{"state"},
	)
)
