package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Zeebe worker metrics.
var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)

// Query pipeline metrics.
var (
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tourist_guide_queries_total",
			Help: "Queries answered, by terminal outcome",
		},
		[]string{"outcome"},
	)

	CollaboratorCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tourist_guide_collaborator_calls_total",
			Help: "Calls to geocoding, weather and places collaborators",
		},
		[]string{"collaborator", "status"},
	)

	CollaboratorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tourist_guide_collaborator_duration_seconds",
			Help:    "Latency of collaborator calls that reached the network",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		},
		[]string{"collaborator"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tourist_guide_cache_lookups_total",
			Help: "Collaborator cache lookups by cache name and result",
		},
		[]string{"cache", "result"},
	)
)

// Outcome labels shared by QueriesTotal and CollaboratorCalls.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	CacheHit      = "hit"
	CacheMiss     = "miss"
)
