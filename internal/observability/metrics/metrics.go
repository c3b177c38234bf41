package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "candidatetrack_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "candidatetrack_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	funnelSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "candidatetrack_funnel_submissions_total",
		Help: "Count of funnel submissions by stage and result",
	}, []string{"stage", "result"})

	disqualifications = promauto.NewCounter(prometheus.CounterOpts{
		Name: "candidatetrack_disqualifications_total",
		Help: "Count of questionnaire disqualifications",
	})

	assessmentScores = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "candidatetrack_assessment_score_percentage",
		Help:    "Distribution of assessment score percentages",
		Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})

	fitCategories = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "candidatetrack_fit_categories_total",
		Help: "Count of completed assessments by fit category",
	}, []string{"category"})

	adminMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "candidatetrack_admin_mutations_total",
		Help: "Count of admin mutations by kind and result",
	}, []string{"kind", "result"})

	stateDivergence = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "candidatetrack_state_divergence",
		Help: "Candidates whose pipeline stage disagrees with their status, from the last reconcile pass",
	})

	exportRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "candidatetrack_export_rows_total",
		Help: "Count of candidate rows exported by format",
	}, []string{"format"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveSubmission counts a funnel submission by stage with a result label.
func ObserveSubmission(stage, result string) {
	funnelSubmissions.WithLabelValues(stage, result).Inc()
}

// ObserveDisqualification counts a questionnaire disqualification.
func ObserveDisqualification() {
	disqualifications.Inc()
}

// ObserveAssessment records a completed assessment's percentage and category.
func ObserveAssessment(percentage float64, category string) {
	assessmentScores.Observe(percentage)
	fitCategories.WithLabelValues(category).Inc()
}

// ObserveAdminMutation counts an admin mutation by kind and result.
func ObserveAdminMutation(kind, result string) {
	adminMutations.WithLabelValues(kind, result).Inc()
}

// SetStateDivergence publishes the reconcile worker's latest finding count.
func SetStateDivergence(count int) {
	if count < 0 {
		count = 0
	}
	stateDivergence.Set(float64(count))
}

// ObserveExport counts exported rows per format.
func ObserveExport(format string, rows int) {
	exportRows.WithLabelValues(format).Add(float64(rows))
}
