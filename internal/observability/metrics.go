package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the news API service.
// Metrics are organized by subsystem: HTTP traffic, articles, comments,
// and event publishing. All counters and histograms are registered via
// promauto for automatic registration with the default Prometheus registry.
type Metrics struct {
	// HTTPRequestsTotal counts HTTP requests, labeled by method, route, and status code.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration observes HTTP request duration in seconds, labeled by method and route.
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInFlight gauges the number of HTTP requests currently being served.
	HTTPRequestsInFlight prometheus.Gauge

	// ArticlesCreated counts the total number of articles created.
	ArticlesCreated prometheus.Counter

	// ArticlesDeleted counts the total number of articles deleted.
	ArticlesDeleted prometheus.Counter

	// CommentsCreated counts the total number of comments created.
	CommentsCreated prometheus.Counter

	// CommentsDeleted counts the total number of comments deleted.
	CommentsDeleted prometheus.Counter

	// VotesApplied counts vote increment operations, labeled by resource ("article" or "comment").
	VotesApplied *prometheus.CounterVec

	// EventsPublished counts domain events published successfully, labeled by event type.
	EventsPublished *prometheus.CounterVec

	// EventsFailed counts domain events that failed to publish, labeled by event type.
	EventsFailed *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The namespace is used as a prefix for all metric names.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		// HTTP
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route"}),
		HTTPRequestsInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		}),

		// Articles
		ArticlesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_created_total",
			Help:      "Total number of articles created",
		}),
		ArticlesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_deleted_total",
			Help:      "Total number of articles deleted",
		}),

		// Comments
		CommentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_created_total",
			Help:      "Total number of comments created",
		}),
		CommentsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_deleted_total",
			Help:      "Total number of comments deleted",
		}),

		// Votes
		VotesApplied: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_applied_total",
			Help:      "Total number of vote updates by resource",
		}, []string{"resource"}),

		// Events
		EventsPublished: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Total number of domain events published by type",
		}, []string{"event_type"}),
		EventsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_failed_total",
			Help:      "Total number of domain events that failed to publish by type",
		}, []string{"event_type"}),
	}
}

// RecordHTTPRequest records a completed HTTP request.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, durationSeconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(durationSeconds)
}

// RecordArticleCreated records that an article has been created.
func (m *Metrics) RecordArticleCreated() {
	m.ArticlesCreated.Inc()
}

// RecordArticleDeleted records that an article has been deleted.
func (m *Metrics) RecordArticleDeleted() {
	m.ArticlesDeleted.Inc()
}

// RecordCommentCreated records that a comment has been created.
func (m *Metrics) RecordCommentCreated() {
	m.CommentsCreated.Inc()
}

// RecordCommentDeleted records that a comment has been deleted.
func (m *Metrics) RecordCommentDeleted() {
	m.CommentsDeleted.Inc()
}

// RecordVoteApplied records a vote update on a resource.
func (m *Metrics) RecordVoteApplied(resource string) {
	m.VotesApplied.WithLabelValues(resource).Inc()
}

// RecordEventPublished records a domain event published successfully.
func (m *Metrics) RecordEventPublished(eventType string) {
	m.EventsPublished.WithLabelValues(eventType).Inc()
}

// RecordEventFailed records a domain event that failed to publish.
func (m *Metrics) RecordEventFailed(eventType string) {
	m.EventsFailed.WithLabelValues(eventType).Inc()
}
