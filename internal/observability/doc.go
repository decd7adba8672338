// Package observability provides logging and metrics support for the news
// API service.
//
// # Overview
//
// The observability package provides:
//
//   - Structured logging with zerolog
//   - Prometheus metrics for HTTP traffic, articles, comments, and events
//   - Context helpers for propagating the request ID
//
// # Logging
//
// Create a logger from configuration:
//
//	cfg := observability.LoggingConfig{
//	    Level:  "info",
//	    Format: "json",
//	    Output: "stdout",
//	}
//
//	logger := observability.NewLogger(cfg)
//	logger.Info().Str("request_id", reqID).Msg("request started")
//
// Add request context to logger:
//
//	logger = observability.WithRequestContext(logger, requestID, method, path)
//
// # Metrics
//
// Create metrics with a namespace and record operations:
//
//	metrics := observability.NewMetrics("news_api")
//	metrics.RecordHTTPRequest("GET", "/api/articles", 200, 0.05)
//	metrics.RecordArticleCreated()
//
// Metrics are registered with the default Prometheus registry and exposed
// via the /metrics endpoint on the metrics server.
package observability
