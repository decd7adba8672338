// Package events publishes lifecycle events for article and comment
// mutations to Kafka.
//
// # Overview
//
// Handlers call the Publisher after a mutation commits. Publishing is
// best-effort: a failed publish is logged and counted but never fails the
// HTTP request that triggered it.
//
// Two implementations are provided:
//
//   - KafkaPublisher writes events to a configured Kafka topic, keyed by
//     aggregate ID so events for one article or comment stay ordered.
//   - NopPublisher discards events and is wired in when publishing is
//     disabled in configuration.
package events
