// Package observability provides observability infrastructure for the
// application: structured logging, Prometheus metrics, and OpenTelemetry
// tracing.
//
// Subpackages:
//   - logging: structured logging utilities with slog
//   - metrics: Prometheus metrics for feed operations
//   - tracing: OpenTelemetry tracing middleware
//
// Example usage:
//
//	import (
//	    "newsbrief/internal/observability/logging"
//	    "newsbrief/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.RecordIngested("seed", 5)
//	}
package observability
