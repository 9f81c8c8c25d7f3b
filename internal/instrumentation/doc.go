// Package instrumentation provides comprehensive OpenTelemetry instrumentation
// for the homecal server.
//
// This package enables production-grade observability through:
//   - OpenTelemetry metrics for HTTP requests, Google API calls, sync runs and store operations
//   - Distributed tracing for request flows and API calls
//   - Prometheus metrics export via /metrics endpoint on dedicated port
//   - OTLP export support for modern observability platforms
//
// # Metrics
//
// The package exposes the following metric categories:
//
// Server/HTTP Metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//
// Google API Metrics:
//   - google_api_operations_total: Counter of Google API operations by service, operation, status
//   - google_api_operation_duration_seconds: Histogram of Google API operation durations
//
// Sync Metrics:
//   - calendar_sync_runs_total: Counter of calendar sync runs by status
//   - calendar_sync_imported_events_total: Counter of events imported by sync
//   - calendar_sync_duration_seconds: Histogram of sync run durations
//
// Store Metrics:
//   - store_operations_total: Counter of event store operations by operation and status
//
// # Tracing
//
// Distributed tracing spans are created for:
//   - HTTP request handling
//   - Calendar sync runs (calendar.sync)
//   - Google API calls (google.<service>.<operation>)
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: homecal)
//
// # Example Usage
//
//	// Initialize instrumentation
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
//		ServiceName:    "homecal",
//		ServiceVersion: "0.1.0",
//		Enabled:        true,
//	})
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	// Get metrics recorder
//	recorder := provider.Metrics()
//
//	// Record an HTTP request
//	recorder.RecordHTTPRequest(ctx, "POST", "/api/events", 200, time.Since(start))
//
//	// Record a Google API operation
//	recorder.RecordGoogleAPIOperation(ctx, "calendar", "list", "success", time.Since(start))
//
//	// Record a sync run
//	recorder.RecordSyncRun(ctx, "success", "default", imported, time.Since(start))
package instrumentation
