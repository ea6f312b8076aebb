// Package monitoring provides Prometheus metrics collection.
//
// Metrics cover HTTP traffic, tool executions, filesystem mutations,
// sessions, and WebSocket connections. The Middleware function plugs into
// Gin; the Timer helper wraps individual tool executions.
//
// Example Usage:
//
//	metrics := monitoring.NewMetrics()
//	router.Use(monitoring.Middleware(metrics))
//
//	timer := monitoring.NewTimer(metrics, "filesystem", "filesystem.copy")
//	result, err := registry.Execute(ctx, toolID, params, appCtx)
//	timer.Stop(statusLabel(result))
package monitoring
