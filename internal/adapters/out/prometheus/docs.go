// Package prometheus records transition request outcomes as Prometheus
// metrics. The collectors are registered on the registerer handed to
// NewTransitionMetrics so tests can use an isolated registry.
package prometheus
