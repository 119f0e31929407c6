// Package metrics counts what happens to log records: handed to a handler,
// filtered by a threshold, or dropped on the way.
//
// Implementations: PrometheusCollector (backed by its own prometheus.Registry)
// and NopCollector (the default).
package metrics

// Reasons a record can be dropped after passing the threshold filter.
const (
	ReasonFormat          = "format"
	ReasonNoHandler       = "no_handler"
	ReasonRender          = "render"
	ReasonUnknownSeverity = "unknown_severity"
	ReasonWrite           = "write"
	ReasonPanic           = "handler_panic"
)

// Collector records emission outcomes. Severity labels are the uppercase
// severity names (or decimal values for unknown severities).
type Collector interface {
	// RecordEmitted counts a record handed to the output handler.
	RecordEmitted(severity string)

	// RecordFiltered counts a record discarded by the threshold filter.
	RecordFiltered(severity string)

	// RecordDropped counts a record lost after admission, with one of the Reason constants.
	RecordDropped(severity, reason string)
}
