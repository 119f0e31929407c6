package metrics

// NopCollector is a Collector that records nothing.
type NopCollector struct{}

// NewNopCollector returns a Collector that ignores every call.
func NewNopCollector() Collector {
	return NopCollector{}
}

// RecordEmitted does nothing.
func (NopCollector) RecordEmitted(_ string) {}

// RecordFiltered does nothing.
func (NopCollector) RecordFiltered(_ string) {}

// RecordDropped does nothing.
func (NopCollector) RecordDropped(_, _ string) {}
