package metrics

import "github.com/axelenergy/homeflex/core/planner"

// MultiSink fans runs out to multiple sinks.
type MultiSink struct {
	Sinks []planner.RunSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...planner.RunSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRun forwards the run to all sinks, returning the first error encountered.
func (m *MultiSink) RecordRun(res *planner.Result) error {
	for _, s := range m.Sinks {
		if err := s.RecordRun(res); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink that holds resources.
func (m *MultiSink) Close() {
	for _, s := range m.Sinks {
		if closer, ok := s.(interface{ Close() }); ok {
			closer.Close()
		}
	}
}
