package planner

// RunSink receives completed optimisation runs for recording. Implementations
// live in infra; the planner core only defines the contract.
type RunSink interface {
	RecordRun(res *Result) error
}

// NopSink discards every run.
type NopSink struct{}

// RecordRun implements RunSink.
func (NopSink) RecordRun(*Result) error { return nil }
