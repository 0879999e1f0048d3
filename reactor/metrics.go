package reactor

// The engine itself stays silent about how it is observed — it never
// imports prometheus or otel directly. Instead it keeps a handful of plain
// counters that internal/introspect polls and re-exports through whatever
// instrumentation stack it likes.
var stats Stats

// Stats is a point-in-time snapshot of engine activity, returned by
// Snapshot. All fields are monotonically increasing counts since process
// start.
type Stats struct {
	Writes      uint64 // completed Source.Set calls that actually changed a value
	Recomputes  uint64 // Derived formula executions, successful or erroring
	EffectRuns  uint64 // Effect callback executions, successful or erroring
	DrainPasses uint64 // batch drain-loop iterations across all batches
}

// Snapshot returns the current counters. It is safe to call at any time,
// including from inside a formula or effect callback, since the engine is
// single-threaded and Snapshot never itself touches the graph.
func Snapshot() Stats { return stats }

func recordWrite()     { stats.Writes++ }
func recordRecompute() { stats.Recomputes++ }
func recordEffectRun() { stats.EffectRuns++ }
func recordDrainPass() { stats.DrainPasses++ }
