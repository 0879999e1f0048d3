// Package reactor is a reactive value-propagation engine: a small runtime
// that tracks dependencies between computed values so that when a source
// changes, the derived values and effects that actually depend on it are
// re-run — each at most once per coherent update.
//
// # Core types
//
// Source[T] is a writable value cell:
//
//	count := reactor.NewSource(0)
//	value := count.Get()  // tracked read
//	count.Set(5)          // notifies dependents
//
// Derived[T] is a lazily recomputed value whose formula reads other nodes:
//
//	doubled := reactor.NewDerived(func() int { return count.Get() * 2 })
//	value := doubled.Get() // recomputes only if a transitive source changed
//
// Effect runs a side-effecting callback immediately, then again whenever a
// dependency it read changes:
//
//	dispose := reactor.CreateEffect(func() {
//		fmt.Println("count is", count.Get())
//	})
//	defer dispose()
//
// # Batching
//
//	reactor.Batch(func() {
//		a.Set(1)
//		b.Set(2)
//	})
//	// effects that depend on a or b run once, after the batch exits
//
// # Single-threaded
//
// The engine is not safe for concurrent use. It runs within one thread of
// control; "concurrency" here means interleaved logical evaluations, never
// parallel access to the graph. Callers that need to touch the graph from
// more than one goroutine must serialize access themselves.
package reactor
