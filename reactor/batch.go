package reactor

// globalVersion increases on every successful Source.Set across the whole
// engine. It backs the "global quiescence" fast path in Derived.resolve:
// if nothing anywhere has changed since a derived last verified itself
// fresh, it can skip even the per-source scan.
var globalVersion uint64

// batchDepth counts nested Batch calls (and the implicit batch a bare write
// outside of one opens around itself). Effects only drain when it returns
// to zero.
var batchDepth int

// batchIteration counts drain passes within the current outermost batch. It
// resets to zero when the outermost drain loop in leaveBatch finishes (not
// when an effect's own batch closes mid-drain). CycleGuardLimit bounds
// it; see guardAgainstRunawayBatch.
var batchIteration int

// draining is true for the whole duration of leaveBatch's drain loop below,
// including while it is running effect callbacks that themselves perform
// writes. A write's own enterBatch/leaveBatch pair can bring batchDepth back
// to zero while draining is already true — that must not start a second,
// nested drain loop: it would recurse one Go call frame per propagation
// step (risking a stack overflow for a legitimately large CycleGuardLimit)
// and its deferred reset of batchIteration/pendingEffects would wipe the
// outer loop's cycle-guard count out from under it. Instead, leaveBatch
// just returns, and the effects the write enqueued sit in pendingEffects for
// the already-running loop's next iteration to pick up.
var draining bool

// CycleGuardLimit is the number of effect-drain passes a single batch may
// run before the engine assumes an effect-write-effect cycle and panics
// with a CycleError, rather than looping forever. This is a
// heuristic safety net, not a correctness bound: a legitimate, terminating
// chain of effect-driven writes longer than this will be rejected. It is a
// package variable, not a constant, so callers with unusually deep but
// legitimate propagation chains can raise it.
var CycleGuardLimit = 100

// pendingEffects is the LIFO queue of effects notified during the current
// batch, linked through each Effect's own queueNext field. Draining pops
// from the head, so effects run most-recently-notified first, matching how
// the edge lists already favor recency.
var pendingEffects *Effect

func enqueueEffect(e *Effect) {
	e.queueNext = pendingEffects
	pendingEffects = e
}

// Disposer detaches an effect so it no longer runs and no longer holds
// edges to its former sources.
type Disposer func()

// Batch defers effect execution until fn returns, coalescing any number of
// writes inside fn into a single drain pass per level of cycle.
// Batches nest: only the outermost call actually drains.
func Batch(fn func()) {
	enterBatch()
	defer leaveBatch()
	fn()
}

// BatchFunc is Batch for a thunk that returns a value, so callers can both
// batch their writes and get a result back in one expression.
func BatchFunc[R any](fn func() R) R {
	enterBatch()
	defer leaveBatch()
	return fn()
}

// runInImplicitBatch wraps a bare write's dependent-notification fan-out in
// a single-shot batch of its own, so that a write made outside any explicit
// Batch call still only drains effects once rather than re-entrantly during
// notification.
func runInImplicitBatch(fn func()) {
	enterBatch()
	defer leaveBatch()
	fn()
}

func enterBatch() {
	batchDepth++
}

// leaveBatch closes one level of batch nesting. When it's the outermost
// level and no drain is already in progress further down the call stack, it
// drains the pending-effect queue, re-running effects (and whatever further
// writes and notifications they trigger) until no more effects are pending,
// then propagates the first error captured across the whole drain, if any.
// Each effect run (see Effect.run) opens and closes its own batch; when that
// happens from inside this loop, its matching leaveBatch call sees draining
// already true and returns immediately instead of starting a nested drain —
// see the draining doc comment. The reset of batchIteration, pendingEffects,
// and draining runs in a defer so it happens even when
// guardAgainstRunawayBatch panics: a cycle-detected panic must not leave the
// next, unrelated batch to inherit a tripped iteration count or a
// half-drained effect queue.
func leaveBatch() {
	batchDepth--
	if batchDepth > 0 {
		return
	}
	if draining {
		return
	}

	draining = true
	defer func() {
		abandoned := pendingEffects
		pendingEffects = nil
		batchIteration = 0
		draining = false
		for e := abandoned; e != nil; e = e.queueNext {
			e.fl &^= flagNotified
		}
	}()

	var firstErr error
	for pendingEffects != nil {
		guardAgainstRunawayBatch()
		batchIteration++

		queue := pendingEffects
		pendingEffects = nil

		for e := queue; e != nil; {
			// Read the link before running: an effect that notifies itself
			// during its run is re-enqueued, which overwrites queueNext.
			next := e.queueNext
			if err := e.run(); err != nil && firstErr == nil {
				firstErr = err
			}
			e = next
		}
		recordDrainPass()
	}

	if firstErr != nil {
		panic(firstErr)
	}
}

// guardAgainstRunawayBatch panics with a CycleError once the current
// batch's drain pass count exceeds CycleGuardLimit, which is the only
// defense against an effect that writes a source it (transitively) also
// reads.
func guardAgainstRunawayBatch() {
	if batchIteration > CycleGuardLimit {
		panic(&CycleError{Node: "batch exceeded drain-pass limit"})
	}
}

// Untracked runs fn with no active evaluator installed, so any reads it
// performs do not become dependencies of whatever derived or effect is
// currently recomputing.
func Untracked(fn func()) {
	restore := pushEvaluator(nil)
	defer restore()
	fn()
}

// UntrackedFunc is Untracked for a thunk that returns a value.
func UntrackedFunc[R any](fn func() R) R {
	restore := pushEvaluator(nil)
	defer restore()
	return fn()
}
