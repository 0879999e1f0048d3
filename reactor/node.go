package reactor

// flags packs the boolean-like state of a derived or effect node into a
// single bitset. notify sets stale+notified together on a derived (notified
// alone on an effect) and reads notified to stop re-propagating within one
// wave; Derived.resolve clears notified first, then reads stale to decide
// whether the cached value can be returned without a source scan.
type flags uint8

const (
	flagStale           flags = 1 << iota // may need recomputation
	flagRunning                           // on the evaluation stack right now
	flagNotified                          // already marked/enqueued this wave
	flagHasError                          // cached state is a captured formula error
	flagShouldSubscribe                   // derived has >=1 subscriber, transitively
)

func (f flags) has(bit flags) bool { return f&bit != 0 }

// depNode is implemented by any node that can be depended upon: Source and
// Derived. It exposes only what the edge registry and the tracking
// machinery need, with the node's value type erased.
type depNode interface {
	nodeID() uint64
	depVersion() uint64

	subsHead() *edge
	subsTail() *edge
	setSubsHead(*edge)
	setSubsTail(*edge)

	// activeEdge/setActiveEdge model the node's "current edge for the
	// active evaluator" slot: the edge, if any, that the
	// currently-tracking consumer owns against this node.
	activeEdge() *edge
	setActiveEdge(*edge)

	// peekErased brings the node up to date and discards the result,
	// swallowing any formula error — used only by the source-version
	// short-circuit scan (derived.go, step 5) so a dependency that will
	// later throw still advances its version.
	peekErased()

	// onFirstSubscriber/onLastSubscriberGone implement the lazy upward
	// subscription: a Derived turns its own source edges on and off as its
	// own dependents list gains or loses its first/last entry. Source is a
	// no-op for both.
	onFirstSubscriber()
	onLastSubscriberGone()
}

// subNode is implemented by any node that can depend on other nodes:
// Derived and Effect.
type subNode interface {
	depsHead() *edge
	depsTail() *edge
	setDepsHead(*edge)
	setDepsTail(*edge)

	// notify is called by a source (or an upstream derived) when it may
	// have changed. It only marks; it never recomputes.
	notify()

	// wantsUpstreamSubscription reports whether edges created against this
	// consumer should be eagerly subscribed into their source's dependents
	// list. Effects always do; a Derived does only once it has its own
	// subscriber.
	wantsUpstreamSubscription() bool
}

// evalContext is the node, if any, currently running its formula/callback.
// Single global slot: the engine is not safe for concurrent use (see
// doc.go), so there is exactly one logical evaluation stack.
var evalContext subNode

func currentEvaluator() subNode { return evalContext }

// pushEvaluator installs sub as the active evaluator and returns a restore
// function that must run via defer, even on panic, to keep evalContext
// correct across nested and failing evaluations (a LIFO restore stack).
func pushEvaluator(sub subNode) (restore func()) {
	prev := evalContext
	evalContext = sub
	return func() { evalContext = prev }
}
