// Package introspect provides an optional, out-of-process view onto a
// reactor graph: a dev HTTP server exposing Prometheus metrics, a JSON
// snapshot of registered nodes, and a websocket feed that pushes that
// snapshot periodically.
//
// The reactor engine itself never imports this package and exposes no
// telemetry of its own beyond reactor.Snapshot()'s plain counters; anything
// shown here about individual nodes depends on the application explicitly
// registering them.
package introspect

import (
	"sync"

	"github.com/vango-dev/reactor/reactor"
)

// Node is anything a Registry can describe: reactor.Source[T],
// reactor.Derived[T], and reactor.Effect all satisfy it.
type Node interface {
	Describe() reactor.NodeInfo
}

// Registry is a caller-maintained set of nodes to expose for introspection.
// Registering is opt-in and explicit: nothing in this package walks the
// graph on its own.
type Registry struct {
	mu    sync.Mutex
	nodes map[uint64]Node
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{nodes: make(map[uint64]Node)}
}

// Register adds n to the registry, keyed by its node ID. Registering the
// same ID again replaces the previous entry.
func (r *Registry) Register(n Node) {
	id := n.Describe().ID
	r.mu.Lock()
	r.nodes[id] = n
	r.mu.Unlock()
}

// Unregister removes the node with the given ID, if present.
func (r *Registry) Unregister(id uint64) {
	r.mu.Lock()
	delete(r.nodes, id)
	r.mu.Unlock()
}

// Len reports how many nodes are currently registered.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.nodes)
}

// Nodes returns a snapshot slice of every registered node's NodeInfo. The
// order is unspecified.
func (r *Registry) Nodes() []reactor.NodeInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]reactor.NodeInfo, 0, len(r.nodes))
	for _, n := range r.nodes {
		out = append(out, n.Describe())
	}
	return out
}
