package introspect

import (
	"encoding/binary"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/vango-dev/reactor/reactor"
)

// GraphSnapshot is the JSON body served at /debug/graph: every registered
// node plus a structural fingerprint over their (ID, version, hasError)
// triples, so a
// client can cheaply tell "nothing changed" from "something moved" between
// polls without diffing the whole node list.
type GraphSnapshot struct {
	Nodes       []reactor.NodeInfo `json:"nodes"`
	Fingerprint uint64             `json:"fingerprint"`
	Stats       reactor.Stats      `json:"stats"`
}

// Snapshot builds a GraphSnapshot from r's currently registered nodes and
// the engine's own write/recompute/drain counters.
func (r *Registry) Snapshot() GraphSnapshot {
	nodes := r.Nodes()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	return GraphSnapshot{
		Nodes:       nodes,
		Fingerprint: fingerprint(nodes),
		Stats:       reactor.Snapshot(),
	}
}

// fingerprint hashes each node's (ID, version, hasError) in ID order, so the
// same graph state always hashes the same way regardless of map iteration
// order.
func fingerprint(nodes []reactor.NodeInfo) uint64 {
	h := xxhash.New()
	var buf [17]byte
	for _, n := range nodes {
		binary.LittleEndian.PutUint64(buf[0:8], n.ID)
		binary.LittleEndian.PutUint64(buf[8:16], n.Version)
		if n.HasError {
			buf[16] = 1
		} else {
			buf[16] = 0
		}
		h.Write(buf[:])
	}
	return h.Sum64()
}
