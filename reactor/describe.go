package reactor

// NodeKind identifies which of the three node taxonomies a NodeInfo
// describes.
type NodeKind int

const (
	KindSource NodeKind = iota
	KindDerived
	KindEffect
)

func (k NodeKind) String() string {
	switch k {
	case KindSource:
		return "source"
	case KindDerived:
		return "derived"
	case KindEffect:
		return "effect"
	default:
		return "unknown"
	}
}

// NodeInfo is a read-only, type-erased snapshot of one node's identity and
// graph position. It exists solely for external introspection (see
// internal/introspect): nothing in the engine itself consults it.
type NodeInfo struct {
	ID        uint64
	Kind      NodeKind
	Version   uint64
	HasError  bool
	SourceIDs []uint64
}

func collectSourceIDs(head *edge) []uint64 {
	var ids []uint64
	for e := head; e != nil; e = e.nextDep {
		ids = append(ids, e.src.nodeID())
	}
	return ids
}

// Describe returns a snapshot of this source's identity. A Source has no
// upstream of its own.
func (s *Source[T]) Describe() NodeInfo {
	return NodeInfo{ID: s.node.id, Kind: KindSource, Version: s.node.version}
}

// Describe returns a snapshot of this derived's identity, including the IDs
// of whatever it currently reads.
func (d *Derived[T]) Describe() NodeInfo {
	return NodeInfo{
		ID:        d.node.id,
		Kind:      KindDerived,
		Version:   d.node.version,
		HasError:  d.node.fl.has(flagHasError),
		SourceIDs: collectSourceIDs(d.node.depsH),
	}
}

// Describe returns a snapshot of this effect's identity. An effect has no
// value or version of its own.
func (e *Effect) Describe() NodeInfo {
	return NodeInfo{ID: e.id, Kind: KindEffect, SourceIDs: collectSourceIDs(e.depsH)}
}
