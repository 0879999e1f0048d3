package reactor

// idCounter is the source of unique IDs for all reactive primitives. The
// engine is single-threaded (see doc.go), so unlike a concurrency-safe
// counter this needs no atomic operations.
var idCounter uint64

// nextID returns the next unique ID for a reactive primitive. IDs are
// monotonically increasing and never reused; they carry no meaning to the
// engine itself and exist for diagnostics and the introspection package.
func nextID() uint64 {
	idCounter++
	return idCounter
}
