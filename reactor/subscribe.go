package reactor

// Readable is satisfied by both Source[T] and Derived[T]; Subscribe uses it
// to offer one convenience function for either.
type Readable[T comparable] interface {
	Get() T
}

// Subscribe installs an effect that calls fn with node's current value
// immediately, then again on every change, and returns a disposer that
// detaches it. It is equivalent to Source.Subscribe and Derived.Subscribe,
// generalized over either.
func Subscribe[T comparable](node Readable[T], fn func(T)) Disposer {
	return CreateEffect(func() {
		fn(node.Get())
	})
}
