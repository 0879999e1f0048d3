package reactor

import "testing"

// runEffect builds and runs an Effect directly (bypassing the CreateEffect
// wrapper) so in-package tests can inspect its sources list afterward.
func runEffect(fn func()) *Effect {
	e := &Effect{id: nextID(), fn: fn}
	enterBatch()
	e.run()
	leaveBatch()
	return e
}

// TestSourcesListMostRecentFirst checks that after a completed evaluation,
// a subscriber's sources list is most-recently-observed-first, so its head
// is the last dependency actually read.
func TestSourcesListMostRecentFirst(t *testing.T) {
	a := NewSource(1)
	b := NewSource(2)
	c := NewSource(3)

	e := runEffect(func() {
		a.Get()
		b.Get()
		c.Get()
	})
	defer e.dispose()

	head := e.depsHead()
	if head == nil {
		t.Fatal("expected at least one source edge")
	}
	if head.src != &c.node {
		t.Error("expected head edge to be the most recently read source (c)")
	}

	tail := e.depsTail()
	if tail == nil || tail.src != &a.node {
		t.Error("expected tail edge to be the first-read source (a)")
	}
}

func TestNoDuplicateSourceEdgesOnRepeatedRead(t *testing.T) {
	a := NewSource(1)

	e := runEffect(func() {
		a.Get()
		a.Get()
		a.Get()
	})
	defer e.dispose()

	edges := 0
	for edge := e.depsHead(); edge != nil; edge = edge.nextDep {
		edges++
	}
	if edges != 1 {
		t.Errorf("expected exactly one edge despite three reads, got %d", edges)
	}
}

func TestUnusedEdgeDroppedOnCleanup(t *testing.T) {
	cond := NewSource(true)
	a := NewSource(1)
	b := NewSource(2)

	e := runEffect(func() {
		if cond.Get() {
			a.Get()
		} else {
			b.Get()
		}
	})
	defer e.dispose()

	cond.Set(false)

	edges := 0
	for edge := e.depsHead(); edge != nil; edge = edge.nextDep {
		edges++
		if edge.src == &a.node {
			t.Error("expected edge to abandoned source a to be dropped")
		}
	}
	if edges != 2 {
		t.Errorf("expected edges to cond and b only, got %d", edges)
	}
}

func TestEdgeSubscribedOnlyWhenTargetWantsIt(t *testing.T) {
	a := NewSource(1)
	doubled := NewDerived(func() int { return a.Get() * 2 })

	// Nobody subscribes to doubled yet: reading it pulls but must not
	// subscribe its edge to a.
	doubled.Get()
	if a.node.head != nil {
		t.Error("expected unobserved derived's source edge to stay unsubscribed")
	}

	e := runEffect(func() { doubled.Get() })
	defer e.dispose()

	if a.node.head == nil {
		t.Error("expected derived to subscribe its source edge once it gained a subscriber")
	}
}
