package reactor

import "testing"

func TestPackageSubscribeWorksForSourceAndDerived(t *testing.T) {
	a := NewSource(1)
	doubled := NewDerived(func() int { return a.Get() * 2 })

	var fromSource, fromDerived int
	disposeA := Subscribe[int](a, func(v int) { fromSource = v })
	disposeD := Subscribe[int](doubled, func(v int) { fromDerived = v })
	defer disposeA()
	defer disposeD()

	a.Set(5)
	if fromSource != 5 {
		t.Errorf("expected source subscriber to observe 5, got %d", fromSource)
	}
	if fromDerived != 10 {
		t.Errorf("expected derived subscriber to observe 10, got %d", fromDerived)
	}
}

func TestWriteWithNoDependentsEnqueuesNoWork(t *testing.T) {
	a := NewSource(1)
	before := Snapshot()

	a.Set(2)
	a.Set(3)

	after := Snapshot()
	if after.EffectRuns != before.EffectRuns {
		t.Errorf("expected a source with no transitive effects to enqueue no work, effect runs went from %d to %d", before.EffectRuns, after.EffectRuns)
	}
	if after.Writes != before.Writes+2 {
		t.Errorf("expected 2 recorded writes, got delta %d", after.Writes-before.Writes)
	}
}
