package reactor

import "testing"

func TestBatchFlattensNesting(t *testing.T) {
	a := NewSource(0)
	runs := 0

	dispose := a.Subscribe(func(int) { runs++ })
	defer dispose()
	runs = 0 // discard the subscribe-time run

	Batch(func() {
		Batch(func() {
			a.Set(1)
		})
		a.Set(2)
	})

	if runs != 1 {
		t.Errorf("expected nested batches to flatten into a single drain, got %d runs", runs)
	}
}

func TestBatchFuncReturnsValue(t *testing.T) {
	a := NewSource(1)
	result := BatchFunc(func() int {
		a.Set(5)
		return a.Peek() * 2
	})
	if result != 10 {
		t.Errorf("expected 10, got %d", result)
	}
}

func TestUntrackedReadEstablishesNoEdge(t *testing.T) {
	a := NewSource(1)
	runs := 0

	dispose := CreateEffect(func() {
		runs++
		Untracked(func() {
			a.Get()
		})
	})
	defer dispose()

	a.Set(2)
	if runs != 1 {
		t.Errorf("expected untracked read to establish no dependency, got %d runs", runs)
	}
}

func TestCycleGuardLimitIsTunable(t *testing.T) {
	prev := CycleGuardLimit
	defer func() { CycleGuardLimit = prev }()

	CycleGuardLimit = 3
	a := NewSource(0)
	tripped := false
	runs := 0

	func() {
		defer func() {
			if recover() != nil {
				tripped = true
			}
		}()
		dispose := CreateEffect(func() {
			runs++
			a.Set(a.Get() + 1)
		})
		defer dispose()
	}()

	if !tripped {
		t.Error("expected a lowered CycleGuardLimit to trip the guard sooner")
	}
	// The creation run plus CycleGuardLimit+1 drain passes, the last of
	// which has its write rejected by the guard.
	if runs != CycleGuardLimit+2 {
		t.Errorf("expected the lowered limit to stop the loop after %d runs, got %d", CycleGuardLimit+2, runs)
	}
}
