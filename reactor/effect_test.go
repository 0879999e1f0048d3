package reactor

import "testing"

// TestEffectBatchCoalescing checks that multiple writes inside one Batch
// coalesce into a single effect run rather than one run per write.
func TestEffectBatchCoalescing(t *testing.T) {
	a := NewSource(1)
	b := NewSource(2)
	c := NewDerived(func() int { return a.Get() + b.Get() })

	runs := 0
	var last int
	dispose := CreateEffect(func() {
		runs++
		last = c.Get()
	})
	defer dispose()

	if runs != 1 || last != 3 {
		t.Fatalf("expected immediate run with c=3, got runs=%d last=%d", runs, last)
	}

	Batch(func() {
		a.Set(10)
		b.Set(20)
	})

	if runs != 2 {
		t.Errorf("expected exactly one more run from the batch, got %d total runs", runs)
	}
	if last != 30 {
		t.Errorf("expected c=30, got %d", last)
	}
}

func TestEffectDispose(t *testing.T) {
	a := NewSource(1)
	runs := 0

	dispose := CreateEffect(func() {
		runs++
		a.Get()
	})

	if runs != 1 {
		t.Fatalf("expected 1 run on creation, got %d", runs)
	}

	dispose()
	a.Set(2)

	if runs != 1 {
		t.Errorf("expected disposed effect not to re-run, got %d runs", runs)
	}
}

func TestEffectDisposeIsIdempotent(t *testing.T) {
	a := NewSource(1)
	dispose := CreateEffect(func() { a.Get() })

	dispose()
	dispose() // must not panic or double-unsubscribe
}

func TestEffectDynamicSourceSwitch(t *testing.T) {
	a := NewSource(true)
	b := NewSource(1)
	c := NewSource(2)
	runs := 0
	var last int

	dispose := CreateEffect(func() {
		runs++
		if a.Get() {
			last = b.Get()
		} else {
			last = c.Get()
		}
	})
	defer dispose()

	if runs != 1 || last != 1 {
		t.Fatalf("expected initial run reading b, got runs=%d last=%d", runs, last)
	}

	c.Set(99) // not yet a dependency
	if runs != 1 {
		t.Errorf("expected write to untracked branch to cause no run, got %d", runs)
	}

	a.Set(false) // switches branch to c
	if runs != 2 || last != 99 {
		t.Errorf("expected switch to re-run with last=99, got runs=%d last=%d", runs, last)
	}

	b.Set(1000) // b is no longer a dependency
	if runs != 2 {
		t.Errorf("expected write to abandoned branch to cause no run, got %d", runs)
	}
}

// TestEffectFeedbackLoopTripsCycleGuard checks that an effect writing a
// source it also reads eventually panics instead of looping forever.
func TestEffectFeedbackLoopTripsCycleGuard(t *testing.T) {
	a := NewSource(0)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected the feedback loop to trip the cycle guard")
		}
	}()

	dispose := CreateEffect(func() {
		a.Set(a.Get() + 1)
	})
	defer dispose()
}
