package reactor

import "testing"

func TestSourceBasic(t *testing.T) {
	count := NewSource(0)

	if v := count.Get(); v != 0 {
		t.Errorf("expected initial value 0, got %d", v)
	}

	count.Set(5)
	if v := count.Get(); v != 5 {
		t.Errorf("expected value 5, got %d", v)
	}

	count.Update(func(n int) int { return n * 2 })
	if v := count.Get(); v != 10 {
		t.Errorf("expected value 10, got %d", v)
	}
}

func TestSourceIdempotentWrite(t *testing.T) {
	before := globalVersion
	a := NewSource(1)

	a.Set(1) // equal to current value: no-op
	if globalVersion != before {
		t.Errorf("expected no globalVersion bump on equal write, before=%d after=%d", before, globalVersion)
	}

	a.Set(2) // differs: one bump
	if globalVersion != before+1 {
		t.Errorf("expected exactly one globalVersion bump, before=%d after=%d", before, globalVersion)
	}
}

func TestSourcePeekDoesNotTrack(t *testing.T) {
	a := NewSource(1)
	runs := 0

	dispose := CreateEffect(func() {
		runs++
		_ = a.Peek()
	})
	defer dispose()

	a.Set(2)
	if runs != 1 {
		t.Errorf("expected Peek inside effect to establish no edge, got %d runs after write", runs)
	}
}

func TestSourceSubscribe(t *testing.T) {
	a := NewSource(1)
	var seen []int

	dispose := a.Subscribe(func(v int) { seen = append(seen, v) })
	defer dispose()

	a.Set(2)
	a.Set(3)

	if len(seen) != 3 || seen[0] != 1 || seen[1] != 2 || seen[2] != 3 {
		t.Errorf("expected [1 2 3], got %v", seen)
	}
}
