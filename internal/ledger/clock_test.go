package ledger

import "testing"

func TestSystemClock_NonDecreasing(t *testing.T) {
	clock := NewSystemClock()

	prev := clock.Now()
	for i := 0; i < 1000; i++ {
		now := clock.Now()
		if now < prev {
			t.Fatalf("clock went backwards: %d after %d", now, prev)
		}
		prev = now
	}
}

func TestClockFunc(t *testing.T) {
	clock := ClockFunc(func() int64 { return 42 })
	if clock.Now() != 42 {
		t.Errorf("ClockFunc.Now() = %d, want 42", clock.Now())
	}
}
