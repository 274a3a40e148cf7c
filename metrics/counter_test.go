package metrics

import "testing"

func TestMatchCounterAccumulates(t *testing.T) {
	c, err := NewMatchCounter()
	if err != nil {
		t.Fatalf("NewMatchCounter: %v", err)
	}

	if err := c.Observe(3); err != nil {
		t.Fatalf("Observe(3): %v", err)
	}
	if err := c.Observe(5); err != nil {
		t.Fatalf("Observe(5): %v", err)
	}

	total, err := c.Reveal()
	if err != nil {
		t.Fatalf("Reveal: %v", err)
	}
	if total != 8 {
		t.Errorf("Reveal() = %d, want 8", total)
	}
}

func TestMatchCounterRejectsNegative(t *testing.T) {
	c, err := NewMatchCounter()
	if err != nil {
		t.Fatalf("NewMatchCounter: %v", err)
	}
	if err := c.Observe(-1); err == nil {
		t.Errorf("Observe(-1) must fail")
	}
}
