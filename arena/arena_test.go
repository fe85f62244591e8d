package arena

import (
	"errors"
	"testing"
)

func TestMonoAllocateAndAt(t *testing.T) {
	m := NewMono[int](4)
	p1, idx1, err := m.Emplace(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx1 != 0 || *p1 != 10 {
		t.Fatalf("got idx=%d val=%d, want idx=0 val=10", idx1, *p1)
	}
	p2, idx2, err := m.Emplace(20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx2 != 1 || *p2 != 20 {
		t.Fatalf("got idx=%d val=%d, want idx=1 val=20", idx2, *p2)
	}
	if got := *m.At(0); got != 10 {
		t.Fatalf("At(0) = %d, want 10", got)
	}
	if got := *m.At(1); got != 20 {
		t.Fatalf("At(1) = %d, want 20", got)
	}
}

func TestMonoExhaustion(t *testing.T) {
	m := NewMono[int](2)
	if _, _, err := m.Emplace(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := m.Emplace(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, _, err := m.Emplace(3)
	if err == nil {
		t.Fatalf("expected error on exhaustion, got none")
	}
	if !errors.Is(err, ErrArenaExhausted) {
		t.Errorf("err = %v, want errors.Is(err, ErrArenaExhausted)", err)
	}
}

func TestMonoReset(t *testing.T) {
	m := NewMono[int](4)
	m.Emplace(1)
	m.Emplace(2)
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
	m.Reset()
	if m.Len() != 0 {
		t.Fatalf("Len() after reset = %d, want 0", m.Len())
	}
	p, idx, err := m.Emplace(99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 0 || *p != 99 {
		t.Fatalf("got idx=%d val=%d, want idx=0 val=99", idx, *p)
	}
}

func TestChainedGrowsAcrossBlocks(t *testing.T) {
	c := NewChained[int](4)
	const n = 37
	for i := 0; i < n; i++ {
		c.Emplace(i)
	}
	if c.Len() != n {
		t.Fatalf("Len() = %d, want %d", c.Len(), n)
	}
	for i := 0; i < n; i++ {
		p := c.At(i)
		if p == nil || *p != i {
			t.Fatalf("At(%d) = %v, want %d", i, p, i)
		}
	}
}

func TestChainedPointerStability(t *testing.T) {
	c := NewChained[int](2)
	p1, _ := c.Emplace(1)
	p2, _ := c.Emplace(2)
	p3, _ := c.Emplace(3) // forces a new block
	if *p1 != 1 || *p2 != 2 || *p3 != 3 {
		t.Fatalf("pointers invalidated after growth: %d %d %d", *p1, *p2, *p3)
	}
}

func TestChainedReset(t *testing.T) {
	c := NewChained[int](2)
	for i := 0; i < 10; i++ {
		c.Emplace(i)
	}
	c.Reset()
	if c.Len() != 0 {
		t.Fatalf("Len() after reset = %d, want 0", c.Len())
	}
	p, idx := c.Emplace(42)
	if idx != 0 || *p != 42 {
		t.Fatalf("got idx=%d val=%d, want idx=0 val=42", idx, *p)
	}
}

func TestSizeForTiers(t *testing.T) {
	cases := []struct {
		n            int
		conservative bool
		want         int
	}{
		{100, false, tierSmallArena},
		{tierSmallInput, true, tierSmallArena},
		{tierSmallInput + 1, false, tierMediumArenaDefault},
		{tierSmallInput + 1, true, tierMediumArenaConserve},
		{tierMediumInput, false, tierMediumArenaDefault},
		{tierMediumInput + 1, false, tierLargeArenaMinDefault},
		{tierLargeArenaMinDefault * 2, false, tierLargeArenaMinDefault * 2},
	}
	for _, c := range cases {
		if got := SizeFor(c.n, c.conservative); got != c.want {
			t.Errorf("SizeFor(%d, %v) = %d, want %d", c.n, c.conservative, got, c.want)
		}
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 1023: 1024, 1024: 1024}
	for in, want := range cases {
		if got := NextPowerOfTwo(in); got != want {
			t.Errorf("NextPowerOfTwo(%d) = %d, want %d", in, got, want)
		}
	}
}
