package engine

import "testing"

func TestMemoryQueueFIFO(t *testing.T) {
	t.Parallel()
	q := newMemoryQueue(3)

	if _, ok := q.recall(); ok {
		t.Error("recall() on an empty queue reported ok")
	}

	q.push("first")
	q.push("second")

	got, ok := q.recall()
	if !ok || got != "first" {
		t.Errorf("recall() = %q, %v, want \"first\", true", got, ok)
	}
	got, ok = q.recall()
	if !ok || got != "second" {
		t.Errorf("recall() = %q, %v, want \"second\", true", got, ok)
	}
	if _, ok = q.recall(); ok {
		t.Error("recall() after draining reported ok")
	}
}

func TestMemoryQueueEviction(t *testing.T) {
	t.Parallel()
	q := newMemoryQueue(2)

	q.push("one")
	q.push("two")
	q.push("three")

	if q.len() != 2 {
		t.Fatalf("len() = %d, want 2", q.len())
	}
	if got, _ := q.recall(); got != "two" {
		t.Errorf("recall() = %q, want the oldest surviving entry \"two\"", got)
	}
}

func TestMemoryQueueIgnoresBlank(t *testing.T) {
	t.Parallel()
	q := newMemoryQueue(2)

	q.push("")
	q.push("   ")
	if q.len() != 0 {
		t.Errorf("len() = %d after blank pushes, want 0", q.len())
	}
}
