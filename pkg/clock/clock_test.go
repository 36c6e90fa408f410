package clock

import (
	"testing"
	"time"
)

func TestFake_Advance(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewFake(start)

	var order []string
	c.AfterFunc(2*time.Second, func() { order = append(order, "b") })
	c.AfterFunc(1*time.Second, func() { order = append(order, "a") })
	stopped := c.AfterFunc(1500*time.Millisecond, func() { order = append(order, "x") })

	if !stopped.Stop() {
		t.Fatal("expected Stop to cancel a live timer")
	}
	if stopped.Stop() {
		t.Error("second Stop should report false")
	}

	c.Advance(time.Second)
	if len(order) != 1 || order[0] != "a" {
		t.Fatalf("expected [a], got %v", order)
	}
	if got := c.Now(); !got.Equal(start.Add(time.Second)) {
		t.Errorf("unexpected now %v", got)
	}

	c.Advance(5 * time.Second)
	if len(order) != 2 || order[1] != "b" {
		t.Fatalf("expected [a b], got %v", order)
	}
	if c.Pending() != 0 {
		t.Errorf("expected no pending timers, got %d", c.Pending())
	}
}

func TestFake_NestedSchedule(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	fired := 0
	c.AfterFunc(time.Second, func() {
		fired++
		c.AfterFunc(time.Second, func() { fired++ })
	})

	c.Advance(3 * time.Second)
	if fired != 2 {
		t.Errorf("expected nested timer to fire within the window, fired=%d", fired)
	}
}
