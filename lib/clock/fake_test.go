// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

func TestFakeNow(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c := Fake(start)

	if got := c.Now(); !got.Equal(start) {
		t.Errorf("Now = %v, want %v", got, start)
	}

	c.Advance(90 * time.Second)
	if got := c.Now(); !got.Equal(start.Add(90 * time.Second)) {
		t.Errorf("Now after Advance = %v, want %v", got, start.Add(90*time.Second))
	}
}

func TestFakeAfterFuncFiresInDeadlineOrder(t *testing.T) {
	c := Fake(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	var order []string
	c.AfterFunc(3*time.Minute, func() { order = append(order, "later") })
	c.AfterFunc(1*time.Minute, func() { order = append(order, "sooner") })

	c.Advance(2 * time.Minute)
	if len(order) != 1 || order[0] != "sooner" {
		t.Fatalf("after 2m, fired = %v, want [sooner]", order)
	}

	c.Advance(2 * time.Minute)
	if len(order) != 2 || order[1] != "later" {
		t.Fatalf("after 4m, fired = %v, want [sooner later]", order)
	}
	if c.PendingTimers() != 0 {
		t.Errorf("PendingTimers = %d, want 0", c.PendingTimers())
	}
}

func TestFakeAfterFuncImmediate(t *testing.T) {
	c := Fake(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	fired := false
	timer := c.AfterFunc(0, func() { fired = true })
	if !fired {
		t.Error("callback with d <= 0 should fire synchronously")
	}
	if timer.Stop() {
		t.Error("Stop on an already-fired timer should return false")
	}
}

func TestFakeStopPreventsFiring(t *testing.T) {
	c := Fake(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	fired := false
	timer := c.AfterFunc(time.Minute, func() { fired = true })

	if !timer.Stop() {
		t.Error("Stop on a pending timer should return true")
	}
	if timer.Stop() {
		t.Error("second Stop should return false")
	}

	c.Advance(5 * time.Minute)
	if fired {
		t.Error("stopped timer fired")
	}
}

func TestRealAfterFunc(t *testing.T) {
	c := Real()

	done := make(chan struct{})
	c.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for AfterFunc callback")
	}
}
