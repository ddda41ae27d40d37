// Copyright 2026 The Kitchen Authors
// SPDX-License-Identifier: Apache-2.0

package kitchen

import (
	"testing"
	"time"

	"github.com/foodhall/kitchen/lib/clock"
	"github.com/foodhall/kitchen/lib/testutil"
)

func TestSampleWait_WithinBounds(t *testing.T) {
	t.Parallel()
	minWait, maxWait := 2*time.Second, 6*time.Second
	for i := 0; i < 500; i++ {
		got := sampleWait(minWait, maxWait)
		if got < minWait || got > maxWait {
			t.Fatalf("sampleWait() = %v, want within [%v, %v]", got, minWait, maxWait)
		}
	}
}

func TestSampleWait_DegenerateRangeReturnsMin(t *testing.T) {
	t.Parallel()
	if got := sampleWait(3*time.Second, 3*time.Second); got != 3*time.Second {
		t.Fatalf("sampleWait(equal bounds) = %v, want 3s", got)
	}
	if got := sampleWait(5*time.Second, time.Second); got != 5*time.Second {
		t.Fatalf("sampleWait(max < min) = %v, want 5s (min)", got)
	}
}

func TestSampleWait_VariesAcrossCalls(t *testing.T) {
	t.Parallel()
	seen := map[time.Duration]bool{}
	for i := 0; i < 50; i++ {
		seen[sampleWait(0, time.Hour)] = true
		if len(seen) > 1 {
			return
		}
	}
	t.Fatal("sampleWait produced the same value 50 times in a row over a wide range")
}

func TestCourierScheduler_DeliversAfterSampledWait(t *testing.T) {
	t.Parallel()
	clk := clock.Fake(time.Unix(0, 0))
	pickup := make(chan Order, 1)
	sched := NewCourierScheduler(clk, time.Minute, time.Minute, pickup)

	sched.Schedule(order("o1", Hot))
	clk.WaitForTimers(1)
	clk.Advance(time.Minute)

	got := testutil.RequireReceive(t, pickup, time.Second, "waiting for courier to deliver to pickup")
	if got.ID != "o1" {
		t.Fatalf("got.ID = %q, want o1", got.ID)
	}
}

func TestCourierScheduler_DoesNotFireBeforeWaitElapses(t *testing.T) {
	t.Parallel()
	clk := clock.Fake(time.Unix(0, 0))
	pickup := make(chan Order, 1)
	sched := NewCourierScheduler(clk, time.Minute, time.Minute, pickup)

	sched.Schedule(order("o1", Hot))
	clk.WaitForTimers(1)
	clk.Advance(30 * time.Second)

	select {
	case got := <-pickup:
		t.Fatalf("unexpected early delivery: %+v", got)
	case <-time.After(20 * time.Millisecond):
		// Expected: half the wait has elapsed, nothing fired yet.
	}
}
