// Copyright 2026 The Kitchen Authors
// SPDX-License-Identifier: Apache-2.0

package kitchen

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/foodhall/kitchen/lib/clock"
	"github.com/foodhall/kitchen/lib/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMachine_GracefulShutdown(t *testing.T) {
	t.Parallel()
	clk := clock.Fake(time.Unix(0, 0))
	m, h := New(testCapacities(), time.Second, 2*time.Second, clk, discardLogger())
	go m.Run()

	testutil.RequireSend(t, h.Orders, order("o1", Hot), time.Second, "submitting order")
	clk.WaitForTimers(1)
	clk.Advance(2 * time.Second)

	delivered := testutil.RequireReceive(t, h.Delivery, time.Second, "waiting for delivery")
	if delivered.ID != "o1" {
		t.Fatalf("delivered.ID = %q, want o1", delivered.ID)
	}
	if !delivered.PickupSuccessful {
		t.Fatal("expected PickupSuccessful on a delivered order")
	}

	testutil.RequireSend(t, h.EndOrders, struct{}{}, time.Second, "signaling end of orders")
	testutil.RequireClosed(t, h.Delivery, time.Second, "delivery should close once quiescent")
}

func TestMachine_EndOrdersBeforeOutstandingTicketsDoesNotCloseEarly(t *testing.T) {
	t.Parallel()
	clk := clock.Fake(time.Unix(0, 0))
	m, h := New(testCapacities(), time.Second, time.Second, clk, discardLogger())
	go m.Run()

	testutil.RequireSend(t, h.Orders, order("o1", Hot), time.Second, "submitting order")
	clk.WaitForTimers(1)
	testutil.RequireSend(t, h.EndOrders, struct{}{}, time.Second, "signaling end of orders")

	select {
	case _, ok := <-h.Delivery:
		if !ok {
			t.Fatal("delivery closed before the outstanding courier ticket was resolved")
		}
	case <-time.After(50 * time.Millisecond):
		// Expected: nothing delivered yet, channel still open, because
		// the courier for o1 hasn't fired.
	}

	clk.Advance(time.Second)
	delivered := testutil.RequireReceive(t, h.Delivery, time.Second, "waiting for delivery")
	if delivered.ID != "o1" {
		t.Fatalf("delivered.ID = %q, want o1", delivered.ID)
	}
	testutil.RequireClosed(t, h.Delivery, time.Second, "delivery should close once the last ticket resolves")
}

func TestMachine_StopTerminatesWithoutClosingDelivery(t *testing.T) {
	t.Parallel()
	clk := clock.Fake(time.Unix(0, 0))
	m, h := New(testCapacities(), time.Second, time.Second, clk, discardLogger())
	done := make(chan struct{})
	go func() {
		m.Run()
		close(done)
	}()

	testutil.RequireSend(t, h.Stop, struct{}{}, time.Second, "signaling stop")
	testutil.RequireClosed(t, done, time.Second, "Run should return promptly after Stop")

	select {
	case _, ok := <-h.Delivery:
		if !ok {
			t.Fatal("forced stop must not close delivery")
		}
		t.Fatal("no delivery was expected")
	case <-time.After(20 * time.Millisecond):
		// Expected: Stop leaves delivery open rather than closing it.
	}
}

func TestMachine_ReportReflectsState(t *testing.T) {
	t.Parallel()
	clk := clock.Fake(time.Unix(0, 0))
	m, h := New(testCapacities(), time.Hour, time.Hour, clk, discardLogger())
	go m.Run()

	testutil.RequireSend(t, h.Orders, order("o1", Hot), time.Second, "submitting order")
	clk.WaitForTimers(1)

	respond := make(chan Snapshot)
	testutil.RequireSend(t, h.Report, respond, time.Second, "requesting report")
	snap := testutil.RequireReceive(t, respond, time.Second, "waiting for snapshot")

	if snap.TicketCount != 1 {
		t.Fatalf("TicketCount = %d, want 1", snap.TicketCount)
	}
	if snap.OrdersEnded {
		t.Fatal("OrdersEnded should be false before EndOrders is signaled")
	}
	if len(snap.Shelves[ShelfHot]) != 1 {
		t.Fatalf("ShelfHot occupants = %d, want 1", len(snap.Shelves[ShelfHot]))
	}

	testutil.RequireSend(t, h.Stop, struct{}{}, time.Second, "cleaning up")
}

func TestMachine_RejectsMalformedOrderAtIntake(t *testing.T) {
	t.Parallel()
	clk := clock.Fake(time.Unix(0, 0))
	m, h := New(testCapacities(), time.Second, time.Second, clk, discardLogger())
	go m.Run()

	testutil.RequireSend(t, h.Orders, order("", Hot), time.Second, "submitting order with empty ID")
	testutil.RequireSend(t, h.Orders, Order{ID: "bad-temp", Temp: "lukewarm"}, time.Second, "submitting order with invalid temp")

	// A malformed order should never acquire a courier ticket, so
	// end-of-orders should make the machine quiescent immediately.
	testutil.RequireSend(t, h.EndOrders, struct{}{}, time.Second, "signaling end of orders")
	testutil.RequireClosed(t, h.Delivery, time.Second, "delivery should close: no valid orders were ever admitted")
}

// recordingScheduler captures every order it is asked to schedule
// without actually sending anything to a pickup stream, so tests can
// assert on courier dispatch without depending on timing.
type recordingScheduler struct {
	scheduled []Order
}

func (r *recordingScheduler) Schedule(order Order) {
	r.scheduled = append(r.scheduled, order)
}

func TestMachine_SchedulesEveryAdmittedOrder(t *testing.T) {
	t.Parallel()
	clk := clock.Fake(time.Unix(0, 0))
	rec := &recordingScheduler{}
	m, h := New(testCapacities(), time.Second, time.Second, clk, discardLogger(), WithScheduler(rec))
	go m.Run()

	testutil.RequireSend(t, h.Orders, order("o1", Hot), time.Second, "submitting order")
	testutil.RequireSend(t, h.Stop, struct{}{}, time.Second, "stopping")

	if len(rec.scheduled) != 1 || rec.scheduled[0].ID != "o1" {
		t.Fatalf("scheduled = %+v, want exactly [o1]", rec.scheduled)
	}
}

func TestNew_PanicsOnInvalidCapacities(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Fatal("expected New to panic on invalid capacities")
		}
	}()
	New(Capacities{ShelfHot: 1}, time.Second, time.Second, clock.Fake(time.Unix(0, 0)), discardLogger())
}

func TestNew_PanicsWhenMinWaitExceedsMaxWait(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Fatal("expected New to panic when courierMinWait > courierMaxWait")
		}
	}()
	New(testCapacities(), 2*time.Second, time.Second, clock.Fake(time.Unix(0, 0)), discardLogger())
}
