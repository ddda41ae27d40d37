// Copyright 2026 The Kitchen Authors
// SPDX-License-Identifier: Apache-2.0

package customer

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"testing"
	"time"

	"github.com/foodhall/kitchen/kitchen"
	"github.com/foodhall/kitchen/lib/clock"
	"github.com/foodhall/kitchen/lib/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCapacities() kitchen.Capacities {
	return kitchen.Capacities{
		kitchen.ShelfHot: 10, kitchen.ShelfCold: 10, kitchen.ShelfFrozen: 10, kitchen.ShelfOverflow: 15,
	}
}

func TestDriver_RunDeliversAllUnderCapacity(t *testing.T) {
	t.Parallel()
	clk := clock.Fake(time.Unix(0, 0))
	m, handles := kitchen.New(testCapacities(), 0, 0, clk, discardLogger())
	go m.Run()

	driver := New(clk, discardLogger())
	batch := []kitchen.Order{
		{ID: "1", Temp: kitchen.Hot},
		{ID: "2", Temp: kitchen.Cold},
		{ID: "3", Temp: kitchen.Frozen},
	}

	resultCh := make(chan Outcome, 1)
	errCh := make(chan error, 1)
	go func() {
		outcome, err := driver.Run(context.Background(), handles, batch, 0)
		resultCh <- outcome
		errCh <- err
	}()

	outcome := testutil.RequireReceive(t, resultCh, 2*time.Second, "waiting for driver run to complete")
	if err := <-errCh; err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcome.Submitted != 3 {
		t.Errorf("Submitted = %d, want 3", outcome.Submitted)
	}
	if outcome.Delivered != 3 {
		t.Errorf("Delivered = %d, want 3", outcome.Delivered)
	}
}

func TestDriver_RunRespectsContextCancellation(t *testing.T) {
	t.Parallel()
	clk := clock.Fake(time.Unix(0, 0))
	_, handles := kitchen.New(testCapacities(), time.Hour, time.Hour, clk, discardLogger())
	// Deliberately do not start the machine's Run loop: nothing ever
	// drains Orders or EndOrders, so a canceled context is the only
	// ready select case and Run's behavior is deterministic. Drain
	// Stop in the background so Run's cleanup send does not block.
	go func() { <-handles.Stop }()

	ctx, cancel := context.WithCancel(context.Background())
	driver := New(clk, discardLogger())
	batch := []kitchen.Order{{ID: "1", Temp: kitchen.Hot}}

	cancel()
	_, err := driver.Run(ctx, handles, batch, 0)
	if err == nil {
		t.Fatal("expected an error from a canceled context")
	}
}

// Discarded/missed counts never cross handles.Delivery, so
// discardMissTally has to observe them via handles.Report instead.
// This drives the tally directly against a report stream the test
// controls, rather than a real Machine, so the assertion doesn't race
// against the machine's own event loop.
func TestDiscardMissTally_PollsAndRemembersLastObserved(t *testing.T) {
	t.Parallel()
	clk := clock.Fake(time.Unix(0, 0))
	report := make(chan chan kitchen.Snapshot)

	tally := newDiscardMissTally(clk, report)
	defer tally.stop()

	clk.WaitForTimers(1)
	clk.Advance(reportPollInterval)

	respond := testutil.RequireReceive(t, report, time.Second, "waiting for tally's report request")
	respond <- kitchen.Snapshot{DiscardedCount: 3, MissedCount: 2}

	deadline := time.Now().Add(time.Second)
	for {
		if discarded, missed := tally.counts(); discarded == 3 && missed == 2 {
			return
		}
		if time.Now().After(deadline) {
			discarded, missed := tally.counts()
			t.Fatalf("tally never observed discarded=3 missed=2, got discarded=%d missed=%d", discarded, missed)
		}
		runtime.Gosched()
	}
}
