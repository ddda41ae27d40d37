// Copyright 2026 The Kitchen Authors
// SPDX-License-Identifier: Apache-2.0

// Package customer implements the driver that plays the customer/driver
// role at the kitchen's external boundary: it preloads order records,
// paces their submission onto a [kitchen.Handles].Orders sink, signals
// end-of-orders once exhausted, and drains the resulting delivery
// stream until it closes.
package customer

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/foodhall/kitchen/kitchen"
	"github.com/foodhall/kitchen/lib/clock"
)

// Outcome summarizes one driver run for logging and exit-code purposes.
type Outcome struct {
	Submitted int
	Delivered int
	Discarded int
	Missed    int
}

// reportPollInterval is how often Run polls handles.Report to keep the
// discarded/missed counts in Outcome current. Those counts never cross
// the delivery stream (only a successful pickup does), so they have to
// be observed this way rather than tallied from what Run reads off
// handles.Delivery. Mirrors cmd/kitchend's snapshotTracker.
const reportPollInterval = 100 * time.Millisecond

// Driver paces a preloaded batch of orders into a running kitchen and
// collects the resulting deliveries. The zero value is not usable;
// construct one with [New].
type Driver struct {
	clock  clock.Clock
	logger *slog.Logger
}

// New returns a Driver that paces submissions using clk and logs
// through logger.
func New(clk clock.Clock, logger *slog.Logger) *Driver {
	return &Driver{clock: clk, logger: logger}
}

// Run submits every order in orders to handles.Orders, waiting
// waitBetween between each submission, then signals end-of-orders and
// drains handles.Delivery until it closes, logging each delivery. Run
// returns once the delivery stream closes (graceful shutdown) or ctx
// is canceled. On cancellation Run signals handles.Stop instead of
// waiting further and returns ctx.Err().
func (d *Driver) Run(ctx context.Context, handles kitchen.Handles, orders []kitchen.Order, waitBetween time.Duration) (Outcome, error) {
	outcome := Outcome{}

	tally := newDiscardMissTally(d.clock, handles.Report)
	defer tally.stop()
	finalize := func(o Outcome) Outcome {
		o.Discarded, o.Missed = tally.counts()
		return o
	}

	for i, order := range orders {
		select {
		case <-ctx.Done():
			handles.Stop <- struct{}{}
			return finalize(outcome), ctx.Err()
		case handles.Orders <- order:
			outcome.Submitted++
			d.logger.Debug("customer: submitted order", "id", order.ID, "temp", order.Temp)
		}

		if i < len(orders)-1 && waitBetween > 0 {
			select {
			case <-ctx.Done():
				handles.Stop <- struct{}{}
				return finalize(outcome), ctx.Err()
			case <-d.clock.After(waitBetween):
			}
		}
	}

	select {
	case <-ctx.Done():
		handles.Stop <- struct{}{}
		return finalize(outcome), ctx.Err()
	case handles.EndOrders <- struct{}{}:
		d.logger.Info("customer: end of orders signaled", "submitted", outcome.Submitted)
	}

	for {
		select {
		case <-ctx.Done():
			handles.Stop <- struct{}{}
			return finalize(outcome), ctx.Err()
		case delivered, ok := <-handles.Delivery:
			if !ok {
				outcome = finalize(outcome)
				d.logger.Info("customer: delivery stream closed",
					"submitted", outcome.Submitted, "delivered", outcome.Delivered,
					"discarded", outcome.Discarded, "missed", outcome.Missed)
				return outcome, nil
			}
			outcome.Delivered++
			d.logger.Info("customer: order delivered", "id", delivered.ID, "temp", delivered.Temp)
		}
	}
}

// discardMissTally polls a kitchen's report stream to keep the most
// recently observed discarded/missed counts available for Outcome.
// Those counts never cross handles.Delivery, so they can't be tallied
// alongside Submitted/Delivered the way Run tracks those; polling and
// remembering the last answer is the same approach
// cmd/kitchend's snapshotTracker uses for --dump-report, for the same
// reason: once the machine's event loop exits, an in-flight report
// request sent just before that has no one left to answer it, so the
// last successfully observed value is kept instead of requested fresh.
type discardMissTally struct {
	discarded atomic.Int64
	missed    atomic.Int64
	stopCh    chan struct{}
}

func newDiscardMissTally(clk clock.Clock, report chan<- chan kitchen.Snapshot) *discardMissTally {
	t := &discardMissTally{stopCh: make(chan struct{})}
	go t.poll(clk, report)
	return t
}

func (t *discardMissTally) poll(clk clock.Clock, report chan<- chan kitchen.Snapshot) {
	for {
		select {
		case <-t.stopCh:
			return
		case <-clk.After(reportPollInterval):
			respond := make(chan kitchen.Snapshot, 1)
			// If the machine has already exited this send blocks
			// forever; the goroutine leaks rather than crashing the
			// tally, matching the courier shutdown leak this module
			// already tolerates (see DESIGN.md).
			report <- respond
			snapshot := <-respond
			t.discarded.Store(int64(snapshot.DiscardedCount))
			t.missed.Store(int64(snapshot.MissedCount))
		}
	}
}

func (t *discardMissTally) counts() (discarded, missed int) {
	return int(t.discarded.Load()), int(t.missed.Load())
}

func (t *discardMissTally) stop() { close(t.stopCh) }
