// Copyright 2026 The Kitchen Authors
// SPDX-License-Identifier: Apache-2.0

package kitchen

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/foodhall/kitchen/lib/clock"
)

// Scheduler dispatches a delayed pickup event for a cooked order.
// Implementations must not retain order after Schedule returns (the
// courier task owns only its own timer and a copy of the order).
type Scheduler interface {
	Schedule(order Order)
}

// CourierScheduler is the production Scheduler. Each Schedule call
// samples an independent wait and starts a short-lived task that sends
// order on pickup once the wait elapses. It does not cancel in-flight
// tasks on shutdown — a stop signal to the kitchen machine leaves any
// already-running courier tasks to fire and attempt their one send.
// That send lands in pickup's buffer while it has room (the Machine
// sizes it with defaultPickupBuffer) and is then never read; once the
// buffer is full, or on an unbuffered channel, it blocks forever. This
// is an accepted goroutine leak, not an oversight — see DESIGN.md.
type CourierScheduler struct {
	clock   clock.Clock
	minWait time.Duration
	maxWait time.Duration
	pickup  chan<- Order
}

// NewCourierScheduler builds a CourierScheduler that samples wait
// durations uniformly from [minWait, maxWait] and delivers pickup
// events on pickup. minWait must be <= maxWait.
func NewCourierScheduler(c clock.Clock, minWait, maxWait time.Duration, pickup chan<- Order) *CourierScheduler {
	return &CourierScheduler{clock: c, minWait: minWait, maxWait: maxWait, pickup: pickup}
}

// Schedule starts a task that waits a sampled duration, then sends
// order on the pickup stream. The task does not retain order beyond
// that single send.
func (s *CourierScheduler) Schedule(order Order) {
	wait := sampleWait(s.minWait, s.maxWait)
	go func() {
		<-s.clock.After(wait)
		s.pickup <- order
	}()
}

// sampleWait draws w = wait_min + round(U * (wait_max - wait_min)) for
// U uniform on [0,1]. Each call draws independently from the
// process-wide math/rand/v2 source, which is safe for concurrent use,
// so courier tasks never correlate with one another.
func sampleWait(minWait, maxWait time.Duration) time.Duration {
	if maxWait <= minWait {
		return minWait
	}
	span := float64(maxWait - minWait)
	return minWait + time.Duration(math.Round(rand.Float64()*span))
}
