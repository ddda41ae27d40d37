// Copyright 2026 The Kitchen Authors
// SPDX-License-Identifier: Apache-2.0

package kitchen

import (
	"log/slog"
	"time"

	"github.com/foodhall/kitchen/lib/clock"
	"github.com/foodhall/kitchen/lib/traceid"
)

// defaultPickupBuffer is used when no explicit pickup buffer size is
// configured. It must be at least the maximum number of couriers that
// can be in flight simultaneously, or courier sends could deadlock the
// machine's event loop. Sizing it to a few thousand covers any
// single-process simulation run this module is meant to drive.
const defaultPickupBuffer = 4096

// defaultDeliveryBuffer is used when no explicit delivery buffer size
// is configured. The delivery stream must never block the event loop,
// so it is sized generously rather than drained non-blockingly — a
// dropped delivery would violate the conservation property that every
// submitted order is eventually delivered, discarded, or missed.
const defaultDeliveryBuffer = 4096

// Handles is the external contract a customer/driver uses to talk to a
// running [Machine]. Orders is a sink, EndOrders and Stop are signals,
// Delivery is a source closed exactly once on graceful termination,
// and Report is used to request an observational [Snapshot] without
// mutating machine state.
type Handles struct {
	Orders    chan<- Order
	EndOrders chan<- struct{}
	Delivery  <-chan Order
	Stop      chan struct{}
	Report    chan<- chan Snapshot
}

// Snapshot is the payload emitted in response to a report request: the
// current pick-up area contents, the number of outstanding courier
// tickets, whether end-of-orders has been signaled, and the running
// totals of orders discarded to make room and pickups that missed.
type Snapshot struct {
	Shelves        map[ShelfKey]map[string]Order
	TicketCount    int
	OrdersEnded    bool
	DiscardedCount int
	MissedCount    int
	Timestamp      time.Time
}

// Option configures a Machine at construction time.
type Option func(*Machine)

// WithPickupBuffer overrides the internal pickup stream's buffer size.
func WithPickupBuffer(n int) Option {
	return func(m *Machine) { m.pickupBuffer = n }
}

// WithDeliveryBuffer overrides the delivery stream's buffer size.
func WithDeliveryBuffer(n int) Option {
	return func(m *Machine) { m.deliveryBuffer = n }
}

// WithScheduler overrides the courier scheduler. Tests use this to
// inject a Scheduler that records calls instead of sleeping.
func WithScheduler(s Scheduler) Option {
	return func(m *Machine) { m.scheduler = s }
}

// Machine is the kitchen state machine. It owns the pick-up area, the
// outstanding courier ticket set, and the orders-ended flag, and it is
// the only goroutine that ever touches any of them. Construct one with
// [New], start its loop with [Run] in its own goroutine, and interact
// with it only through the returned [Handles].
type Machine struct {
	logger *slog.Logger
	clock  clock.Clock

	area      *PickUpArea
	tickets   map[string]struct{}
	ordersEnd bool

	discardedCount int
	missedCount    int

	scheduler Scheduler

	orders    chan Order
	endOrders chan struct{}
	delivery  chan Order
	stop      chan struct{}
	report    chan chan Snapshot
	pickup    chan Order

	pickupBuffer   int
	deliveryBuffer int
}

// New builds a Machine with the given shelf capacities and courier
// wait bounds, and returns it along with the Handles external
// collaborators use to drive it. capacities must already satisfy
// [Capacities.Validate] — New panics on an invalid configuration
// because that is a ConfigInvalid failure that belongs at startup,
// before any Machine is constructed; callers should validate and
// surface the error themselves (see lib/config) rather than relying
// on this panic.
func New(capacities Capacities, courierMinWait, courierMaxWait time.Duration, clk clock.Clock, logger *slog.Logger, opts ...Option) (*Machine, Handles) {
	if err := capacities.Validate(); err != nil {
		panic(err)
	}
	if courierMinWait > courierMaxWait {
		panic(&ConfigError{Reason: "courier minimum wait exceeds maximum wait"})
	}

	m := &Machine{
		logger:         logger,
		clock:          clk,
		area:           NewPickUpArea(capacities),
		tickets:        make(map[string]struct{}),
		pickupBuffer:   defaultPickupBuffer,
		deliveryBuffer: defaultDeliveryBuffer,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.orders = make(chan Order)
	m.endOrders = make(chan struct{})
	m.delivery = make(chan Order, m.deliveryBuffer)
	m.stop = make(chan struct{})
	m.report = make(chan chan Snapshot)
	m.pickup = make(chan Order, m.pickupBuffer)

	if m.scheduler == nil {
		m.scheduler = NewCourierScheduler(clk, courierMinWait, courierMaxWait, m.pickup)
	}

	handles := Handles{
		Orders:    m.orders,
		EndOrders: m.endOrders,
		Delivery:  m.delivery,
		Stop:      m.stop,
		Report:    m.report,
	}
	return m, handles
}

// Run executes the event loop until either Stop is signaled (forced
// shutdown: Run returns immediately, delivery is left open) or
// quiescence is reached (graceful shutdown: end-of-orders has been
// signaled and every courier ticket has been consumed, delivery is
// closed). Run must be called from exactly one goroutine and blocks
// until one of those two conditions holds.
func (m *Machine) Run() {
	for {
		select {
		case <-m.stop:
			m.logger.Debug("kitchen: stop received, terminating without closing delivery")
			return

		case respond := <-m.report:
			respond <- m.snapshot()

		case order := <-m.orders:
			m.handleOrder(order)

		case order := <-m.pickup:
			m.handlePickup(order)
			if m.quiescent() {
				close(m.delivery)
				return
			}

		case <-m.endOrders:
			m.ordersEnd = true
			m.logger.Debug("kitchen: end-of-orders received", "outstanding_tickets", len(m.tickets))
			if m.quiescent() {
				close(m.delivery)
				return
			}
		}
	}
}

func (m *Machine) quiescent() bool {
	return m.ordersEnd && len(m.tickets) == 0
}

// handleOrder implements the orders-stream handler: cook, place,
// schedule, and record a ticket, atomically with respect to every
// other event the machine processes — no other event interleaves
// between these four effects, because they all run within a single
// select case.
func (m *Machine) handleOrder(order Order) {
	if order.ID == "" || !order.Temp.Valid() {
		m.logger.Warn("kitchen: rejecting malformed order at intake", "id", order.ID, "temp", order.Temp)
		return
	}

	order.Cooked = true
	result := Place(m.area, order)
	m.logPlacement(order, result)
	if result.Action == ActionDiscarded {
		m.discardedCount++
	}

	m.scheduler.Schedule(order)
	m.tickets[order.ID] = struct{}{}
}

// handlePickup implements the pickup-stream handler.
func (m *Machine) handlePickup(order Order) {
	result := Pickup(m.area, order)
	delete(m.tickets, order.ID)

	if result.PickupSuccessful {
		m.delivery <- result
		return
	}
	m.missedCount++
	m.logger.Debug("kitchen: pickup miss", "id", order.ID, "trace", traceid.For(order.ID))
}

func (m *Machine) snapshot() Snapshot {
	return Snapshot{
		Shelves:        m.area.Snapshot(),
		TicketCount:    len(m.tickets),
		OrdersEnded:    m.ordersEnd,
		DiscardedCount: m.discardedCount,
		MissedCount:    m.missedCount,
		Timestamp:      m.clock.Now(),
	}
}

func (m *Machine) logPlacement(order Order, result PlacementResult) {
	trace := traceid.For(order.ID)
	switch result.Action {
	case ActionMoved:
		m.logger.Info("kitchen: relocated overflow order to make room",
			"placed_id", order.ID, "placed_temp", order.Temp, "trace", trace,
			"moved_id", result.AffectedOrder.ID, "moved_to", shelfFor(result.AffectedOrder.Temp))
	case ActionDiscarded:
		if result.AffectedOrder.ID == order.ID {
			m.logger.Info("kitchen: rejected incoming order, overflow has no capacity to evict from",
				"id", order.ID, "temp", order.Temp, "trace", trace)
			return
		}
		m.logger.Info("kitchen: forced discard to make room",
			"placed_id", order.ID, "placed_temp", order.Temp, "trace", trace,
			"discarded_id", result.AffectedOrder.ID)
	default:
		m.logger.Debug("kitchen: placed order", "id", order.ID, "shelf", result.ShelfPlaced, "trace", trace)
	}
}
