// Copyright 2026 The Kitchen Authors
// SPDX-License-Identifier: Apache-2.0

package kitchen

import "math/rand/v2"

// PlacementAction describes a secondary mutation [Place] performed to
// make room for the new order, beyond simply shelving it.
type PlacementAction int

const (
	// ActionNone means the order was placed directly; nothing else moved.
	ActionNone PlacementAction = iota
	// ActionMoved means an overflowed order was relocated to its own
	// shelf to make room.
	ActionMoved
	// ActionDiscarded means an overflowed order was dropped permanently
	// to make room.
	ActionDiscarded
)

func (a PlacementAction) String() string {
	switch a {
	case ActionMoved:
		return "moved"
	case ActionDiscarded:
		return "discarded"
	default:
		return "none"
	}
}

// PlacementResult reports where an order landed and what else happened
// as a side effect.
type PlacementResult struct {
	ShelfPlaced ShelfKey
	Action      PlacementAction
	// AffectedOrder is the order that was relocated or discarded. Nil
	// when Action is ActionNone.
	AffectedOrder *Order
}

// Place is the pick-up area's admission policy: own shelf, then
// overflow, then relocate an overflow order to free its own shelf,
// then forced discard. The only configuration that can leave order
// itself unplaced is an overflow shelf with zero capacity and nothing
// on it to evict instead — reported as an ActionDiscarded result whose
// AffectedOrder is order itself. Place mutates area in place and
// returns a description of what happened; there is no separate "apply
// the result" step because area is owned exclusively by the kitchen
// machine's single goroutine, so a plain mutable map is correct here
// (no immutable-data-structure library is needed).
//
// order.ID must not already be present anywhere in area — Place does
// not check this, since the kitchen machine only calls it for newly
// submitted orders.
func Place(area *PickUpArea, order Order) PlacementResult {
	ideal := area.shelf(shelfFor(order.Temp))
	if ideal.avail() > 0 {
		ideal.add(order)
		return PlacementResult{ShelfPlaced: shelfFor(order.Temp)}
	}

	overflow := area.shelf(ShelfOverflow)
	if overflow.avail() > 0 {
		overflow.add(order)
		return PlacementResult{ShelfPlaced: ShelfOverflow}
	}

	// Relocate-from-overflow: scan overflow in insertion order (oldest
	// insertion first) for some order whose own shelf now has room.
	for _, id := range overflow.ids {
		candidate := overflow.orders[id]
		target := area.shelf(shelfFor(candidate.Temp))
		if target.avail() > 0 {
			overflow.remove(id)
			target.add(candidate)
			overflow.add(order)
			moved := candidate
			return PlacementResult{
				ShelfPlaced:   ShelfOverflow,
				Action:        ActionMoved,
				AffectedOrder: &moved,
			}
		}
	}

	if len(overflow.ids) == 0 {
		// Overflow itself has no room for anything (e.g. a configuration
		// with overflow capacity 0) and holds nothing to relocate or
		// evict in order's place, so there is no victim to pick: the
		// incoming order is the one discarded.
		rejected := order
		return PlacementResult{
			Action:        ActionDiscarded,
			AffectedOrder: &rejected,
		}
	}

	// Forced discard: nothing can be relocated, so overflow is at
	// capacity with every member ineligible for its own shelf. Drop
	// one uniformly at random to admit order.
	victimIndex := rand.IntN(len(overflow.ids))
	victimID := overflow.ids[victimIndex]
	victim, _ := overflow.remove(victimID)
	overflow.add(order)
	return PlacementResult{
		ShelfPlaced:   ShelfOverflow,
		Action:        ActionDiscarded,
		AffectedOrder: &victim,
	}
}

// Pickup is the pick-up area's retrieval operation. It looks for
// order.ID first on order.Temp's own shelf, then on overflow, removing
// it and marking PickupSuccessful on a hit. On a miss it returns order
// unchanged (aside from PickupSuccessful being explicitly false) and
// leaves area untouched — Pickup never errors.
func Pickup(area *PickUpArea, order Order) Order {
	if found, ok := area.shelf(shelfFor(order.Temp)).remove(order.ID); ok {
		found.PickupSuccessful = true
		return found
	}
	if found, ok := area.shelf(ShelfOverflow).remove(order.ID); ok {
		found.PickupSuccessful = true
		return found
	}
	miss := order
	miss.PickupSuccessful = false
	return miss
}
