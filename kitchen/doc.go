// Copyright 2026 The Kitchen Authors
// SPDX-License-Identifier: Apache-2.0

// Package kitchen implements the kitchen state machine: the single
// writer that owns the pick-up area, the in-flight courier ticket set,
// and the quiescence flag, and that serializes every transition through
// one event loop.
//
// [Machine] multiplexes five streams — orders, pickup, report, stop, and
// end-of-orders — and reacts to exactly one event per iteration. No other
// goroutine ever touches a Machine's pick-up area or ticket set directly;
// callers interact exclusively through the channels returned by [New] as
// a [Handles] value, matching the external contract external collaborators
// (a customer/driver) are expected to honor.
//
// The placement policy that decides where a cooked order lands — its
// own shelf, the overflow shelf, a relocated neighbor, or a forced
// discard — lives in [Place] and is a pure function of a [PickUpArea]
// and an [Order]; it performs no I/O and takes no lock, because only the
// Machine's own goroutine ever calls it.
package kitchen
