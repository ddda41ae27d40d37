// Copyright 2026 The Kitchen Authors
// SPDX-License-Identifier: Apache-2.0

// Package traceid computes short, deterministic correlation IDs for
// log lines that follow a single order through the kitchen.
//
// An order's own ID is caller-supplied free text from the order record
// and may not be safe or convenient to use directly as a log field or
// to compare across runs that reuse IDs. [For] derives
// a fixed-width identifier from it instead, domain-separated by keyed
// BLAKE3 hashing so the same ID string never collides with a hash
// computed for an unrelated purpose elsewhere in the process.
package traceid

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// orderDomainKey is the 32-byte key used for all order trace IDs. Domain
// separation ensures an order ID's trace hash can never collide with
// a BLAKE3 hash computed for a different purpose, even on identical
// input bytes.
var orderDomainKey = [32]byte{
	'k', 'i', 't', 'c', 'h', 'e', 'n', '.', 't', 'r', 'a', 'c', 'e', 'i', 'd', '.',
	'o', 'r', 'd', 'e', 'r', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// length is the number of hex characters a trace ID carries: 4 bytes
// of BLAKE3 output, wide enough to make collisions between distinct
// order IDs in a single run practically impossible without wasting
// log line width.
const length = 8

// For returns an 8-character hex trace ID derived from orderID. It is
// a pure function of orderID: the same order ID always yields the
// same trace ID within and across process runs, but two different
// order ID strings yield unrelated trace IDs with overwhelming
// probability.
func For(orderID string) string {
	hasher, err := blake3.NewKeyed(orderDomainKey[:])
	if err != nil {
		panic("traceid: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write([]byte(orderID))
	sum := hasher.Sum(nil)
	return hex.EncodeToString(sum[:length/2])
}
