// Copyright 2026 The Kitchen Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the kitchen module's standard CBOR encoding
// configuration.
//
// The kitchen simulator uses JSON for its order source (see lib/orders)
// and CBOR for the one-shot snapshot it can optionally write on exit
// (--dump-report): a [kitchen.Snapshot] encoded with Core Deterministic
// Encoding (RFC 8949 §4.2) so the same observed state always produces
// identical bytes, suitable for diffing between runs. This is a
// write-once export for external inspection, not a mechanism for
// reloading or persisting kitchen state across runs (the Non-goal this
// module honors against cross-run persistence).
//
// Usage is stream-oriented, writing directly to a file or stdout:
//
//	encoder := codec.NewEncoder(w)
//	err := encoder.Encode(snapshot)
package codec
