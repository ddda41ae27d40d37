// Copyright 2026 The Kitchen Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for the kitchen module.
//
// [RequireReceive], [RequireSend], and [RequireClosed] encapsulate the
// timeout safety valve pattern (select with time.After fallback) so
// that individual tests do not need direct time.After calls when
// exercising channel-heavy code such as [kitchen.Machine]. Tests that
// check that nothing arrives within a short window still use
// time.After directly.
//
// [UniqueID] generates monotonically increasing identifiers for test
// disambiguation. Use it instead of time.Now() when tests need unique
// order IDs that must be distinguishable within a single run.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no kitchen-internal dependencies.
package testutil
