// Copyright 2026 The Kitchen Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the kitchen simulator's configuration.
//
// Configuration is loaded from a single file specified by either the
// KITCHEN_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery, and
// no automatic file search. This ensures deterministic, auditable
// configuration with no hidden overrides. A file that does not parse or
// fails validation is a ConfigInvalid failure ([kitchen.ConfigError]);
// an unset KITCHEN_CONFIG or an unreadable file is reported as a plain
// wrapped error. Both are fatal at startup.
//
// Key exports:
//
//   - [Config] -- orders source, timing parameters, shelf capacities
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on the kitchen package for [kitchen.Capacities]
// and [kitchen.ConfigError], and on no other kitchen-internal packages.
package config
