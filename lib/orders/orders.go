// Copyright 2026 The Kitchen Authors
// SPDX-License-Identifier: Apache-2.0

// Package orders loads the order records a customer/driver emitter
// replays into the kitchen, per the "orders-source" configuration key.
//
// Order source files are JSONC (JSON extended with // and /* */
// comments and trailing commas) holding a single top-level array of
// order records: {"id": "...", "temp": "hot"|"cold"|"frozen", ...}.
// Additional fields are preserved verbatim in [kitchen.Order].Extra.
//
// A source file may optionally be zstd- or lz4-compressed, indicated
// by a .zst or .lz4 suffix (applied after the base name, e.g.
// orders.jsonc.zst); ReadFile transparently decompresses by suffix.
package orders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/tidwall/jsonc"

	"github.com/foodhall/kitchen/kitchen"
)

// MalformedError reports an order record with a missing id or temp, or
// a temp outside {hot, cold, frozen}. The driver may skip such a
// record and continue.
type MalformedError struct {
	Index  int
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("order record %d: %s", e.Index, e.Reason)
}

// record mirrors the wire format of one order record, capturing
// unrecognized fields in Extra by decoding into a map[string]any and
// deleting the recognized keys.
type record struct {
	ID   string         `json:"id"`
	Temp string         `json:"temp"`
	Name string         `json:"name,omitempty"`
	rest map[string]any `json:"-"`
}

func (r *record) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if id, ok := raw["id"].(string); ok {
		r.ID = id
	}
	if temp, ok := raw["temp"].(string); ok {
		r.Temp = temp
	}
	if name, ok := raw["name"].(string); ok {
		r.Name = name
	}
	delete(raw, "id")
	delete(raw, "temp")
	delete(raw, "name")
	r.rest = raw
	return nil
}

// ReadFile reads and parses the order source at path, decompressing
// by .zst/.lz4 suffix first if present. Malformed records (missing id,
// missing/invalid temp) are reported individually in malformed rather
// than aborting the whole read, leaving skip-and-report handling to
// the caller.
func ReadFile(path string) (valid []kitchen.Order, malformed []*MalformedError, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening order source %s: %w", path, err)
	}
	defer file.Close()

	reader, err := decompressingReader(path, file)
	if err != nil {
		return nil, nil, fmt.Errorf("order source %s: %w", path, err)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("reading order source %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses JSONC bytes holding an array of order records.
func Parse(data []byte) (valid []kitchen.Order, malformed []*MalformedError, err error) {
	stripped := jsonc.ToJSON(data)

	var records []record
	if err := json.Unmarshal(stripped, &records); err != nil {
		return nil, nil, fmt.Errorf("parsing order records: %w", err)
	}

	for i, r := range records {
		temp := kitchen.Temperature(r.Temp)
		if r.ID == "" {
			malformed = append(malformed, &MalformedError{Index: i, Reason: "missing id"})
			continue
		}
		if !temp.Valid() {
			malformed = append(malformed, &MalformedError{Index: i, Reason: fmt.Sprintf("invalid temp %q", r.Temp)})
			continue
		}
		order := kitchen.Order{ID: r.ID, Temp: temp, Name: r.Name}
		if len(r.rest) > 0 {
			order.Extra = r.rest
		}
		valid = append(valid, order)
	}

	return valid, malformed, nil
}

// decompressingReader wraps file with a zstd or lz4 decompressing
// reader when path's suffix indicates compression, or returns file
// unchanged otherwise.
func decompressingReader(path string, file *os.File) (io.Reader, error) {
	switch {
	case strings.HasSuffix(path, ".zst"):
		decoder, err := zstd.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return decoder.IOReadCloser(), nil
	case strings.HasSuffix(path, ".lz4"):
		return lz4.NewReader(file), nil
	default:
		return file, nil
	}
}
