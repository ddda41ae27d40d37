// Copyright 2026 The Kitchen Authors
// SPDX-License-Identifier: Apache-2.0

package orders

import (
	"testing"

	"github.com/foodhall/kitchen/kitchen"
)

func TestParse_ValidRecords(t *testing.T) {
	t.Parallel()
	data := []byte(`[
		{"id": "1", "temp": "hot", "name": "Banana Split"},
		{"id": "2", "temp": "cold"},
	]`) // trailing comma exercises JSONC leniency

	valid, malformed, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(malformed) != 0 {
		t.Fatalf("malformed = %+v, want none", malformed)
	}
	if len(valid) != 2 {
		t.Fatalf("len(valid) = %d, want 2", len(valid))
	}
	if valid[0].ID != "1" || valid[0].Temp != kitchen.Hot || valid[0].Name != "Banana Split" {
		t.Errorf("valid[0] = %+v", valid[0])
	}
}

func TestParse_SkipsMalformedRecords(t *testing.T) {
	t.Parallel()
	data := []byte(`[
		{"id": "", "temp": "hot"},
		{"id": "2", "temp": "lukewarm"},
		{"id": "3", "temp": "cold"}
	]`)

	valid, malformed, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(valid) != 1 || valid[0].ID != "3" {
		t.Fatalf("valid = %+v, want exactly order 3", valid)
	}
	if len(malformed) != 2 {
		t.Fatalf("len(malformed) = %d, want 2", len(malformed))
	}
}

func TestParse_PreservesExtraAttributes(t *testing.T) {
	t.Parallel()
	data := []byte(`[{"id": "1", "temp": "hot", "prepTimeSeconds": 30}]`)

	valid, _, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(valid) != 1 {
		t.Fatalf("len(valid) = %d, want 1", len(valid))
	}
	if got, ok := valid[0].Extra["prepTimeSeconds"]; !ok || got != float64(30) {
		t.Errorf("Extra[prepTimeSeconds] = %v, ok=%v, want 30", got, ok)
	}
}

func TestParse_CommentsAllowed(t *testing.T) {
	t.Parallel()
	data := []byte(`[
		// a single hot order
		{"id": "1", "temp": "hot"}
	]`)

	valid, malformed, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(valid) != 1 || len(malformed) != 0 {
		t.Fatalf("valid=%+v malformed=%+v", valid, malformed)
	}
}
