// Copyright 2026 The Kitchen Authors
// SPDX-License-Identifier: Apache-2.0

package kitchentui

import "testing"

func TestFuzzyMatcher_ExactSubstring(t *testing.T) {
	m := newFuzzyMatcher()
	matched, score := m.match("order-42", "42")
	if !matched {
		t.Fatal("expected a match")
	}
	if score <= 0 {
		t.Errorf("score = %d, want > 0", score)
	}
}

func TestFuzzyMatcher_NonContiguous(t *testing.T) {
	m := newFuzzyMatcher()
	matched, _ := m.match("order-42", "o42")
	if !matched {
		t.Fatal("expected a non-contiguous fuzzy match")
	}
}

func TestFuzzyMatcher_NoMatch(t *testing.T) {
	m := newFuzzyMatcher()
	matched, score := m.match("order-42", "zzz")
	if matched {
		t.Error("expected no match")
	}
	if score != 0 {
		t.Errorf("score = %d, want 0", score)
	}
}

func TestFuzzyMatcher_EmptyPatternMatchesEverything(t *testing.T) {
	m := newFuzzyMatcher()
	matched, _ := m.match("order-42", "")
	if !matched {
		t.Error("expected empty pattern to match")
	}
}

func TestFzfFilter_RanksBetterMatchesFirst(t *testing.T) {
	filter := fzfFilter(newFuzzyMatcher())
	targets := []string{"order-99", "order-42", "banana"}
	ranks := filter("order-42", targets)

	if len(ranks) == 0 {
		t.Fatal("expected at least one match")
	}
	if targets[ranks[0].Index] != "order-42" {
		t.Errorf("best rank = %q, want order-42", targets[ranks[0].Index])
	}
	for _, rank := range ranks {
		if targets[rank.Index] == "banana" {
			t.Error("banana should not match order-42")
		}
	}
}
