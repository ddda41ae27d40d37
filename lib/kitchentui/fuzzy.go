// Copyright 2026 The Kitchen Authors
// SPDX-License-Identifier: Apache-2.0

package kitchentui

import (
	"sort"

	"github.com/charmbracelet/bubbles/list"
	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// fuzzyMatcher wraps fzf's V2 fuzzy matching algorithm so the order
// list filter box can reuse the same matching behavior users already
// expect from fzf, rather than hand-rolling a second implementation.
type fuzzyMatcher struct {
	slab *util.Slab
}

// newFuzzyMatcher builds a matcher with its own scratch slab. A slab
// is not safe for concurrent use, so each bubbletea model owns one.
func newFuzzyMatcher() *fuzzyMatcher {
	return &fuzzyMatcher{slab: util.MakeSlab(slab16Size, slab32Size)}
}

// Slab sizes matching fzf's own CLI defaults.
const (
	slab16Size = 100 * 1024
	slab32Size = 2048
)

// match reports whether pattern fuzzy-matches text and, if so, a
// score usable for ranking (higher is a better match).
func (m *fuzzyMatcher) match(text, pattern string) (matched bool, score int) {
	if pattern == "" {
		return true, 0
	}
	chars := util.ToChars([]byte(text))
	result, _ := algo.FuzzyMatchV2(false, true, true, &chars, []rune(pattern), false, m.slab)
	if result.Start < 0 {
		return false, 0
	}
	return true, result.Score
}

// fzfFilter adapts matcher into a bubbles/list FilterFunc, mirroring
// the delegation pattern of lib/ticketui/fuzzy.go (a TUI package
// handing fuzzy matching off to a dedicated matcher rather than
// reimplementing it), but calling fzf's matcher directly since that
// file's own implementation is not part of this module's corpus.
func fzfFilter(matcher *fuzzyMatcher) list.FilterFunc {
	return func(term string, targets []string) []list.Rank {
		var ranks []list.Rank
		scores := make(map[int]int, len(targets))
		for i, target := range targets {
			matched, score := matcher.match(target, term)
			if !matched {
				continue
			}
			ranks = append(ranks, list.Rank{Index: i})
			scores[i] = score
		}
		sort.SliceStable(ranks, func(a, b int) bool {
			return scores[ranks[a].Index] > scores[ranks[b].Index]
		})
		return ranks
	}
}
