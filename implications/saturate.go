// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

// Package implications builds the two canonical implication bases on top of
// the mining package's keys and intents: saturation under a growing
// implication set, the proper-premise test, and the pseudo-intent ledger.
package implications

import "github.com/erigontech/fca/bitset"

// Implication is "premise ⇒ intents[ConclusionIdx]", the wire shape spec §3
// fixes for every implication in either base.
type Implication struct {
	Premise       *bitset.Bitset
	ConclusionIdx int
}

// Saturate computes the smallest M-set containing premise that is closed
// under every rule in rules whose own premise is already a subset of the
// accumulating set (spec §4.5). It repeatedly scans rules, applying any
// whose premise now fits and discarding it from further consideration, and
// stops when a full scan makes no change — the textbook LinClosure fixed
// point. Presorting rules by ascending ConclusionIdx lets a single forward
// pass suffice whenever intents is lattice-complete (the fast path mentioned
// in spec §4.5), but Saturate itself makes no such assumption: it is correct
// for any rule order, just potentially slower to converge.
func Saturate(premise *bitset.Bitset, rules []Implication, intents []*bitset.Bitset) *bitset.Bitset {
	result := premise.Clone()
	pending := make([]Implication, len(rules))
	copy(pending, rules)

	for {
		changed := false
		remaining := pending[:0]
		for _, r := range pending {
			if r.Premise.IsSubsetOf(result) {
				result.OrInPlace(intents[r.ConclusionIdx])
				changed = true
				continue
			}
			remaining = append(remaining, r)
		}
		pending = remaining
		if !changed {
			return result
		}
	}
}
