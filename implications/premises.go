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

package implications

import (
	"github.com/erigontech/fca/bitset"
	"github.com/erigontech/fca/mining"
)

// IsProperPremise reports whether key (a key of the intent at intentIdx) is
// a proper premise of that intent (spec §4.5): key is not itself the
// intent, and the union of key with every closure(key ∖ {m}) is a strict
// subset of the intent. Each closure(key ∖ {m}) is looked up directly via
// km — the "key-indexed fast path" spec §4.5 describes — rather than
// recomputed against the context, since every one-element-removed subset of
// a key is itself a key (spec §3 "Key monotonicity").
func IsProperPremise(key *bitset.Bitset, intentIdx int, intents []*bitset.Bitset, km *mining.KeyMap) bool {
	intent := intents[intentIdx]
	if key.Equal(intent) {
		return false
	}
	union := key.Clone()
	for _, m := range key.Indices() {
		sub := key.Clone().Clear(m)
		subIdx, ok := km.IntentIndex(sub)
		if !ok {
			// Key monotonicity guarantees this never happens for a genuine
			// key, but guard rather than index out of range on a caller's
			// malformed input.
			continue
		}
		union.OrInPlace(intents[subIdx])
	}
	return !union.Equal(intent)
}

// ListProperPremises iterates km's keys and returns each (key, intentIdx)
// pair passing IsProperPremise, in the key map's discovery order — the
// Canonical Direct / Proper-Premise base of spec §4.5.
func ListProperPremises(intents []*bitset.Bitset, km *mining.KeyMap) []Implication {
	var out []Implication
	for _, key := range km.Keys() {
		idx, ok := km.IntentIndex(key)
		if !ok {
			continue
		}
		if IsProperPremise(key, idx, intents, km) {
			out = append(out, Implication{Premise: key, ConclusionIdx: idx})
		}
	}
	return out
}
