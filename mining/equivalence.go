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

package mining

import (
	"sort"

	"github.com/erigontech/fca/bitset"
	"github.com/erigontech/fca/context"
)

// IterEquivalenceClass enumerates every attribute subset whose extension
// equals intent's own extent — the equivalence class intent's keys and
// passkeys are defined over (spec §4.3 "Key monotonicity"/"Passkey
// minimality"). Results are returned from largest to smallest, matching the
// Python original's iter_equivalence_class descent order: start from intent
// itself (always a member, trivially the largest) and peel one attribute at
// a time, keeping only descendants whose extension is unchanged.
func IterEquivalenceClass(ctx *context.Context, intent *bitset.Bitset) []*bitset.Bitset {
	targetExt := ctx.Extension(intent)

	members := map[string]*bitset.Bitset{intent.Key(): intent}
	frontier := []*bitset.Bitset{intent}

	for len(frontier) > 0 {
		var next []*bitset.Bitset
		for _, b := range frontier {
			for _, m := range b.Indices() {
				child := b.Clone().Clear(m)
				if _, seen := members[child.Key()]; seen {
					continue
				}
				if !ctx.Extension(child).Equal(targetExt) {
					continue
				}
				members[child.Key()] = child
				next = append(next, child)
			}
		}
		frontier = next
	}

	out := make([]*bitset.Bitset, 0, len(members))
	for _, b := range members {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return !bitset.Less(out[i], out[j]) })
	return out
}

// ListAttributeConcepts returns, for each attribute m, the index in the
// topologically sorted intents of the smallest intent containing m — the
// attribute concept lookup the Python original exposes as
// list_attribute_concepts. order.Covers computes the same per-attribute
// table internally (its own desc table covers every intent containing m,
// not just the smallest); this is the single-index form the original also
// exposes as a public query.
func ListAttributeConcepts(intents []*bitset.Bitset, numAttrs uint) []int {
	concepts := make([]int, numAttrs)
	for m := uint(0); m < numAttrs; m++ {
		concepts[m] = -1
		for i, in := range intents {
			if in.Test(m) {
				concepts[m] = i
				break
			}
		}
	}
	return concepts
}
