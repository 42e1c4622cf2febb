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

// Package order derives the concept lattice's covering (Hasse) relation
// from the intents alone, together with its transitive closure (spec §4.7).
package order

import "github.com/erigontech/fca/bitset"

// Order holds, for every intent index i (into the topologically sorted
// intent list), the bitset of its upper covers (smallest strictly larger
// intents) and, if requested, the bitset of every strictly larger intent.
type Order struct {
	Covers   []*bitset.Bitset // Covers[i] has bit j set iff intents[j] is an immediate successor of intents[i]
	Ancestry []*bitset.Bitset // Ancestry[i] has bit j set iff intents[j] strictly contains intents[i]; nil unless requested
}

// descTable precomputes, for each attribute, the bitset over intent indices
// of intents containing it — the same table spec §4.3's key enumerator
// builds, reused here per spec §4.7.
func descTable(intents []*bitset.Bitset, numAttrs uint) []*bitset.Bitset {
	n := uint(len(intents))
	desc := make([]*bitset.Bitset, numAttrs)
	for m := uint(0); m < numAttrs; m++ {
		desc[m] = bitset.New(n)
	}
	for i, in := range intents {
		for m, ok := in.NextSet(0); ok; m, ok = in.NextSet(m + 1) {
			desc[m].Set(uint(i))
		}
	}
	return desc
}

// Covers computes the lattice's upper-cover relation for the given
// topologically sorted intents (spec §4.7): for each intent I, scanned from
// largest to smallest, every attribute m not in I identifies a candidate
// cover — the smallest intent containing I ∪ {m} — found via desc(m)
// intersected with the intents common to every attribute of I. Candidates
// that are transitively reachable from other candidates are then dropped,
// leaving only the minimal (immediate) covers.
func Covers(intents []*bitset.Bitset, numAttrs uint) []*bitset.Bitset {
	n := len(intents)
	desc := descTable(intents, numAttrs)
	covers := make([]*bitset.Bitset, n)

	for i := n - 1; i >= 0; i-- {
		intent := intents[i]
		common := bitset.Full(uint(n))
		for _, m := range intent.Indices() {
			common.AndInPlace(desc[m])
		}

		candidates := bitset.New(uint(n))
		for m := uint(0); m < numAttrs; m++ {
			if intent.Test(m) {
				continue
			}
			superset := common.And(desc[m])
			first, ok := superset.NextSet(0)
			if !ok {
				continue
			}
			candidates.Set(first)
		}
		covers[i] = dropTransitive(candidates, covers)
	}
	return covers
}

// dropTransitive removes from candidates every index that is reachable from
// another candidate through a chain of one or more covers, leaving only the
// inclusion-minimal (immediate) successors.
func dropTransitive(candidates *bitset.Bitset, covers []*bitset.Bitset) *bitset.Bitset {
	reached := bitset.New(candidates.Width())
	stack := candidates.Indices()
	for len(stack) > 0 {
		j := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if covers[j] == nil {
			continue
		}
		for k, ok := covers[j].NextSet(0); ok; k, ok = covers[j].NextSet(k + 1) {
			if !reached.Test(k) {
				reached.Set(k)
				stack = append(stack, k)
			}
		}
	}
	return candidates.AndNot(reached)
}

// TransitiveClosure computes, for each intent, the bitset of every strictly
// larger intent: the union of its covers and the ancestry of each cover.
// Covers only ever point to strictly larger intents, which the topological
// order (ascending popcount) places at a strictly greater index, so a
// single descending pass (largest intent first) always has ancestry[j]
// already complete by the time ancestry[i] needs it.
func TransitiveClosure(covers []*bitset.Bitset) []*bitset.Bitset {
	n := len(covers)
	ancestry := make([]*bitset.Bitset, n)
	for i := n - 1; i >= 0; i-- {
		acc := covers[i].Clone()
		for j, ok := covers[i].NextSet(0); ok; j, ok = covers[i].NextSet(j + 1) {
			acc.OrInPlace(ancestry[j])
		}
		ancestry[i] = acc
	}
	return ancestry
}

// Build computes both the covering relation and its transitive closure.
func Build(intents []*bitset.Bitset, numAttrs uint) Order {
	covers := Covers(intents, numAttrs)
	return Order{Covers: covers, Ancestry: TransitiveClosure(covers)}
}
