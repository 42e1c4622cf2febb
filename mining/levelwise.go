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

import "github.com/erigontech/fca/bitset"

// GenerateNextLevelDescriptions produces every (k+1)-sized candidate
// obtainable by extending a k-sized accepted description with one more
// attribute whose index exceeds the description's maximum, keeping only
// candidates all of whose k-sized subdescriptions are themselves already
// accepted — the canonicity check apriori-style level-wise miners share.
// This is the same candidate-generation shape spec §4.3 uses for keys, and
// is reused unmodified by ListMinimalRareItemsets and
// IterMinimalBroadClusterings below.
func GenerateNextLevelDescriptions(accepted []*bitset.Bitset, numAttrs uint) []*bitset.Bitset {
	acceptedSet := make(map[string]bool, len(accepted))
	for _, a := range accepted {
		acceptedSet[a.Key()] = true
	}

	seen := map[string]bool{}
	var out []*bitset.Bitset
	for _, a := range accepted {
		idx := a.Indices()
		start := uint(0)
		if len(idx) > 0 {
			start = idx[len(idx)-1] + 1
		}
		for m := start; m < numAttrs; m++ {
			candidate := a.Clone().Set(m)
			if seen[candidate.Key()] {
				continue
			}
			if allSubdescriptionsAccepted(candidate, acceptedSet) {
				seen[candidate.Key()] = true
				out = append(out, candidate)
			}
		}
	}
	return out
}

func allSubdescriptionsAccepted(candidate *bitset.Bitset, acceptedSet map[string]bool) bool {
	for _, m := range candidate.Indices() {
		sub := candidate.Clone().Clear(m)
		if !acceptedSet[sub.Key()] {
			return false
		}
	}
	return true
}

// ListMinimalRareItemsets enumerates the minimal attribute sets whose
// extent has at most maxSupport objects: level-wise, starting from
// singletons, an itemset is minimal-rare if its support is at most
// maxSupport but every strict subset's support exceeds it. Grounded on the
// Python original's MRG-Exp-family iter_minimal_rare_itemsets_via_mrgexp.
func ListMinimalRareItemsets(extents []*bitset.Bitset, numObjects, maxSupport int) []*bitset.Bitset {
	numAttrs := uint(len(extents))
	support := func(b *bitset.Bitset) int {
		ext := bitset.Full(uint(numObjects))
		for m, ok := b.NextSet(0); ok; m, ok = b.NextSet(m + 1) {
			ext.AndInPlace(extents[m])
		}
		return int(ext.Count())
	}

	var rare []*bitset.Bitset
	level := make([]*bitset.Bitset, 0, numAttrs)
	for m := uint(0); m < numAttrs; m++ {
		level = append(level, bitset.FromIndices(numAttrs, []uint{m}))
	}

	for len(level) > 0 {
		var accepted []*bitset.Bitset
		for _, candidate := range level {
			if support(candidate) <= maxSupport {
				rare = append(rare, candidate)
				continue
			}
			// Not rare: support exceeds maxSupport, so it (and its
			// supersets) can never be minimal-rare; it is only kept as
			// the accepted frontier for the next level's candidates.
			accepted = append(accepted, candidate)
		}
		level = GenerateNextLevelDescriptions(accepted, numAttrs)
	}
	return rare
}

// IterMinimalBroadClusterings is the dual of ListMinimalRareItemsets, but
// over a different notion of coverage: each attribute is treated as a
// cluster, and the coverage of a set of attributes is the number of objects
// lying in the *union* of their extents, not the conjunctive (intersection)
// extent ListMinimalRareItemsets uses. It enumerates the minimal attribute
// sets whose union-coverage reaches minSupport objects but no strict subset's
// union-coverage does — i.e. minimal "broad" (frequent) clusterings. Grounded
// on iter_minimal_broad_clusterings_via_mrgexp, which computes the same
// union coverage via De Morgan (intersecting complemented extents and
// complementing back); this version ORs the extents directly to the same
// effect.
func IterMinimalBroadClusterings(extents []*bitset.Bitset, numObjects, minSupport int) []*bitset.Bitset {
	numAttrs := uint(len(extents))
	coverage := func(b *bitset.Bitset) int {
		union := bitset.New(uint(numObjects))
		for m, ok := b.NextSet(0); ok; m, ok = b.NextSet(m + 1) {
			union.OrInPlace(extents[m])
		}
		return int(union.Count())
	}

	var broad []*bitset.Bitset
	level := make([]*bitset.Bitset, 0, numAttrs)
	for m := uint(0); m < numAttrs; m++ {
		level = append(level, bitset.FromIndices(numAttrs, []uint{m}))
	}

	for len(level) > 0 {
		var accepted []*bitset.Bitset
		for _, candidate := range level {
			if coverage(candidate) >= minSupport {
				broad = append(broad, candidate)
				continue
			}
			accepted = append(accepted, candidate)
		}
		level = GenerateNextLevelDescriptions(accepted, numAttrs)
	}
	return broad
}
