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
	"github.com/erigontech/fca/bitset"
)

// KeyMap maps a key's canonical encoding to the index, in the topologically
// sorted intent list, of the smallest intent the key generates.
type KeyMap struct {
	order []*bitset.Bitset // keys in discovery order, for deterministic iteration
	index map[string]int   // key.Key() -> intent index
}

// Keys returns the keys in discovery (breadth-first, ascending-popcount)
// order, matching the queued-insertion ordering spec §5 mandates.
func (k *KeyMap) Keys() []*bitset.Bitset { return k.order }

// IntentIndex returns the intent index a key generates, and whether key is
// present in the map.
func (k *KeyMap) IntentIndex(key *bitset.Bitset) (int, bool) {
	idx, ok := k.index[key.Key()]
	return idx, ok
}

func newKeyMap() *KeyMap {
	return &KeyMap{index: make(map[string]int)}
}

func (k *KeyMap) put(key *bitset.Bitset, intentIdx int) {
	k.order = append(k.order, key)
	k.index[key.Key()] = intentIdx
}

func (k *KeyMap) has(key *bitset.Bitset) bool {
	_, ok := k.index[key.Key()]
	return ok
}

// descTable precomputes, for each attribute, the O-set... in this context a
// bitset over intent indices: desc(m) has bit i set iff intents[i] contains
// attribute m. It is the lookup table the level-wise apriori walk in spec
// §4.3 uses to find the "meet intent" of a candidate without recomputing a
// closure from scratch.
func descTable(intents []*bitset.Bitset, numAttrs uint) []*bitset.Bitset {
	desc := make([]*bitset.Bitset, numAttrs)
	for m := uint(0); m < numAttrs; m++ {
		desc[m] = bitset.New(uint(len(intents)))
	}
	for i, in := range intents {
		for m, ok := in.NextSet(0); ok; m, ok = in.NextSet(m + 1) {
			desc[m].Set(uint(i))
		}
	}
	return desc
}

// ListKeys enumerates every key of every intent via the level-wise apriori
// walk of spec §4.3, returning a KeyMap from key to the index of the
// smallest intent it generates.
func ListKeys(intents []*bitset.Bitset, numAttrs uint) *KeyMap {
	return listKeysOrPasskeys(intents, numAttrs, false)
}

// ListPasskeys enumerates, for each intent, only its minimum-cardinality
// keys (spec §4.3 "Passkey bound").
func ListPasskeys(intents []*bitset.Bitset, numAttrs uint) *KeyMap {
	return listKeysOrPasskeys(intents, numAttrs, true)
}

func listKeysOrPasskeys(intents []*bitset.Bitset, numAttrs uint, passkeysOnly bool) *KeyMap {
	desc := descTable(intents, numAttrs)
	km := newKeyMap()

	// The empty key always generates the bottom intent (index of the
	// smallest intent containing no attribute restrictions), found by
	// intersecting every desc(m) — but the empty set intersects over no
	// attributes, so by convention its meet is "every intent", and the
	// first (smallest) is the bottom intent at index 0, matching the
	// always-present bottom intent of spec §4.2.
	empty := bitset.New(numAttrs)
	km.put(empty, 0)

	queue := make([]*bitset.Bitset, 0, numAttrs)
	for m := uint(0); m < numAttrs; m++ {
		queue = append(queue, bitset.FromIndices(numAttrs, []uint{m}))
	}

	bestSize := make(map[int]int) // intent index -> smallest key size recorded
	if passkeysOnly {
		bestSize[0] = 0
	}

	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]

		idxList := a.Indices()

		// 1. Subset test: every strict one-element-removed subset must
		// already be a recorded key.
		allSubsetsKeys := true
		for _, m := range idxList {
			sub := a.Clone().Clear(m)
			if !km.has(sub) {
				allSubsetsKeys = false
				break
			}
		}
		if !allSubsetsKeys {
			continue
		}

		// 2. Meet intent: the smallest intent containing every attribute
		// of A.
		meet := bitset.Full(uint(len(intents)))
		for _, m := range idxList {
			meet.AndInPlace(desc[m])
		}
		first, ok := meet.NextSet(0)
		if !ok {
			// No intent contains all of A: A cannot be extended to a key.
			continue
		}
		meetIdx := int(first)

		// 3. Passkey bound: a strictly smaller key for this intent
		// already exists.
		if passkeysOnly {
			if existing, seen := bestSize[meetIdx]; seen && existing < len(idxList) {
				continue
			}
		}

		// 4. Strict-improvement test: if removing any one attribute gives
		// the same meet intent, A is redundant.
		improves := true
		for _, m := range idxList {
			sub := a.Clone().Clear(m)
			if subIdx, ok := km.IntentIndex(sub); ok && subIdx == meetIdx {
				improves = false
				break
			}
		}
		if !improves {
			continue
		}

		km.put(a, meetIdx)
		if passkeysOnly {
			bestSize[meetIdx] = len(idxList)
		}

		if meetIdx == len(intents)-1 && intents[meetIdx].Count() == numAttrs {
			// Top intent (all attributes): no further extension possible.
			continue
		}
		start := idxList[len(idxList)-1] + 1
		for m := start; m < numAttrs; m++ {
			if a.Test(m) {
				continue
			}
			queue = append(queue, a.Clone().Set(m))
		}
	}

	return km
}

// ListKeysForExtents is the alternative path of spec §4.3 for a
// non-lattice (partially ordered) extent set — for instance, the output of
// the gSofia stable-extent enumerator, which need not contain a closure for
// every attribute combination the way a full intent list does. Instead of
// consulting a precomputed desc(m) intent-membership table, it intersects
// attrExtents directly for each candidate and looks the resulting extent up
// in a hash map of the supplied extents, so a candidate whose extent is not
// among extents is simply never recorded as a key of anything. Grounded on
// the Python original's list_keys_for_extents.
func ListKeysForExtents(extents []*bitset.Bitset, attrExtents []*bitset.Bitset) *KeyMap {
	return listKeysOrPasskeysForExtents(extents, attrExtents, false)
}

// ListPasskeysForExtents is ListKeysForExtents restricted to each matched
// extent's minimum-cardinality keys, mirroring list_passkeys_for_extents.
func ListPasskeysForExtents(extents []*bitset.Bitset, attrExtents []*bitset.Bitset) *KeyMap {
	return listKeysOrPasskeysForExtents(extents, attrExtents, true)
}

// extentWidth recovers the O-set width shared by attrExtents and extents,
// preferring attrExtents (always present, even for an empty extents sample)
// and falling back to extents for the degenerate zero-attribute case.
func extentWidth(extents, attrExtents []*bitset.Bitset) uint {
	if len(attrExtents) > 0 {
		return attrExtents[0].Width()
	}
	if len(extents) > 0 {
		return extents[0].Width()
	}
	return 0
}

func listKeysOrPasskeysForExtents(extents []*bitset.Bitset, attrExtents []*bitset.Bitset, passkeysOnly bool) *KeyMap {
	numAttrs := uint(len(attrExtents))
	numObjects := extentWidth(extents, attrExtents)
	total := bitset.Full(numObjects)
	emptyKey := bitset.New(numAttrs)

	extentIndex := make(map[string]int, len(extents))
	for i, e := range extents {
		extentIndex[e.Key()] = i
	}

	km := newKeyMap()
	// support records every candidate's extent size, whether or not its
	// extent matched one of the supplied extents — the non-lattice
	// counterpart of the meet-intent lookup, since there may be no intent
	// index to compare against.
	support := map[string]uint{emptyKey.Key(): total.Count()}
	if idx, ok := extentIndex[total.Key()]; ok {
		km.put(emptyKey, idx)
	}

	bestSize := make(map[int]int)
	if passkeysOnly {
		if idx, ok := extentIndex[total.Key()]; ok {
			bestSize[idx] = 0
		}
	}

	queue := make([]*bitset.Bitset, 0, numAttrs)
	for m := uint(0); m < numAttrs; m++ {
		queue = append(queue, bitset.FromIndices(numAttrs, []uint{m}))
	}

	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]

		idxList := a.Indices()

		// 1. Subset test: every strict one-element-removed subset must
		// already have a recorded support — the presence test keys_dict
		// provides in the Python original, independent of whether that
		// subset ever matched a supplied extent.
		allKnown := true
		for _, m := range idxList {
			if _, ok := support[a.Clone().Clear(m).Key()]; !ok {
				allKnown = false
				break
			}
		}
		if !allKnown {
			continue
		}

		ext := total.Clone()
		for _, m := range idxList {
			ext.AndInPlace(attrExtents[m])
		}
		sup := ext.Count()
		extIdx, matched := extentIndex[ext.Key()]

		// 2. Passkey bound.
		if passkeysOnly && matched {
			if existing, seen := bestSize[extIdx]; seen && existing < len(idxList) {
				continue
			}
		}

		// 3. Strict-improvement test: a subset whose recorded support
		// already equals the candidate's support witnesses that the
		// candidate added nothing. There being no meet-intent index to
		// compare identities against, as ListKeys does, support equality
		// is the non-lattice substitute.
		improves := true
		for _, m := range idxList {
			if support[a.Clone().Clear(m).Key()] <= sup {
				improves = false
				break
			}
		}
		if !improves {
			continue
		}

		support[a.Key()] = sup
		if matched {
			km.put(a, extIdx)
			if passkeysOnly {
				bestSize[extIdx] = len(idxList)
			}
		}

		if sup == 0 {
			// The empty extent cannot be refined any further.
			continue
		}
		start := idxList[len(idxList)-1] + 1
		for m := start; m < numAttrs; m++ {
			if a.Test(m) {
				continue
			}
			queue = append(queue, a.Clone().Set(m))
		}
	}

	return km
}
