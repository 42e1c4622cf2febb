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
	"sort"

	"github.com/google/btree"

	"github.com/erigontech/fca/bitset"
)

// psiEntry is one triple of Ψ, spec §4.6's growing, sorted pseudo-intent
// ledger: the original candidate key, its saturated premise, and the index
// of the intent it generates.
type psiEntry struct {
	key       *bitset.Bitset
	premise   *bitset.Bitset
	intentIdx int
}

// psiLess orders Ψ by ascending saturated-premise popcount, breaking ties
// lexicographically (bitset.Less), and finally by intent index so that
// btree.BTreeG never treats two distinct entries as equal.
func psiLess(a, b psiEntry) bool {
	if !a.premise.Equal(b.premise) {
		return bitset.Less(a.premise, b.premise)
	}
	return a.intentIdx < b.intentIdx
}

// PseudoIntentLedger is Ψ: the ordered-insertion-with-cascade construction
// of spec §4.6, backed by a btree.BTreeG for O(log n) ordered insert instead
// of the Python original's linear list re-sort (same algorithm, the
// idiomatic Go data structure for it).
type PseudoIntentLedger struct {
	tree     *btree.BTreeG[psiEntry]
	premises map[string]bool // saturated-premise encoding -> present, for the "equal Pʹ already present" dedup test
}

// NewPseudoIntentLedger returns an empty ledger.
func NewPseudoIntentLedger() *PseudoIntentLedger {
	return &PseudoIntentLedger{
		tree:     btree.NewG(32, psiLess),
		premises: make(map[string]bool),
	}
}

func (l *PseudoIntentLedger) snapshot() []psiEntry {
	out := make([]psiEntry, 0, l.tree.Len())
	l.tree.Ascend(func(e psiEntry) bool {
		out = append(out, e)
		return true
	})
	return out
}

func rulesFrom(entries []psiEntry) []Implication {
	out := make([]Implication, len(entries))
	for i, e := range entries {
		out[i] = Implication{Premise: e.premise, ConclusionIdx: e.intentIdx}
	}
	return out
}

// Add processes one proper-premise candidate (key, intentIdx) against the
// current ledger, per spec §4.6 steps 1-4: saturate the candidate against
// the existing base, skip it if already subsumed or a duplicate saturated
// premise, otherwise insert it and cascade the re-saturation through every
// triple at or after its sorted position.
func (l *PseudoIntentLedger) Add(key *bitset.Bitset, intentIdx int, intents []*bitset.Bitset) {
	saturated := Saturate(key, rulesFrom(l.snapshot()), intents)
	if saturated.Equal(intents[intentIdx]) {
		return
	}
	if l.premises[saturated.Key()] {
		return
	}

	entry := psiEntry{key: key, premise: saturated, intentIdx: intentIdx}
	l.tree.ReplaceOrInsert(entry)
	l.premises[saturated.Key()] = true
	l.cascade(entry, intents)
}

// cascade re-saturates every triple at or after entry's sorted position
// against the prefix of Ψ before it, deleting triples absorbed into the
// base and replacing the saturated premise of the rest — spec §4.6 step 4.
func (l *PseudoIntentLedger) cascade(entry psiEntry, intents []*bitset.Bitset) {
	all := l.snapshot()
	insPos := 0
	for i, e := range all {
		if e.key == entry.key && e.intentIdx == entry.intentIdx {
			insPos = i
			break
		}
	}

	keep := append([]psiEntry{}, all[:insPos]...)
	for j := insPos; j < len(all); j++ {
		e := all[j]
		newPremise := Saturate(e.key, rulesFrom(keep), intents)

		if newPremise.Equal(intents[e.intentIdx]) {
			l.tree.Delete(e)
			delete(l.premises, e.premise.Key())
			continue
		}
		if newPremise.Equal(e.premise) {
			keep = append(keep, e)
			continue
		}

		l.tree.Delete(e)
		delete(l.premises, e.premise.Key())
		if l.premises[newPremise.Key()] {
			continue
		}
		updated := psiEntry{key: e.key, premise: newPremise, intentIdx: e.intentIdx}
		l.tree.ReplaceOrInsert(updated)
		l.premises[newPremise.Key()] = true
		keep = append(keep, updated)
	}
}

// List returns Ψ's current contents as pseudo-intent implications, sorted
// ascending by saturated-premise popcount — the order spec §5 mandates for
// pseudo-intents.
func (l *PseudoIntentLedger) List() []Implication {
	return rulesFrom(l.snapshot())
}

// BuildPseudoIntents constructs the Canonical (Duquenne-Guigues) base: given
// the proper premises (the Canonical Direct base) and the topologically
// sorted intents, it processes candidates in non-decreasing intent-index
// order through a PseudoIntentLedger and returns the resulting pseudo-intent
// implications (spec §4.6).
func BuildPseudoIntents(properPremises []Implication, intents []*bitset.Bitset) []Implication {
	ordered := make([]Implication, len(properPremises))
	copy(ordered, properPremises)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ConclusionIdx < ordered[j].ConclusionIdx })

	ledger := NewPseudoIntentLedger()
	for _, pp := range ordered {
		ledger.Add(pp.Premise, pp.ConclusionIdx, intents)
	}
	return ledger.List()
}
