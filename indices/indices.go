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

// Package indices computes the structural metrics derived from a mined
// lattice: support, delta-stability, linearity and distributivity (spec
// §4.8).
package indices

import (
	"github.com/erigontech/fca/bitset"
	"github.com/erigontech/fca/context"
	"github.com/erigontech/fca/numeric"
)

// Support returns |extension(b)|.
func Support(ctx *context.Context, b *bitset.Bitset) uint {
	return ctx.Extension(b).Count()
}

// TotalSupport sums the support of every intent in a mined list, reporting
// whether the accumulation overflowed uint64 — a concern for a façade
// printing an aggregate coverage count across a very large intent list,
// where a silent wraparound would misreport it.
func TotalSupport(ctx *context.Context, intents []*bitset.Bitset) (total uint64, overflowed bool) {
	for _, in := range intents {
		sum, carry := numeric.SafeAdd(total, uint64(Support(ctx, in)))
		total = sum
		overflowed = overflowed || carry
	}
	return total, overflowed
}

// DeltaStability computes an intent's delta-stability directly from the
// context, without enumerating its children (spec §4.8): the size of its
// extent minus the largest extent obtainable by intersecting with one more
// attribute's extent. Returns |ext(intent)| when every attribute is already
// in intent, since there is then nothing left to refine by.
func DeltaStability(ctx *context.Context, intent *bitset.Bitset) int {
	ext := ctx.Extension(intent)
	best := -1
	for m := 0; m < ctx.NumAttributes(); m++ {
		if intent.Test(uint(m)) {
			continue
		}
		refined := int(ext.And(ctx.Extents[m]).Count())
		if refined > best {
			best = refined
		}
	}
	if best < 0 {
		return int(ext.Count())
	}
	return int(ext.Count()) - best
}

// Linearity is the fraction of intent pairs that are comparable under the
// order's transitive closure: (#comparable pairs) / (n*(n-1)/2). When
// stripTopBottom is set, the top and bottom intents (index 0 and n-1 in the
// topological order, by convention) are excluded from both the numerator and
// the denominator.
func Linearity(ancestry []*bitset.Bitset, stripTopBottom bool) float64 {
	n := len(ancestry)
	lo, hi := 0, n
	if stripTopBottom && n > 2 {
		lo, hi = 1, n-1
	}
	total := 0
	comparable := 0
	for i := lo; i < hi; i++ {
		for j := i + 1; j < hi; j++ {
			total++
			if ancestry[i].Test(uint(j)) || ancestry[j].Test(uint(i)) {
				comparable++
			}
		}
	}
	if total == 0 {
		return 1
	}
	return float64(comparable) / float64(total)
}

// Distributivity is the fraction of intent pairs (A, B) whose join (union)
// is itself an intent (spec §4.8). stripTopBottom excludes the top and
// bottom intents from both numerator and denominator, matching Linearity's
// flag.
func Distributivity(intents []*bitset.Bitset, stripTopBottom bool) float64 {
	n := len(intents)
	lo, hi := 0, n
	if stripTopBottom && n > 2 {
		lo, hi = 1, n-1
	}

	isIntent := make(map[string]bool, n)
	for _, in := range intents {
		isIntent[in.Key()] = true
	}

	total := 0
	joinPreserving := 0
	for i := lo; i < hi; i++ {
		for j := i + 1; j < hi; j++ {
			total++
			join := intents[i].Or(intents[j])
			if isIntent[join.Key()] {
				joinPreserving++
			}
		}
	}
	if total == 0 {
		return 1
	}
	return float64(joinPreserving) / float64(total)
}
