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

// Package context holds the formal context and the Galois connection
// (extension/intention/closure) that is the only code touching it directly;
// every other package in this module sees nothing but the attribute-extent
// table these operators are built on.
package context

import "github.com/erigontech/fca/bitset"

// Context is a binary relation between an object set O and an attribute set
// M, held in both orientations: one M-set per object (Rows) and, built from
// it by Transpose, one O-set per attribute (Extents). Object and attribute
// names are carried purely for the surrounding façade's verbalization; the
// Galois connection never inspects them.
type Context struct {
	ObjectNames    []string
	AttributeNames []string

	// Rows[g] is the M-set of attributes held by object g.
	Rows []*bitset.Bitset

	// Extents[m] is the O-set of objects holding attribute m: the
	// transpose of Rows, precomputed once since extension/intention are
	// called many times per mined structure.
	Extents []*bitset.Bitset
}

// New builds a Context from per-object attribute rows. objectNames and
// attributeNames may be nil; len(attributeNames), if non-nil, must equal the
// row width.
func New(objectNames, attributeNames []string, rows []*bitset.Bitset) *Context {
	width := uint(len(attributeNames))
	if len(rows) > 0 {
		width = rows[0].Width()
	}
	return &Context{
		ObjectNames:    objectNames,
		AttributeNames: attributeNames,
		Rows:           rows,
		Extents:        Transpose(rows, width),
	}
}

// NumObjects returns |O|.
func (c *Context) NumObjects() int { return len(c.Rows) }

// NumAttributes returns |M|.
func (c *Context) NumAttributes() int { return len(c.Extents) }

// Transpose computes, from a sequence of per-object M-sets, the dual
// sequence of per-attribute O-sets: Extents[m] has bit g set iff
// Rows[g] has bit m set. This is a linear-time bit transpose; running it
// twice recovers the original rows (spec §8 round-trip property).
func Transpose(rows []*bitset.Bitset, width uint) []*bitset.Bitset {
	numObjects := uint(len(rows))
	extents := make([]*bitset.Bitset, width)
	for m := uint(0); m < width; m++ {
		extents[m] = bitset.New(numObjects)
	}
	for g, row := range rows {
		for m, ok := row.NextSet(0); ok; m, ok = row.NextSet(m + 1) {
			extents[m].Set(uint(g))
		}
	}
	return extents
}

// Extension computes ⋂_{m ∈ B} Extents[m], the set of objects possessing
// every attribute in B. The empty intersection (B = ∅) is, by convention,
// the all-ones O-set: every object vacuously has all of no attributes.
func (c *Context) Extension(b *bitset.Bitset) *bitset.Bitset {
	result := bitset.Full(uint(c.NumObjects()))
	for m, ok := b.NextSet(0); ok; m, ok = b.NextSet(m + 1) {
		result.AndInPlace(c.Extents[m])
	}
	return result
}

// Intention computes { m | G ⊆ Extents[m] }, the set of attributes shared
// by every object in G. Dually, the empty object set yields the all-ones
// M-set: every attribute is vacuously shared by no objects.
func (c *Context) Intention(g *bitset.Bitset) *bitset.Bitset {
	result := bitset.New(uint(c.NumAttributes()))
	for m := 0; m < c.NumAttributes(); m++ {
		if g.IsSubsetOf(c.Extents[m]) {
			result.Set(uint(m))
		}
	}
	return result
}

// Closure computes Intention(Extension(B)), the smallest intent containing
// B. Closure is idempotent: Closure(Closure(B)) = Closure(B).
func (c *Context) Closure(b *bitset.Bitset) *bitset.Bitset {
	return c.Intention(c.Extension(b))
}

// IsClosed reports whether b equals its own closure, i.e. is an intent.
func (c *Context) IsClosed(b *bitset.Bitset) bool {
	return c.Closure(b).Equal(b)
}
