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

// Package bitset provides the fixed-width bit vector that every other
// package in this module treats as its canonical value type: an M-set
// (subset of attributes) or an O-set (subset of objects), always paired
// with an explicit, immutable width.
package bitset

import (
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	bbs "github.com/bits-and-blooms/bitset"
)

// Bitset is a bit vector of a fixed, explicit width. Unlike the underlying
// bits-and-blooms/bitset.BitSet, which silently grows when a caller sets a
// bit past its current length, Bitset rejects any operation whose index or
// operand width disagrees with the declared width: a bitset handed between
// components always has the width its caller expects.
type Bitset struct {
	width uint
	bits  *bbs.BitSet
}

// New returns an all-zero Bitset of the given width.
func New(width uint) *Bitset {
	return &Bitset{width: width, bits: bbs.New(width)}
}

// Full returns a Bitset of the given width with every bit set. This is the
// conventional "empty intersection" result for the closure operator's
// extension(∅) = all objects, and for the top intent all-attributes set.
func Full(width uint) *Bitset {
	b := New(width)
	if width > 0 {
		b.bits = b.bits.Complement()
	}
	return b
}

// FromIndices returns a Bitset of the given width with exactly the given
// indices set.
func FromIndices(width uint, idx []uint) *Bitset {
	b := New(width)
	for _, i := range idx {
		b.Set(i)
	}
	return b
}

// FromItemset builds a Bitset via a roaring.Bitmap intermediate, the same
// sparse-itemset boundary the Python original crosses in isets2bas /
// bas2isets and at the scikit-mine LCM call boundary.
func FromItemset(width uint, members []int) *Bitset {
	rb := roaring.New()
	for _, m := range members {
		rb.Add(uint32(m))
	}
	b := New(width)
	it := rb.Iterator()
	for it.HasNext() {
		b.bits.Set(uint(it.Next()))
	}
	return b
}

// ToItemset returns the sorted indices of set bits, routed through a
// roaring.Bitmap so the sparse representation used at import/export
// boundaries round-trips through the same type FromItemset builds from.
func (b *Bitset) ToItemset() []int {
	rb := roaring.New()
	for i, ok := b.bits.NextSet(0); ok; i, ok = b.bits.NextSet(i + 1) {
		rb.Add(uint32(i))
	}
	out := make([]int, 0, rb.GetCardinality())
	it := rb.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// Width reports the fixed width of the bitset.
func (b *Bitset) Width() uint { return b.width }

// Count returns the popcount (support) of the bitset.
func (b *Bitset) Count() uint { return b.bits.Count() }

// Test reports whether bit i is set.
func (b *Bitset) Test(i uint) bool { return b.bits.Test(i) }

// Set sets bit i and returns the receiver. Panics if i is out of width,
// since this always signals a programmer error (spec precondition
// violation), never a data condition a caller can recover from.
func (b *Bitset) Set(i uint) *Bitset {
	b.mustInWidth(i)
	b.bits.Set(i)
	return b
}

// Clear clears bit i and returns the receiver.
func (b *Bitset) Clear(i uint) *Bitset {
	b.mustInWidth(i)
	b.bits.Clear(i)
	return b
}

func (b *Bitset) mustInWidth(i uint) {
	if i >= b.width {
		panic(fmt.Sprintf("bitset: index %d out of width %d", i, b.width))
	}
}

// Clone returns a deep copy.
func (b *Bitset) Clone() *Bitset {
	return &Bitset{width: b.width, bits: b.bits.Clone()}
}

func (b *Bitset) mustSameWidth(other *Bitset) {
	if b.width != other.width {
		panic(fmt.Sprintf("bitset: width mismatch %d != %d", b.width, other.width))
	}
}

// And returns a new Bitset holding the bitwise AND of the receiver and other.
func (b *Bitset) And(other *Bitset) *Bitset {
	b.mustSameWidth(other)
	return &Bitset{width: b.width, bits: b.bits.Intersection(other.bits)}
}

// Or returns a new Bitset holding the bitwise OR of the receiver and other.
func (b *Bitset) Or(other *Bitset) *Bitset {
	b.mustSameWidth(other)
	return &Bitset{width: b.width, bits: b.bits.Union(other.bits)}
}

// AndNot returns a new Bitset holding the receiver with other's bits cleared.
func (b *Bitset) AndNot(other *Bitset) *Bitset {
	b.mustSameWidth(other)
	return &Bitset{width: b.width, bits: b.bits.Difference(other.bits)}
}

// Not returns the complement of the receiver within its width.
func (b *Bitset) Not() *Bitset {
	return &Bitset{width: b.width, bits: b.bits.Complement()}
}

// AndInPlace ANDs other into the receiver.
func (b *Bitset) AndInPlace(other *Bitset) *Bitset {
	b.mustSameWidth(other)
	b.bits.InPlaceIntersection(other.bits)
	return b
}

// OrInPlace ORs other into the receiver.
func (b *Bitset) OrInPlace(other *Bitset) *Bitset {
	b.mustSameWidth(other)
	b.bits.InPlaceUnion(other.bits)
	return b
}

// IsSubsetOf reports whether every bit set in the receiver is also set in other.
func (b *Bitset) IsSubsetOf(other *Bitset) bool {
	b.mustSameWidth(other)
	return other.bits.IsSuperSet(b.bits)
}

// IsProperSubsetOf reports whether the receiver is a subset of, and unequal to, other.
func (b *Bitset) IsProperSubsetOf(other *Bitset) bool {
	b.mustSameWidth(other)
	return other.bits.IsStrictSuperSet(b.bits)
}

// Equal reports bitwise equality. Bitsets of differing width are never equal.
func (b *Bitset) Equal(other *Bitset) bool {
	if b.width != other.width {
		return false
	}
	return b.bits.Equal(other.bits)
}

// IsEmpty reports whether no bit is set.
func (b *Bitset) IsEmpty() bool { return b.bits.None() }

// All reports whether every bit within the width is set.
func (b *Bitset) All() bool { return b.bits.Count() == b.width }

// NextSet returns the next set bit starting at i (inclusive), mirroring
// bitarray.itersearch(True) in the Python original.
func (b *Bitset) NextSet(i uint) (uint, bool) { return b.bits.NextSet(i) }

// Indices returns the ascending list of set bit positions.
func (b *Bitset) Indices() []uint {
	out := make([]uint, 0, b.Count())
	for i, ok := b.bits.NextSet(0); ok; i, ok = b.bits.NextSet(i + 1) {
		out = append(out, i)
	}
	return out
}

// Key returns a canonical, comparable string encoding suitable for use as a
// Go map key, playing the role that Python's hashable frozenbitarray plays
// in the original (e.g. dict[frozenbitarray, int] key maps throughout
// mine_equivalence_classes.py and implication_bases.py).
func (b *Bitset) Key() string {
	var sb strings.Builder
	sb.Grow(int(b.width))
	for i := uint(0); i < b.width; i++ {
		if b.bits.Test(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Less implements the topological order of spec §3: ascending popcount,
// breaking ties on the bit pattern: at the lowest index where a and b
// differ, the bitset with that bit set sorts first.
func Less(a, b *Bitset) bool {
	if a.Count() != b.Count() {
		return a.Count() < b.Count()
	}
	for i := uint(0); i < a.width; i++ {
		av, bv := a.bits.Test(i), b.bits.Test(i)
		if av != bv {
			return av && !bv
		}
	}
	return false
}

// String renders the bitset as a string of '0'/'1' characters, most
// significant (index 0) first.
func (b *Bitset) String() string { return b.Key() }
