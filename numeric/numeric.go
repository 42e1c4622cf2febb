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

// Package numeric holds the small integer-arithmetic helpers used by iofca
// and indices, kept in their own leaf package so that neither has to import
// the root fca package just to size a byte buffer or guard a popcount
// addition.
package numeric

import "math/bits"

// SafeAdd returns x+y and reports whether the addition overflowed uint64,
// used when accumulating popcounts across a large number of extents where a
// silent wraparound would corrupt a support count.
func SafeAdd(x, y uint64) (uint64, bool) {
	sum, carry := bits.Add64(x, y, 0)
	return sum, carry != 0
}

// CeilDiv returns ceil(x/y), used to size the packed-byte length of a
// persisted bitset: a width of x bits needs CeilDiv(x, 8) bytes.
func CeilDiv(x, y int) int {
	if y == 0 {
		return 0
	}
	return (x + y - 1) / y
}
