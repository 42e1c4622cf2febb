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

package fca

// NaturalOrRatio is a threshold expressed either as an absolute count (a
// value > 1, truncated to an integer) or as a fraction of the object count
// (a value in (0, 1]). ToAbsolute resolves it against a concrete object
// count, the same convention the Python original applies in
// to_absolute_number: a floating value in (0, 1] is multiplied by |O| and
// floored; anything > 1 is truncated and used as a count.
type NaturalOrRatio float64

// ToAbsolute resolves the threshold against total, the size of the
// population it is a fraction or count of (e.g. |O| for a min-support
// threshold, or the candidate count for a stable-extent cap).
func (n NaturalOrRatio) ToAbsolute(total int) int {
	if n <= 0 {
		return 0
	}
	if n > 1 {
		return int(n)
	}
	return int(float64(total) * float64(n))
}
