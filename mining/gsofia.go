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
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/erigontech/fca/bitset"
)

// ErrDeltaOutOfRange is returned when a caller passes a negative
// delta-stability threshold.
var ErrDeltaOutOfRange = errors.New("mining: min delta-stability out of range")

// StableExtent is one result of ListStableExtents: an extent together with
// its delta-stability and the immediate stable sub-extents ("children") it
// was projected from.
type StableExtent struct {
	Extent   *bitset.Bitset
	Delta    int
	Children []*bitset.Bitset
}

// GSofiaOptions configures ListStableExtents.
type GSofiaOptions struct {
	minSupport int
	cap        int // 0 means uncapped
	logger     *zap.Logger
}

// GSofiaOption is a functional option for ListStableExtents.
type GSofiaOption func(*GSofiaOptions)

// WithMinSupport sets the minimum extent size s of spec §4.4.
func WithMinSupport(s int) GSofiaOption { return func(o *GSofiaOptions) { o.minSupport = s } }

// WithCap bounds the number of stable extents returned, trimming to the
// n largest by delta-stability (spec §4.4 step 6 / SPEC_FULL.md Open
// Question (a)).
func WithCap(n int) GSofiaOption { return func(o *GSofiaOptions) { o.cap = n } }

// WithGSofiaLogger attaches a zap logger for progress reporting.
func WithGSofiaLogger(l *zap.Logger) GSofiaOption { return func(o *GSofiaOptions) { o.logger = l } }

type gsofiaEntry struct {
	extent   *bitset.Bitset
	delta    int
	children map[string]*bitset.Bitset
}

// ListStableExtents enumerates the delta-stable extents of a context (the
// gSofia algorithm, spec §4.4): given the per-attribute extents, a minimum
// delta-stability Δ, and an optional cap, returns every extent X with
// delta-stability at least Δ, where delta-stability is |X| minus the size
// of its largest immediate stable sub-extent.
func ListStableExtents(extents []*bitset.Bitset, numObjects int, minDelta int, opts ...GSofiaOption) ([]StableExtent, error) {
	o := &GSofiaOptions{logger: zap.NewNop()}
	for _, apply := range opts {
		apply(o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if minDelta < 0 {
		return nil, fmt.Errorf("%w: %d", ErrDeltaOutOfRange, minDelta)
	}

	top := bitset.Full(uint(numObjects))
	state := map[string]*gsofiaEntry{
		top.Key(): {extent: top, delta: numObjects, children: map[string]*bitset.Bitset{}},
	}

	for _, a := range extents {
		state = projectAttribute(state, a, minDelta, o.minSupport)
		o.logger.Debug("gsofia attribute projected", zap.Int("stable_extents", len(state)))
	}

	result := make([]StableExtent, 0, len(state))
	for _, e := range state {
		children := make([]*bitset.Bitset, 0, len(e.children))
		for _, c := range e.children {
			children = append(children, c)
		}
		sort.Slice(children, func(i, j int) bool { return bitset.Less(children[i], children[j]) })
		result = append(result, StableExtent{Extent: e.extent, Delta: e.delta, Children: children})
	}
	sort.Slice(result, func(i, j int) bool { return bitset.Less(result[i].Extent, result[j].Extent) })

	if o.cap > 0 && len(result) > o.cap {
		result = trimToCap(result, o.cap)
	}
	return result, nil
}

// projectAttribute applies one attribute's extent A to the current state,
// implementing spec §4.4 steps 1-6 for every entry.
func projectAttribute(state map[string]*gsofiaEntry, a *bitset.Bitset, minDelta, minSupport int) map[string]*gsofiaEntry {
	next := map[string]*gsofiaEntry{}

	merge := func(e *gsofiaEntry) {
		key := e.extent.Key()
		existing, ok := next[key]
		if !ok {
			next[key] = e
			return
		}
		if e.delta < existing.delta {
			existing.delta = e.delta
		}
		for k, v := range e.children {
			existing.children[k] = v
		}
	}

	for _, entry := range state {
		x := entry.extent
		xPrime := x.And(a)

		if xPrime.Equal(x) {
			// Step 1: unchanged, carry as-is.
			merge(&gsofiaEntry{extent: x, delta: entry.delta, children: entry.children})
			continue
		}

		// Step 2: update the parent's delta; keep the parent (with the
		// new child X' recorded) only if it remains stable enough.
		lost := int(x.Count()) - int(xPrime.Count())
		newDelta := entry.delta
		if lost < newDelta {
			newDelta = lost
		}
		if newDelta >= minDelta {
			children := map[string]*bitset.Bitset{}
			for k, v := range entry.children {
				children[k] = v
			}
			children[xPrime.Key()] = xPrime
			merge(&gsofiaEntry{extent: x, delta: newDelta, children: children})
		}

		// Step 3: drop X' if it falls below the support floor.
		if int(xPrime.Count()) < minSupport {
			continue
		}

		// Step 4: compute X''s own delta and children by projecting C.
		childDelta := int(xPrime.Count())
		projected := map[string]*bitset.Bitset{}
		dropped := false
		for _, c := range entry.children {
			cPrime := c.And(a)
			d := int(xPrime.Count()) - int(cPrime.Count())
			if d < childDelta {
				childDelta = d
			}
			if childDelta < minDelta {
				dropped = true
				break
			}
			projected[cPrime.Key()] = cPrime
		}
		if dropped || childDelta < minDelta {
			continue
		}

		// Step 5: retain only maxima among the projected children.
		maximal := keepMaximal(projected)

		// Step 6: install.
		merge(&gsofiaEntry{extent: xPrime, delta: childDelta, children: maximal})
	}

	return next
}

// keepMaximal discards any bitset that is a proper subset of another in the
// set, leaving only the inclusion-maximal elements (spec §4.4 step 5).
func keepMaximal(set map[string]*bitset.Bitset) map[string]*bitset.Bitset {
	items := make([]*bitset.Bitset, 0, len(set))
	for _, v := range set {
		items = append(items, v)
	}
	out := map[string]*bitset.Bitset{}
	for i, a := range items {
		dominated := false
		for j, b := range items {
			if i == j {
				continue
			}
			if a.IsProperSubsetOf(b) {
				dominated = true
				break
			}
		}
		if !dominated {
			out[a.Key()] = a
		}
	}
	return out
}

// trimToCap keeps only the n entries with the largest delta-stability,
// replicating list_stable_extents_via_gsofia's heapq.nlargest + border-count
// logic (spec §4.4 step 6 / SPEC_FULL.md Open Question (a)): take the n
// largest, then check whether every entry tied with the n-th largest delta
// (the "border") made it into that selection. If some tied entries were left
// out, the selection is ambiguous and every bordering entry is dropped
// instead of arbitrarily picking which ties to keep — which can leave fewer
// than n results. If none were left out (the ties all fit), the selection is
// kept as-is.
func trimToCap(result []StableExtent, n int) []StableExtent {
	sorted := make([]StableExtent, len(result))
	copy(sorted, result)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Delta > sorted[j].Delta })

	selected := sorted[:n]
	threshold := selected[n-1].Delta

	nBorderSelected := 0
	for _, e := range selected {
		if e.Delta == threshold {
			nBorderSelected++
		}
	}
	nBorderTotal := 0
	for _, e := range sorted {
		if e.Delta == threshold {
			nBorderTotal++
		}
	}

	out := selected
	if nBorderSelected < nBorderTotal {
		out = selected[:n-nBorderSelected]
	}

	final := make([]StableExtent, len(out))
	copy(final, out)
	sort.Slice(final, func(i, j int) bool { return bitset.Less(final[i].Extent, final[j].Extent) })
	return final
}
