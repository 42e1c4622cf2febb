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

package mining_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erigontech/fca/mining"
)

func TestListStableExtentsToyContextDeltaOne(t *testing.T) {
	c := toyContext()
	stable, err := mining.ListStableExtents(c.Extents, c.NumObjects(), 1)
	require.NoError(t, err)

	// Expected per spec §8: {b}-extent=[g1,g2], {a,b}-extent=[g1],
	// {b,c}-extent=[g2] — three stable extents, each with delta = 1.
	require.Len(t, stable, 3)
	for _, e := range stable {
		assert.Equal(t, 1, e.Delta)
	}

	extents := map[string]bool{}
	for _, e := range stable {
		extents[e.Extent.Key()] = true
	}
	assert.Len(t, extents, 3)
}

func TestListStableExtentsRejectsNegativeDelta(t *testing.T) {
	c := toyContext()
	_, err := mining.ListStableExtents(c.Extents, c.NumObjects(), -1)
	assert.ErrorIs(t, err, mining.ErrDeltaOutOfRange)
}

func TestListStableExtentsCapTrimsToLargestDeltas(t *testing.T) {
	c := famousAnimalsContext()
	uncapped, err := mining.ListStableExtents(c.Extents, c.NumObjects(), 0)
	require.NoError(t, err)
	capped, err := mining.ListStableExtents(c.Extents, c.NumObjects(), 0, mining.WithCap(2))
	require.NoError(t, err)

	assert.LessOrEqual(t, len(capped), 2)

	minCappedDelta := maxInt
	for _, e := range capped {
		if e.Delta < minCappedDelta {
			minCappedDelta = e.Delta
		}
	}
	for _, e := range uncapped {
		if e.Delta > minCappedDelta {
			assertExtentPresent(t, capped, e)
		}
	}
}

const maxInt = int(^uint(0) >> 1)

func assertExtentPresent(t *testing.T, haystack []mining.StableExtent, e mining.StableExtent) {
	t.Helper()
	for _, h := range haystack {
		if h.Extent.Equal(e.Extent) {
			return
		}
	}
	t.Fatalf("extent %v with delta %d strictly above cap threshold missing from capped result", e.Extent.Indices(), e.Delta)
}

func TestDeltaStabilityBoundHolds(t *testing.T) {
	c := famousAnimalsContext()
	const delta = 1
	stable, err := mining.ListStableExtents(c.Extents, c.NumObjects(), delta)
	require.NoError(t, err)
	for _, e := range stable {
		maxChild := 0
		for _, child := range e.Children {
			if int(child.Count()) > maxChild {
				maxChild = int(child.Count())
			}
		}
		assert.GreaterOrEqual(t, int(e.Extent.Count())-maxChild, delta)
	}
}
