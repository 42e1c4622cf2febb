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

package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erigontech/fca/bitset"
	"github.com/erigontech/fca/context"
	"github.com/erigontech/fca/mining"
	"github.com/erigontech/fca/order"
)

func toyContext() *context.Context {
	rows := []*bitset.Bitset{
		bitset.FromIndices(3, []uint{0, 1}),
		bitset.FromIndices(3, []uint{1, 2}),
	}
	return context.New([]string{"g1", "g2"}, []string{"a", "b", "c"}, rows)
}

func TestCoversToyContext(t *testing.T) {
	c := toyContext()
	intents, err := mining.ListIntents(c, 0)
	require.NoError(t, err)

	covers := order.Covers(intents, 3)
	// Spec §8 scenario 5, read "child covered by parent" but encoded the
	// other way here: Covers[i] holds i's own upper covers.
	// intents: 0={b} 1={a,b} 2={b,c} 3={a,b,c}
	assert.True(t, covers[0].Test(1))
	assert.True(t, covers[0].Test(2))
	assert.False(t, covers[0].Test(3))
	assert.True(t, covers[1].Test(3))
	assert.True(t, covers[2].Test(3))
	assert.True(t, covers[3].IsEmpty())
}

func TestTransitiveClosureMatchesInclusion(t *testing.T) {
	c := toyContext()
	intents, err := mining.ListIntents(c, 0)
	require.NoError(t, err)

	o := order.Build(intents, 3)
	for i, I := range intents {
		for j, J := range intents {
			if i == j {
				continue
			}
			strictSuperset := I.IsProperSubsetOf(J)
			assert.Equal(t, strictSuperset, o.Ancestry[i].Test(uint(j)), "intents[%d] vs intents[%d]", i, j)
		}
	}
}

func TestCoversAcyclic(t *testing.T) {
	c := toyContext()
	intents, err := mining.ListIntents(c, 0)
	require.NoError(t, err)

	covers := order.Covers(intents, 3)
	for i, c := range covers {
		for j, ok := c.NextSet(0); ok; j, ok = c.NextSet(j + 1) {
			assert.Greater(t, int(j), i, "cover must point to a strictly larger-index intent")
		}
	}
}
