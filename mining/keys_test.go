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
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erigontech/fca/bitset"
	"github.com/erigontech/fca/mining"
)

func keyStrings(keys []*bitset.Bitset) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.Key()
	}
	sort.Strings(out)
	return out
}

func TestListKeysToyContext(t *testing.T) {
	c := toyContext()
	intents, err := mining.ListIntents(c, 0)
	require.NoError(t, err)

	km := mining.ListKeys(intents, 3)

	// Expected per spec §8: ∅ -> 0, {a} -> 1, {c} -> 2, {a,c} -> 3.
	emptyIdx, ok := km.IntentIndex(bitset.New(3))
	require.True(t, ok)
	assert.Equal(t, 0, emptyIdx)

	aIdx, ok := km.IntentIndex(bitset.FromIndices(3, []uint{0}))
	require.True(t, ok)
	assert.Equal(t, 1, aIdx)

	cIdx, ok := km.IntentIndex(bitset.FromIndices(3, []uint{2}))
	require.True(t, ok)
	assert.Equal(t, 2, cIdx)

	acIdx, ok := km.IntentIndex(bitset.FromIndices(3, []uint{0, 2}))
	require.True(t, ok)
	assert.Equal(t, 3, acIdx)

	assert.Equal(t, keyStrings(km.Keys()), keyStrings(mining.ListPasskeys(intents, 3).Keys()))
}

func TestListKeysSubsetClosureProperty(t *testing.T) {
	c := toyContext()
	intents, err := mining.ListIntents(c, 0)
	require.NoError(t, err)
	km := mining.ListKeys(intents, 3)

	for _, key := range km.Keys() {
		for _, m := range key.Indices() {
			sub := key.Clone().Clear(m)
			_, ok := km.IntentIndex(sub)
			assert.True(t, ok, "subset %v of key %v must also be a key", sub.Indices(), key.Indices())
		}
	}
}

func TestListKeysForExtentsMatchesListKeysOnAFullLattice(t *testing.T) {
	c := toyContext()
	intents, err := mining.ListIntents(c, 0)
	require.NoError(t, err)

	extents := make([]*bitset.Bitset, len(intents))
	for i, in := range intents {
		extents[i] = c.Extension(in)
	}

	want := mining.ListKeys(intents, 3)
	got := mining.ListKeysForExtents(extents, c.Extents)

	assert.Equal(t, keyStrings(want.Keys()), keyStrings(got.Keys()))
	for _, key := range want.Keys() {
		wantIdx, ok := want.IntentIndex(key)
		require.True(t, ok)
		gotIdx, ok := got.IntentIndex(key)
		require.True(t, ok)
		assert.True(t, extents[gotIdx].Equal(c.Extension(intents[wantIdx])), "key %v should generate the same extent via either path", key.Indices())
	}
}

func TestListKeysForExtentsDropsKeysWithNoMatchingExtent(t *testing.T) {
	c := toyContext()
	// A non-lattice extent sample missing the all-attributes intent's
	// (empty) extent, as gSofia's stable-extent sampling can produce: only
	// {b}'s, {a,b}'s and {b,c}'s extents survive.
	extents := []*bitset.Bitset{
		bitset.FromIndices(2, []uint{0, 1}), // {b}'s extent: g1, g2
		bitset.FromIndices(2, []uint{0}),    // {a,b}'s extent: g1
		bitset.FromIndices(2, []uint{1}),    // {b,c}'s extent: g2
	}

	km := mining.ListKeysForExtents(extents, c.Extents)

	emptyIdx, ok := km.IntentIndex(bitset.New(3))
	require.True(t, ok)
	assert.True(t, extents[emptyIdx].Equal(bitset.FromIndices(2, []uint{0, 1})))

	aIdx, ok := km.IntentIndex(bitset.FromIndices(3, []uint{0}))
	require.True(t, ok)
	assert.True(t, extents[aIdx].Equal(bitset.FromIndices(2, []uint{0})))

	cIdx, ok := km.IntentIndex(bitset.FromIndices(3, []uint{2}))
	require.True(t, ok)
	assert.True(t, extents[cIdx].Equal(bitset.FromIndices(2, []uint{1})))

	// {a,c}'s extent is empty, which isn't among the supplied extents, so
	// {a,c} is never recorded as a key of anything.
	_, ok = km.IntentIndex(bitset.FromIndices(3, []uint{0, 2}))
	assert.False(t, ok)
}

func TestListPasskeysForExtentsMatchesListPasskeysOnAFullLattice(t *testing.T) {
	c := toyContext()
	intents, err := mining.ListIntents(c, 0)
	require.NoError(t, err)

	extents := make([]*bitset.Bitset, len(intents))
	for i, in := range intents {
		extents[i] = c.Extension(in)
	}

	want := mining.ListPasskeys(intents, 3)
	got := mining.ListPasskeysForExtents(extents, c.Extents)
	assert.Equal(t, keyStrings(want.Keys()), keyStrings(got.Keys()))
}

func TestPasskeysAreMinimumCardinalityPerIntent(t *testing.T) {
	c := toyContext()
	intents, err := mining.ListIntents(c, 0)
	require.NoError(t, err)
	km := mining.ListKeys(intents, 3)
	pkm := mining.ListPasskeys(intents, 3)

	minSizeByIntent := map[int]int{}
	for _, key := range km.Keys() {
		idx, _ := km.IntentIndex(key)
		size := int(key.Count())
		if cur, ok := minSizeByIntent[idx]; !ok || size < cur {
			minSizeByIntent[idx] = size
		}
	}
	for _, pk := range pkm.Keys() {
		idx, ok := pkm.IntentIndex(pk)
		require.True(t, ok)
		assert.Equal(t, minSizeByIntent[idx], int(pk.Count()))
	}
}
