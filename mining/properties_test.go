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
	"pgregory.net/rapid"

	"github.com/erigontech/fca/bitset"
	"github.com/erigontech/fca/context"
	"github.com/erigontech/fca/mining"
)

func randomContext(rt *rapid.T, maxObjects, maxAttrs int) *context.Context {
	numObjects := rapid.IntRange(1, maxObjects).Draw(rt, "numObjects")
	numAttrs := rapid.IntRange(1, maxAttrs).Draw(rt, "numAttrs")
	rows := make([]*bitset.Bitset, numObjects)
	for g := 0; g < numObjects; g++ {
		row := bitset.New(uint(numAttrs))
		for m := 0; m < numAttrs; m++ {
			if rapid.Bool().Draw(rt, "bit") {
				row.Set(uint(m))
			}
		}
		rows[g] = row
	}
	return context.New(nil, nil, rows)
}

// TestRapidIntentsTopologicallySorted encodes spec §8's topological-sort
// property: consecutive emitted intents never decrease in popcount.
func TestRapidIntentsTopologicallySorted(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := randomContext(rt, 5, 5)
		intents, err := mining.ListIntents(c, 0)
		require.NoError(t, err)
		for i := 1; i < len(intents); i++ {
			assert.LessOrEqual(t, intents[i-1].Count(), intents[i].Count())
		}
	})
}

// TestRapidClosureIdempotent encodes spec §8's closure-idempotence property.
func TestRapidClosureIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := randomContext(rt, 5, 5)
		numAttrs := uint(c.NumAttributes())
		b := bitset.New(numAttrs)
		for m := uint(0); m < numAttrs; m++ {
			if rapid.Bool().Draw(rt, "bit") {
				b.Set(m)
			}
		}
		once := c.Closure(b)
		twice := c.Closure(once)
		assert.True(t, once.Equal(twice))
	})
}

// TestRapidKeySubsetClosure encodes spec §8's key-subset-closure property:
// every one-element-removed subset of an emitted key is itself an emitted
// key.
func TestRapidKeySubsetClosure(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := randomContext(rt, 4, 4)
		intents, err := mining.ListIntents(c, 0)
		require.NoError(t, err)
		km := mining.ListKeys(intents, uint(c.NumAttributes()))

		for _, key := range km.Keys() {
			for _, m := range key.Indices() {
				sub := key.Clone().Clear(m)
				_, ok := km.IntentIndex(sub)
				assert.True(t, ok, "subset %v of key %v must also be a key", sub.Indices(), key.Indices())
			}
		}
	})
}

// TestRapidPasskeyIsMinimumCardinality encodes spec §8's passkey-minimum
// property.
func TestRapidPasskeyIsMinimumCardinality(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := randomContext(rt, 4, 4)
		intents, err := mining.ListIntents(c, 0)
		require.NoError(t, err)
		numAttrs := uint(c.NumAttributes())
		keys := mining.ListKeys(intents, numAttrs)
		passkeys := mining.ListPasskeys(intents, numAttrs)

		minSize := make(map[int]uint)
		for _, key := range keys.Keys() {
			idx, _ := keys.IntentIndex(key)
			if cur, ok := minSize[idx]; !ok || key.Count() < cur {
				minSize[idx] = key.Count()
			}
		}
		for _, pk := range passkeys.Keys() {
			idx, _ := passkeys.IntentIndex(pk)
			assert.Equal(t, minSize[idx], pk.Count())
		}
	})
}
