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

	"github.com/erigontech/fca/bitset"
	"github.com/erigontech/fca/mining"
)

func TestIterEquivalenceClassToyContext(t *testing.T) {
	c := toyContext()
	intents, err := mining.ListIntents(c, 0)
	require.NoError(t, err)

	// {a,b,c} (index 3) has extent = ∅ (no object has all three); its
	// equivalence class is every description whose extension is also ∅.
	top := intents[len(intents)-1]
	class := mining.IterEquivalenceClass(c, top)
	require.NotEmpty(t, class)
	for _, member := range class {
		assert.True(t, c.Extension(member).Equal(c.Extension(top)))
	}
	// The class is listed largest-to-smallest.
	for i := 1; i < len(class); i++ {
		assert.False(t, bitset.Less(class[i-1], class[i]))
	}
}

func TestListAttributeConceptsToyContext(t *testing.T) {
	c := toyContext()
	intents, err := mining.ListIntents(c, 0)
	require.NoError(t, err)

	concepts := mining.ListAttributeConcepts(intents, 3)
	require.Len(t, concepts, 3)
	for m, idx := range concepts {
		require.GreaterOrEqual(t, idx, 0)
		assert.True(t, intents[idx].Test(uint(m)))
		// Minimality: no earlier (smaller) intent contains m.
		for i := 0; i < idx; i++ {
			assert.False(t, intents[i].Test(uint(m)))
		}
	}
}
