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

package fca_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fca "github.com/erigontech/fca"
	"github.com/erigontech/fca/bitset"
)

func TestCachedClosureMatchesDirect(t *testing.T) {
	c := toyContext()
	cached, err := fca.NewCachedClosure(c, 8)
	require.NoError(t, err)

	b := bitset.FromIndices(3, []uint{0})
	direct := c.Closure(b)

	first := cached.Closure(b)
	assert.True(t, direct.Equal(first))
	assert.Equal(t, 1, cached.Len())

	second := cached.Closure(b)
	assert.True(t, first.Equal(second))
	assert.Equal(t, 1, cached.Len())

	cached.Purge()
	assert.Equal(t, 0, cached.Len())
}
