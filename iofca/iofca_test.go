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

package iofca_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erigontech/fca/bitset"
	"github.com/erigontech/fca/context"
	"github.com/erigontech/fca/iofca"
)

func toyContext() *context.Context {
	rows := []*bitset.Bitset{
		bitset.FromIndices(3, []uint{0, 1}),
		bitset.FromIndices(3, []uint{1, 2}),
	}
	return context.New([]string{"g1", "g2"}, []string{"a", "b", "c"}, rows)
}

func TestCxtRoundTrip(t *testing.T) {
	c := toyContext()
	rendered := iofca.WriteCxt(c)
	assert.True(t, strings.HasPrefix(rendered, "B\n\n2\n3\n\n"))

	parsed, err := iofca.ReadCxt(rendered)
	require.NoError(t, err)
	require.Equal(t, c.ObjectNames, parsed.ObjectNames)
	require.Equal(t, c.AttributeNames, parsed.AttributeNames)
	for i := range c.Rows {
		assert.True(t, c.Rows[i].Equal(parsed.Rows[i]))
	}
}

func TestCSVRoundTrip(t *testing.T) {
	c := toyContext()
	var buf bytes.Buffer
	require.NoError(t, iofca.WriteCSV(&buf, c))

	parsed, err := iofca.ReadCSV(&buf)
	require.NoError(t, err)
	require.Equal(t, c.ObjectNames, parsed.ObjectNames)
	require.Equal(t, c.AttributeNames, parsed.AttributeNames)
	for i := range c.Rows {
		assert.True(t, c.Rows[i].Equal(parsed.Rows[i]))
	}
}

func TestBalistRoundTrip(t *testing.T) {
	bitsets := []*bitset.Bitset{
		bitset.FromIndices(10, []uint{0, 3, 9}),
		bitset.FromIndices(10, []uint{1, 2, 3, 4, 5, 6, 7, 8}),
		bitset.New(10),
	}

	var buf bytes.Buffer
	require.NoError(t, iofca.SaveBitsetList(&buf, bitsets))

	loaded, err := iofca.LoadBitsetList(&buf)
	require.NoError(t, err)
	require.Len(t, loaded, len(bitsets))
	for i := range bitsets {
		assert.True(t, bitsets[i].Equal(loaded[i]))
	}
}

func TestBalistRoundTripCompressed(t *testing.T) {
	bitsets := []*bitset.Bitset{
		bitset.FromIndices(16, []uint{0, 15}),
		bitset.FromIndices(16, []uint{1, 2, 3}),
	}

	var buf bytes.Buffer
	require.NoError(t, iofca.SaveBitsetList(&buf, bitsets, iofca.Compressed(true)))

	loaded, err := iofca.LoadBitsetList(&buf, iofca.Compressed(true))
	require.NoError(t, err)
	require.Len(t, loaded, len(bitsets))
	for i := range bitsets {
		assert.True(t, bitsets[i].Equal(loaded[i]))
	}
}

func TestToMermaidDiagram(t *testing.T) {
	out := iofca.ToMermaidDiagram([]string{"bottom", "top"}, [][]int{{1}, {}})
	assert.True(t, strings.HasPrefix(out, "flowchart TD\n"))
	assert.Contains(t, out, `A["bottom"];`)
	assert.Contains(t, out, `B["top"];`)
	assert.Contains(t, out, "A --> B;")
}
