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

// Package iofca holds the out-of-core adjuncts spec §6 calls external to
// the core: a Burmeister .cxt codec, a CSV tabular adapter, the bitset-list
// persistence format, and Mermaid lattice rendering. None of these are
// imported by bitset, context, mining, implications, order or indices —
// the core never depends on anything downstream, including its own I/O.
package iofca

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/erigontech/fca/bitset"
	"github.com/erigontech/fca/context"
)

// ReadCxt parses a Burmeister-format formal context: a "B" marker line, a
// blank line, the object and attribute counts, a blank line, the object
// names, the attribute names, and finally one cross-line per object ('X'
// for present, anything else for absent), matching the Burmeister layout
// read_cxt/write_cxt in the original Python library use.
func ReadCxt(data string) (*context.Context, error) {
	parts := strings.SplitN(data, "\n\n", 3)
	if len(parts) != 3 {
		return nil, errors.New("iofca: malformed .cxt: expected three \\n\\n-separated sections")
	}

	countLines := strings.Split(strings.TrimRight(parts[1], "\n"), "\n")
	if len(countLines) != 2 {
		return nil, errors.New("iofca: malformed .cxt: expected object/attribute count lines")
	}
	numObjects, err := strconv.Atoi(strings.TrimSpace(countLines[0]))
	if err != nil {
		return nil, errors.Wrap(err, "iofca: parsing object count")
	}
	numAttrs, err := strconv.Atoi(strings.TrimSpace(countLines[1]))
	if err != nil {
		return nil, errors.Wrap(err, "iofca: parsing attribute count")
	}

	lines := strings.Split(strings.Trim(parts[2], "\n"), "\n")
	if len(lines) < numObjects+numAttrs {
		return nil, errors.New("iofca: malformed .cxt: not enough lines for declared object/attribute counts")
	}
	objectNames := lines[:numObjects]
	attributeNames := lines[numObjects : numObjects+numAttrs]
	crossLines := lines[numObjects+numAttrs:]
	if len(crossLines) != numObjects {
		return nil, errors.Errorf("iofca: malformed .cxt: expected %d cross-lines, got %d", numObjects, len(crossLines))
	}

	rows := make([]*bitset.Bitset, numObjects)
	for g, line := range crossLines {
		row := bitset.New(uint(numAttrs))
		for m, c := range line {
			if m >= numAttrs {
				break
			}
			if c == 'X' {
				row.Set(uint(m))
			}
		}
		rows[g] = row
	}

	return context.New(append([]string{}, objectNames...), append([]string{}, attributeNames...), rows), nil
}

// WriteCxt renders ctx in Burmeister format.
func WriteCxt(ctx *context.Context) string {
	var sb strings.Builder
	sb.WriteString("B\n\n")
	sb.WriteString(strconv.Itoa(ctx.NumObjects()))
	sb.WriteByte('\n')
	sb.WriteString(strconv.Itoa(ctx.NumAttributes()))
	sb.WriteString("\n\n")

	for _, name := range ctx.ObjectNames {
		sb.WriteString(name)
		sb.WriteByte('\n')
	}
	for _, name := range ctx.AttributeNames {
		sb.WriteString(name)
		sb.WriteByte('\n')
	}
	for _, row := range ctx.Rows {
		for m := uint(0); m < row.Width(); m++ {
			if row.Test(m) {
				sb.WriteByte('X')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
